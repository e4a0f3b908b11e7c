package runtime

import "slices"

// FocusScope owns the Tab cycle across the screen's focusable widgets.
// Exactly one widget holds focus at a time; Tab and Shift+Tab visit widgets
// in tree order, skipping those whose CanFocus reports false.
type FocusScope struct {
	widgets []Focusable
	current int // Index of focused widget, -1 if none
}

// NewFocusScope creates a new empty focus scope.
func NewFocusScope() *FocusScope {
	return &FocusScope{current: -1}
}

// Register adds a focusable widget to the scope.
// The first registered widget receives focus if nothing is focused.
func (f *FocusScope) Register(w Focusable) {
	if slices.Contains(f.widgets, w) {
		return
	}
	f.widgets = append(f.widgets, w)

	if f.current == -1 && w.CanFocus() {
		f.focusIndex(len(f.widgets) - 1)
	}
}

// Unregister removes a widget from the scope.
// If it was focused, focus moves to the first available widget.
func (f *FocusScope) Unregister(w Focusable) {
	i := slices.Index(f.widgets, w)
	if i < 0 {
		return
	}
	wasFocused := f.current == i
	if wasFocused {
		w.Blur()
		f.current = -1
	} else if f.current > i {
		f.current--
	}
	f.widgets = slices.Delete(f.widgets, i, i+1)

	if wasFocused {
		f.FocusFirst()
	}
}

// Sync replaces the registered set with widgets, in order. The focused
// widget keeps focus while it is present and focusable; otherwise focus
// moves on to the next focusable widget. An unfocused scope stays unfocused.
func (f *FocusScope) Sync(widgets []Focusable) {
	cur := f.Current()
	prev := f.current
	f.widgets = append(f.widgets[:0:0], widgets...)
	f.current = slices.Index(f.widgets, cur)
	if cur == nil || (f.current >= 0 && cur.CanFocus()) {
		return
	}

	start := f.current
	if start < 0 {
		// Resume at the slot the removed widget occupied.
		start = min(prev, len(f.widgets)) - 1
	}
	cur.Blur()
	f.current = -1
	f.focusFrom(start, 1)
}

// Current returns the currently focused widget, or nil.
func (f *FocusScope) Current() Focusable {
	if f.current >= 0 && f.current < len(f.widgets) {
		return f.widgets[f.current]
	}
	return nil
}

// SetFocus focuses a specific widget.
// Returns true if focus changed.
func (f *FocusScope) SetFocus(w Focusable) bool {
	i := slices.Index(f.widgets, w)
	if i < 0 || !w.CanFocus() {
		return false
	}
	return f.focusIndex(i)
}

// FocusFirst focuses the first focusable widget.
func (f *FocusScope) FocusFirst() bool {
	for i, w := range f.widgets {
		if w.CanFocus() {
			return f.focusIndex(i)
		}
	}
	return false
}

// FocusNext moves focus to the next focusable widget, wrapping around.
// Returns true if focus changed.
func (f *FocusScope) FocusNext() bool {
	return f.step(1)
}

// FocusPrev moves focus to the previous focusable widget, wrapping around.
// Returns true if focus changed.
func (f *FocusScope) FocusPrev() bool {
	return f.step(-1)
}

func (f *FocusScope) step(dir int) bool {
	start := f.current
	if start < 0 && dir < 0 {
		start = len(f.widgets)
	}
	return f.focusFrom(start, dir)
}

func (f *FocusScope) focusFrom(start, dir int) bool {
	n := len(f.widgets)
	for i := 1; i <= n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if f.widgets[idx].CanFocus() {
			return f.focusIndex(idx)
		}
	}
	return false
}

// ClearFocus removes focus from the current widget.
func (f *FocusScope) ClearFocus() {
	if w := f.Current(); w != nil {
		w.Blur()
	}
	f.current = -1
}

// Count returns the number of registered widgets.
func (f *FocusScope) Count() int {
	return len(f.widgets)
}

// focusIndex changes focus to the widget at index i.
func (f *FocusScope) focusIndex(i int) bool {
	if i == f.current {
		return false
	}
	if w := f.Current(); w != nil {
		w.Blur()
	}
	f.current = i
	f.widgets[i].Focus()
	return true
}
