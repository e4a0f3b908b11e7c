package runtime

import (
	"github.com/odvcencio/roving/pkg/ui/terminal"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// Screen manages the widget tree, Tab focus, mouse routing and rendering.
type Screen struct {
	width, height int
	root          Widget
	buffer        *Buffer
	theme         *theme.Theme
	focus         *FocusScope
	hits          *HitGrid
}

// NewScreen creates a new screen with the given dimensions.
func NewScreen(w, h int, th *theme.Theme) *Screen {
	if th == nil {
		th = theme.DefaultTheme()
	}
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
		theme:  th,
		focus:  NewFocusScope(),
		hits:   NewHitGrid(w, h),
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions and re-lays out the tree.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	s.hits.Resize(w, h)
	s.Relayout()
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// Theme returns the current theme.
func (s *Screen) Theme() *theme.Theme {
	return s.theme
}

// SetTheme changes the theme.
func (s *Screen) SetTheme(th *theme.Theme) {
	if th != nil {
		s.theme = th
		s.buffer.MarkAllDirty()
	}
}

// SetRoot installs the root widget and focuses its first focusable.
func (s *Screen) SetRoot(root Widget) {
	s.focus.ClearFocus()
	s.root = root
	s.Relayout()
	s.focus.FocusFirst()
}

// Root returns the root widget.
func (s *Screen) Root() Widget {
	return s.root
}

// FocusScope returns the screen's focus scope.
func (s *Screen) FocusScope() *FocusScope {
	return s.focus
}

// Relayout lays the tree out again and refreshes the focus order. Call it
// after adding or removing widgets.
func (s *Screen) Relayout() {
	if s.root == nil {
		s.focus.Sync(nil)
		return
	}
	s.root.Layout(Rect{Width: s.width, Height: s.height})
	s.focus.Sync(s.focusables())
}

// focusables returns the tree's focusable widgets in pre-order.
func (s *Screen) focusables() []Focusable {
	var out []Focusable
	var walk func(w Widget)
	walk = func(w Widget) {
		if f, ok := w.(Focusable); ok {
			out = append(out, f)
		}
		if c, ok := w.(Container); ok {
			for _, child := range c.ChildWidgets() {
				walk(child)
			}
		}
	}
	walk(s.root)
	return out
}

// Render draws the tree to the buffer and rebuilds the hit grid.
func (s *Screen) Render() {
	s.Relayout()
	s.buffer.Clear()
	s.hits.Clear()
	if s.root == nil {
		return
	}
	s.root.Render(RenderContext{
		Buffer: s.buffer,
		Theme:  s.theme,
		Bounds: Rect{Width: s.width, Height: s.height},
	})
	for _, f := range s.focusables() {
		if b, ok := f.(Bounded); ok {
			s.hits.Add(f, b.Bounds())
		}
	}
}

// HandleMessage dispatches a message. Keys go to the focused widget first,
// then Tab and Shift+Tab move focus, then the root sees what is left. A
// mouse press focuses the widget under the pointer before it receives the
// press. A press over empty space or a widget that cannot focus clears focus.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	switch m := msg.(type) {
	case KeyMsg:
		if cur := s.focus.Current(); cur != nil {
			if result := s.dispatch(cur, msg); result.Handled {
				return result
			}
		}
		switch m.Key {
		case terminal.KeyTab:
			s.focus.FocusNext()
			return Handled()
		case terminal.KeyBacktab:
			s.focus.FocusPrev()
			return Handled()
		}
	case MouseMsg:
		target := s.hits.WidgetAt(m.X, m.Y)
		if m.IsPress() {
			if target == nil {
				s.focus.ClearFocus()
				return Handled()
			}
			if !s.focus.SetFocus(target) && s.focus.Current() != target {
				s.focus.ClearFocus()
			}
		}
		if target != nil {
			return s.dispatch(target, msg)
		}
		return Unhandled()
	}

	if s.root == nil {
		return Unhandled()
	}
	return s.dispatch(s.root, msg)
}

func (s *Screen) dispatch(w Widget, msg Message) HandleResult {
	result := w.HandleMessage(msg)
	for _, cmd := range result.Commands {
		s.handleCommand(cmd)
	}
	return result
}

// handleCommand processes focus commands. Other commands bubble up to App.
func (s *Screen) handleCommand(cmd Command) {
	switch cmd.(type) {
	case FocusNext:
		s.focus.FocusNext()
	case FocusPrev:
		s.focus.FocusPrev()
	}
}

// RenderContext provides context to widgets during rendering.
type RenderContext struct {
	Buffer *Buffer
	Theme  *theme.Theme
	Bounds Rect // Widget's allocated bounds
}

// Sub creates a new context for a child widget with adjusted bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	return RenderContext{
		Buffer: ctx.Buffer,
		Theme:  ctx.Theme,
		Bounds: bounds,
	}
}
