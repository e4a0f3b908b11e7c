package widgets

import (
	"context"
	"slices"

	"github.com/odvcencio/roving/pkg/keymap"
	"github.com/odvcencio/roving/pkg/roving"
	"github.com/odvcencio/roving/pkg/ui/runtime"
	"github.com/odvcencio/roving/pkg/ui/terminal"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// Toolbar is a focusable row or column of buttons sharing one roving group.
// The screen sees the toolbar as a single Tab stop; arrow keys move between
// its buttons.
type Toolbar struct {
	Base
	name             string
	vertical         bool
	gap              int
	provider         *roving.Provider
	ctx              context.Context
	buttons          []*Button
	current          *Button
	keymap           *keymap.Keymap
	pointerActivates bool
}

// NewToolbar creates an empty toolbar. opts configure its roving group.
func NewToolbar(name string, opts ...roving.Option) *Toolbar {
	p := roving.NewProvider(name, opts...)
	return &Toolbar{
		name:     name,
		gap:      theme.Layout.ButtonGap,
		provider: p,
		ctx:      p.Context(context.Background()),
		keymap:   keymap.Default(),
	}
}

// WithVertical lays buttons out in a column instead of a row.
func (t *Toolbar) WithVertical(vertical bool) *Toolbar {
	t.vertical = vertical
	return t
}

// WithKeymap sets the navigation keymap and returns for chaining.
func (t *Toolbar) WithKeymap(km *keymap.Keymap) *Toolbar {
	t.SetKeymap(km)
	return t
}

// Name returns the toolbar name.
func (t *Toolbar) Name() string {
	return t.name
}

// Group returns the toolbar's roving group.
func (t *Toolbar) Group() *roving.Group {
	return t.provider.Group()
}

// Buttons returns the buttons in navigation order.
func (t *Toolbar) Buttons() []*Button {
	return slices.Clone(t.buttons)
}

// Button returns the first button with label, or nil.
func (t *Toolbar) Button(label string) *Button {
	for _, b := range t.buttons {
		if b.label == label {
			return b
		}
	}
	return nil
}

// Current returns the button holding keyboard focus, or nil.
func (t *Toolbar) Current() *Button {
	return t.current
}

// SetKeymap replaces the navigation keymap. A nil keymap restores the
// default.
func (t *Toolbar) SetKeymap(km *keymap.Keymap) {
	if km == nil {
		km = keymap.Default()
	}
	t.keymap = km
}

// SetPointerActivates changes whether clicks also mark a button active.
func (t *Toolbar) SetPointerActivates(enabled bool) {
	t.pointerActivates = enabled
	for _, b := range t.buttons {
		b.member.SetPointerActivates(enabled)
	}
}

// AddButton mounts a button into the toolbar's group. Without placement
// options the button is appended.
func (t *Toolbar) AddButton(label string, disabled bool, placement ...roving.RegisterOption) (*Button, error) {
	b := &Button{label: label, onFocus: t.focusButton}
	m, err := roving.Mount(t.ctx, b, disabled,
		roving.Placed(placement...),
		roving.PointerActivates(t.pointerActivates),
	)
	if err != nil {
		return nil, err
	}
	b.member = m
	t.buttons = append(t.buttons, b)
	t.sortButtons()
	return b, nil
}

// RemoveButton unmounts the first button with label and reports whether it
// existed.
func (t *Toolbar) RemoveButton(label string) bool {
	b := t.Button(label)
	if b == nil {
		return false
	}
	b.member.Unmount()
	t.buttons = slices.DeleteFunc(t.buttons, func(o *Button) bool { return o == b })
	if t.current == b {
		b.focused = false
		t.current = nil
		t.refocus()
	}
	return true
}

// SetDisabled updates the disabled flag of the button with label.
func (t *Toolbar) SetDisabled(label string, disabled bool) bool {
	b := t.Button(label)
	if b == nil {
		return false
	}
	b.member.SetDisabled(disabled)
	if disabled && t.current == b {
		b.focused = false
		t.current = nil
	}
	if t.current == nil {
		t.refocus()
	}
	return true
}

// Close unmounts every button and destroys the group.
func (t *Toolbar) Close() {
	t.provider.Close()
	t.buttons = nil
	t.current = nil
}

// sortButtons keeps t.buttons in group order.
func (t *Toolbar) sortButtons() {
	order := t.Group().Members()
	slices.SortStableFunc(t.buttons, func(a, b *Button) int {
		return slices.Index(order, a.member.ID()) - slices.Index(order, b.member.ID())
	})
}

func (t *Toolbar) buttonFor(id roving.MemberID) *Button {
	for _, b := range t.buttons {
		if b.member.ID() == id {
			return b
		}
	}
	return nil
}

// focusButton moves keyboard focus within the toolbar to b.
func (t *Toolbar) focusButton(b *Button) {
	if t.current != nil && t.current != b {
		t.current.focused = false
	}
	t.current = b
	t.focused = true
}

// refocus hands keyboard focus to the tab stop while the toolbar is focused.
func (t *Toolbar) refocus() {
	if !t.focused {
		return
	}
	if b := t.buttonFor(t.Group().TabStop()); b != nil {
		b.Focus()
	}
}

// CanFocus reports whether any button can take the tab stop.
func (t *Toolbar) CanFocus() bool {
	return !t.Group().Closed() && t.Group().TabStop() != ""
}

// Focus gives keyboard focus to the tab stop button.
func (t *Toolbar) Focus() {
	t.focused = true
	t.refocus()
}

// Blur clears the active button. The tab stop stays so Tab returns to it.
func (t *Toolbar) Blur() {
	if t.current != nil {
		t.current.member.HandleBlur()
		t.current.focused = false
		t.current = nil
	}
	t.focused = false
}

// Measure returns the space the buttons need.
func (t *Toolbar) Measure(constraints runtime.Constraints) runtime.Size {
	main, cross := 0, 0
	for i, b := range t.buttons {
		if i > 0 && !t.vertical {
			main += t.gap
		}
		if t.vertical {
			main++
			cross = max(cross, b.Width())
		} else {
			main += b.Width()
			cross = 1
		}
	}
	if t.vertical {
		return constraints.Constrain(runtime.Size{Width: cross, Height: main})
	}
	return constraints.Constrain(runtime.Size{Width: main, Height: cross})
}

// Layout positions the buttons within bounds.
func (t *Toolbar) Layout(bounds runtime.Rect) {
	t.bounds = bounds
	x, y := bounds.X, bounds.Y
	for _, b := range t.buttons {
		w := b.Width()
		if t.vertical {
			b.Layout(runtime.Rect{X: x, Y: y, Width: min(w, bounds.Width), Height: 1}.Intersection(bounds))
			y++
			continue
		}
		b.Layout(runtime.Rect{X: x, Y: y, Width: w, Height: 1}.Intersection(bounds))
		x += w + t.gap
	}
}

// Render draws the buttons.
func (t *Toolbar) Render(ctx runtime.RenderContext) {
	for _, b := range t.buttons {
		b.Render(ctx.Sub(b.Bounds()))
	}
}

// HandleMessage routes navigation keys to the focused button's member and
// mouse presses to the button under the pointer.
func (t *Toolbar) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.KeyMsg:
		return t.handleKey(m)
	case runtime.MouseMsg:
		return t.handleMouse(m)
	}
	return runtime.Unhandled()
}

func (t *Toolbar) handleKey(m runtime.KeyMsg) runtime.HandleResult {
	if !t.focused || t.current == nil {
		return runtime.Unhandled()
	}
	b := t.current

	if m.Key == terminal.KeyEnter || (m.Key == terminal.KeyRune && m.Rune == ' ') {
		if b.Disabled() {
			return runtime.Handled()
		}
		return runtime.WithCommand(runtime.Pressed{Toolbar: t.name, Label: b.label})
	}

	intent := t.keymap.Resolve(m.Key, m.Rune)
	if !b.member.HandleIntent(intent) {
		return runtime.Unhandled()
	}
	if t.current == b {
		return runtime.Handled()
	}
	return runtime.WithCommand(runtime.FocusChanged{
		Toolbar: t.name,
		Label:   t.current.label,
		Active:  t.current.member.IsActive(),
	})
}

func (t *Toolbar) handleMouse(m runtime.MouseMsg) runtime.HandleResult {
	if !m.IsPress() {
		return runtime.Unhandled()
	}
	b := t.buttonAt(m.X, m.Y)
	if b == nil {
		return runtime.Handled()
	}

	b.member.HandleMouseDown()
	if b.Disabled() {
		return runtime.Handled()
	}
	prev := t.Group().TabStop()
	b.member.HandleClick()
	b.Focus()

	result := runtime.Handled()
	if t.Group().TabStop() != prev {
		result.Commands = append(result.Commands, runtime.FocusChanged{
			Toolbar: t.name,
			Label:   b.label,
			Active:  b.member.IsActive(),
		})
	}
	result.Commands = append(result.Commands, runtime.Pressed{Toolbar: t.name, Label: b.label})
	return result
}

func (t *Toolbar) buttonAt(x, y int) *Button {
	for _, b := range t.buttons {
		if b.Bounds().Contains(x, y) {
			return b
		}
	}
	return nil
}
