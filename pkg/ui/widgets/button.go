package widgets

import (
	"github.com/odvcencio/roving/pkg/roving"
	"github.com/odvcencio/roving/pkg/ui/backend"
	"github.com/odvcencio/roving/pkg/ui/runtime"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// Button is one roving member of a Toolbar. It renders as "[ label ]" and
// takes its style from the member's state.
type Button struct {
	Base
	label   string
	member  *roving.Member
	onFocus func(*Button)
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// Member returns the roving member backing the button.
func (b *Button) Member() *roving.Member {
	return b.member
}

// Disabled reports whether the button is disabled.
func (b *Button) Disabled() bool {
	return b.member != nil && b.member.Disabled()
}

// State returns the button's roving state.
func (b *Button) State() roving.State {
	if b.member == nil {
		return roving.State{TabIndex: -1}
	}
	return b.member.State()
}

// Focus gives the button keyboard focus within its toolbar. The group calls
// it when navigation lands here.
func (b *Button) Focus() {
	b.focused = true
	if b.onFocus != nil {
		b.onFocus(b)
	}
}

// Width returns the number of cells the button occupies.
func (b *Button) Width() int {
	return buttonWidth(b.label)
}

func buttonWidth(label string) int {
	return runtime.StringWidth(theme.Symbols.ButtonLeft) + runtime.StringWidth(theme.Symbols.ButtonRight) +
		2*theme.Layout.ButtonPadding + runtime.StringWidth(label)
}

// Measure returns the button's size.
func (b *Button) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: b.Width(), Height: 1})
}

// Render draws the button.
func (b *Button) Render(ctx runtime.RenderContext) {
	bounds := b.bounds
	if bounds.Empty() {
		return
	}
	th := ctx.Theme
	if th == nil {
		th = theme.DefaultTheme()
	}
	style := b.style(th)

	pad := theme.Layout.ButtonPadding
	x := bounds.X
	x += ctx.Buffer.SetString(x, bounds.Y, theme.Symbols.ButtonLeft, style, bounds.Width)
	ctx.Buffer.Fill(runtime.Rect{X: x, Y: bounds.Y, Width: pad, Height: 1}, ' ', style)
	x += pad

	right := runtime.StringWidth(theme.Symbols.ButtonRight)
	room := bounds.X + bounds.Width - x - pad - right
	if room <= 0 {
		return
	}
	label := truncateString(b.label, room)
	x += ctx.Buffer.SetString(x, bounds.Y, label, style, room)
	ctx.Buffer.Fill(runtime.Rect{X: x, Y: bounds.Y, Width: pad, Height: 1}, ' ', style)
	x += pad
	ctx.Buffer.SetString(x, bounds.Y, theme.Symbols.ButtonRight, style, right)
}

func (b *Button) style(th *theme.Theme) backend.Style {
	state := b.State()
	switch {
	case b.Disabled():
		return th.ButtonDisabled
	case state.Active:
		return th.ButtonActive
	case b.focused:
		return th.ButtonFocused
	case state.IsTabStop():
		return th.ButtonTabStop
	default:
		return th.Button
	}
}
