package widgets

import (
	"github.com/odvcencio/roving/pkg/ui/backend"
	"github.com/odvcencio/roving/pkg/ui/runtime"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// Label is a single-line text widget, used for titles and the status line.
type Label struct {
	Base
	text      string
	style     *backend.Style
	themed    func(*theme.Theme) backend.Style
	alignment Alignment
}

// Alignment specifies text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// NewLabel creates a new label widget. Until SetStyle is called it renders
// with the theme's primary text style.
func NewLabel(text string) *Label {
	return &Label{text: text, alignment: AlignLeft}
}

// SetText updates the label text.
func (l *Label) SetText(text string) {
	l.text = text
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetStyle sets the label style.
func (l *Label) SetStyle(style backend.Style) {
	l.style = &style
}

// WithStyle sets the style and returns for chaining.
func (l *Label) WithStyle(style backend.Style) *Label {
	l.SetStyle(style)
	return l
}

// WithThemeStyle picks the label style from the render theme, so the label
// follows theme changes.
func (l *Label) WithThemeStyle(pick func(*theme.Theme) backend.Style) *Label {
	l.themed = pick
	return l
}

// WithAlignment sets alignment and returns for chaining.
func (l *Label) WithAlignment(align Alignment) *Label {
	l.alignment = align
	return l
}

// Measure returns the size needed for the label.
func (l *Label) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{
		Width:  runtime.StringWidth(l.text),
		Height: 1,
	})
}

// Render draws the label.
func (l *Label) Render(ctx runtime.RenderContext) {
	bounds := l.bounds
	if bounds.Empty() {
		return
	}

	style := backend.DefaultStyle()
	switch {
	case l.style != nil:
		style = *l.style
	case ctx.Theme != nil && l.themed != nil:
		style = l.themed(ctx.Theme)
	case ctx.Theme != nil:
		style = ctx.Theme.TextPrimary
	}

	text := truncateString(l.text, bounds.Width)
	width := runtime.StringWidth(text)

	x := bounds.X
	switch l.alignment {
	case AlignCenter:
		x = bounds.X + (bounds.Width-width)/2
	case AlignRight:
		x = bounds.X + bounds.Width - width
	}

	ctx.Buffer.SetString(x, bounds.Y, text, style, bounds.Width)
}
