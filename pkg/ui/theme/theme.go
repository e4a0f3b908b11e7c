// Package theme provides the styles the roving widgets render with.
// Button styles follow the member's state: plain, tab stop, active
// (keyboard highlight), focused and disabled.
package theme

import (
	"github.com/muesli/termenv"

	"github.com/odvcencio/roving/pkg/ui/backend"
)

// Theme defines the visual language for the demo.
type Theme struct {
	// Core palette
	Background backend.Style
	Surface    backend.Style

	// Text hierarchy
	TextPrimary backend.Style
	TextMuted   backend.Style
	Title       backend.Style

	// Buttons by roving state
	Button         backend.Style // enabled, not the tab stop
	ButtonTabStop  backend.Style // reachable by Tab
	ButtonActive   backend.Style // keyboard navigation landed here
	ButtonFocused  backend.Style // holds runtime focus, not active
	ButtonDisabled backend.Style

	// UI elements
	Border      backend.Style
	BorderFocus backend.Style
	Status      backend.Style
}

// DefaultTheme returns the true-color theme.
func DefaultTheme() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Background: base.Background(backend.ColorRGB(12, 12, 16)),
		Surface:    base.Background(backend.ColorRGB(22, 22, 28)),

		TextPrimary: base.Foreground(backend.ColorRGB(240, 238, 232)),
		TextMuted:   base.Foreground(backend.ColorRGB(100, 98, 92)),
		Title:       base.Foreground(backend.ColorRGB(255, 183, 77)).Bold(true),

		Button:         base.Foreground(backend.ColorRGB(200, 198, 190)),
		ButtonTabStop:  base.Foreground(backend.ColorRGB(255, 183, 77)).Underline(true),
		ButtonActive:   base.Foreground(backend.ColorRGB(12, 12, 16)).Background(backend.ColorRGB(255, 183, 77)).Bold(true),
		ButtonFocused:  base.Foreground(backend.ColorRGB(255, 200, 100)).Bold(true),
		ButtonDisabled: base.Foreground(backend.ColorRGB(80, 78, 72)).StrikeThrough(true),

		Border:      base.Foreground(backend.ColorRGB(50, 50, 60)),
		BorderFocus: base.Foreground(backend.ColorRGB(255, 183, 77)),
		Status:      base.Foreground(backend.ColorRGB(160, 158, 150)),
	}
}

// ANSITheme uses the 16-color palette.
func ANSITheme() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Background: base,
		Surface:    base,

		TextPrimary: base.Foreground(backend.ColorWhite),
		TextMuted:   base.Foreground(backend.ColorBrightBlack),
		Title:       base.Foreground(backend.ColorYellow).Bold(true),

		Button:         base.Foreground(backend.ColorWhite),
		ButtonTabStop:  base.Foreground(backend.ColorYellow).Underline(true),
		ButtonActive:   base.Foreground(backend.ColorBlack).Background(backend.ColorYellow).Bold(true),
		ButtonFocused:  base.Foreground(backend.ColorYellow).Bold(true),
		ButtonDisabled: base.Foreground(backend.ColorBrightBlack).StrikeThrough(true),

		Border:      base.Foreground(backend.ColorBrightBlack),
		BorderFocus: base.Foreground(backend.ColorYellow),
		Status:      base.Foreground(backend.ColorWhite),
	}
}

// MonochromeTheme distinguishes states by attributes only.
func MonochromeTheme() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Background: base,
		Surface:    base,

		TextPrimary: base,
		TextMuted:   base.Dim(true),
		Title:       base.Bold(true),

		Button:         base,
		ButtonTabStop:  base.Underline(true),
		ButtonActive:   base.Reverse(true).Bold(true),
		ButtonFocused:  base.Bold(true),
		ButtonDisabled: base.Dim(true),

		Border:      base.Dim(true),
		BorderFocus: base.Bold(true),
		Status:      base,
	}
}

// ForProfile picks the theme matching a terminal color profile.
func ForProfile(p termenv.Profile) *Theme {
	switch p {
	case termenv.TrueColor:
		return DefaultTheme()
	case termenv.ANSI256, termenv.ANSI:
		return ANSITheme()
	default:
		return MonochromeTheme()
	}
}

// Detect returns the theme for the color profile of stdout.
func Detect() *Theme {
	return ForProfile(termenv.ColorProfile())
}

// Symbols provides consistent iconography.
var Symbols = struct {
	ButtonLeft       string
	ButtonRight      string
	Arrow            string
	Dot              string
	BorderHorizontal string
}{
	ButtonLeft:       "[",
	ButtonRight:      "]",
	Arrow:            "›",
	Dot:              "·",
	BorderHorizontal: "─",
}

// Layout defines standard spacing.
var Layout = struct {
	ButtonPadding int
	ButtonGap     int
	ToolbarGap    int
	StatusHeight  int
}{
	ButtonPadding: 1,
	ButtonGap:     1,
	ToolbarGap:    1,
	StatusHeight:  1,
}
