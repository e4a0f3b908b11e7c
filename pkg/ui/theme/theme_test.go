package theme

import (
	"testing"

	"github.com/muesli/termenv"

	"github.com/odvcencio/roving/pkg/ui/backend"
)

func buttonStyles(th *Theme) []backend.Style {
	return []backend.Style{th.Button, th.ButtonTabStop, th.ButtonActive, th.ButtonFocused, th.ButtonDisabled}
}

func TestButtonStatesAreDistinct(t *testing.T) {
	for name, th := range map[string]*Theme{
		"default":    DefaultTheme(),
		"ansi":       ANSITheme(),
		"monochrome": MonochromeTheme(),
	} {
		styles := buttonStyles(th)
		for i := range styles {
			for j := i + 1; j < len(styles); j++ {
				if styles[i] == styles[j] {
					t.Errorf("%s: button styles %d and %d are identical", name, i, j)
				}
			}
		}
	}
}

func TestMonochromeUsesNoColor(t *testing.T) {
	for i, s := range buttonStyles(MonochromeTheme()) {
		fg, bg, _ := s.Decompose()
		if fg != backend.ColorDefault || bg != backend.ColorDefault {
			t.Errorf("style %d carries color", i)
		}
	}
}

func TestForProfile(t *testing.T) {
	if ForProfile(termenv.Ascii).ButtonActive != MonochromeTheme().ButtonActive {
		t.Errorf("ascii profile should be monochrome")
	}
	if ForProfile(termenv.ANSI).ButtonActive != ANSITheme().ButtonActive {
		t.Errorf("ansi profile should use the palette theme")
	}
	if ForProfile(termenv.TrueColor).ButtonActive != DefaultTheme().ButtonActive {
		t.Errorf("true color profile should use the default theme")
	}
	if Detect() == nil {
		t.Errorf("Detect returned nil")
	}
}
