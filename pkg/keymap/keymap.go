// Package keymap translates terminal key presses into roving navigation
// intents. Which keys navigate is a caller concern: a horizontal toolbar
// uses Left/Right, a vertical menu Up/Down.
package keymap

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/odvcencio/roving/pkg/config"
	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/roving"
	"github.com/odvcencio/roving/pkg/ui/terminal"
)

// Binding is a single key, either a named key or a rune.
type Binding struct {
	Key  terminal.Key
	Rune rune
}

// ParseBinding resolves a key name from configuration.
func ParseBinding(name string) (Binding, error) {
	if k, ok := terminal.LookupKey(name); ok {
		return Binding{Key: k}, nil
	}
	if utf8.RuneCountInString(name) == 1 && name != " " {
		r, _ := utf8.DecodeRuneInString(name)
		return Binding{Key: terminal.KeyRune, Rune: r}, nil
	}
	return Binding{}, apperrors.New(apperrors.ErrCodeInvalidInput, fmt.Sprintf("unknown key %q", name))
}

// Keymap maps keys to intents.
type Keymap struct {
	Orientation string
	HomeEnd     bool
	extra       map[Binding]roving.Intent
}

// Default returns the horizontal keymap with Home/End enabled.
func Default() *Keymap {
	return &Keymap{Orientation: config.OrientationHorizontal, HomeEnd: true}
}

// FromConfig builds a keymap from the keymap config section.
func FromConfig(cfg config.KeymapConfig) (*Keymap, error) {
	km := &Keymap{
		Orientation: strings.ToLower(cfg.Orientation),
		HomeEnd:     cfg.HomeEnd,
	}
	if km.Orientation == "" {
		km.Orientation = config.OrientationHorizontal
	}
	for _, name := range cfg.Forward {
		if err := km.Bind(name, roving.IntentForward); err != nil {
			return nil, err
		}
	}
	for _, name := range cfg.Backward {
		if err := km.Bind(name, roving.IntentBackward); err != nil {
			return nil, err
		}
	}
	return km, nil
}

// Bind adds an extra key for intent. Extra bindings take precedence over the
// orientation keys.
func (km *Keymap) Bind(name string, intent roving.Intent) error {
	b, err := ParseBinding(name)
	if err != nil {
		return err
	}
	if km.extra == nil {
		km.extra = make(map[Binding]roving.Intent)
	}
	km.extra[b] = intent
	return nil
}

// Resolve returns the intent for a key press, or roving.IntentNone when the
// key does not navigate.
func (km *Keymap) Resolve(key terminal.Key, r rune) roving.Intent {
	if km == nil {
		return roving.IntentNone
	}
	b := Binding{Key: key}
	if key == terminal.KeyRune {
		b.Rune = r
	}
	if intent, ok := km.extra[b]; ok {
		return intent
	}

	horizontal := km.Orientation != config.OrientationVertical
	vertical := km.Orientation == config.OrientationVertical || km.Orientation == config.OrientationBoth

	switch key {
	case terminal.KeyRight:
		if horizontal {
			return roving.IntentForward
		}
	case terminal.KeyLeft:
		if horizontal {
			return roving.IntentBackward
		}
	case terminal.KeyDown:
		if vertical {
			return roving.IntentForward
		}
	case terminal.KeyUp:
		if vertical {
			return roving.IntentBackward
		}
	case terminal.KeyHome:
		if km.HomeEnd {
			return roving.IntentFirst
		}
	case terminal.KeyEnd:
		if km.HomeEnd {
			return roving.IntentLast
		}
	}
	return roving.IntentNone
}
