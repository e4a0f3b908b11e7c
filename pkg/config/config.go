package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/logging"
)

// Config is the top-level configuration for the roving demo.
type Config struct {
	Keymap   KeymapConfig    `yaml:"keymap"`
	Focus    FocusConfig     `yaml:"focus"`
	Logging  LoggingConfig   `yaml:"logging"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Tracing  TracingConfig   `yaml:"tracing"`
	Toolbars []ToolbarConfig `yaml:"toolbars"`
}

// Keymap orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
	OrientationBoth       = "both"
)

// KeymapConfig controls which keys navigate within a group.
type KeymapConfig struct {
	Orientation string   `yaml:"orientation"`
	HomeEnd     bool     `yaml:"home_end"`
	Forward     []string `yaml:"forward"`
	Backward    []string `yaml:"backward"`
}

// FocusConfig controls pointer behavior.
type FocusConfig struct {
	PointerActivates bool `yaml:"pointer_activates"`
}

// LoggingConfig configures the JSONL event log.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// TracingConfig configures the transition tracer.
type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// ToolbarConfig describes one toolbar shown by the demo.
type ToolbarConfig struct {
	Name     string         `yaml:"name"`
	Vertical bool           `yaml:"vertical"`
	Buttons  []ButtonConfig `yaml:"buttons"`
}

// ButtonConfig describes one toolbar button.
type ButtonConfig struct {
	Label    string `yaml:"label"`
	Disabled bool   `yaml:"disabled"`
}

const dirName = ".roving"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Keymap: KeymapConfig{
			Orientation: OrientationHorizontal,
			HomeEnd:     true,
		},
		Logging: LoggingConfig{
			Level: string(logging.LevelInfo),
		},
		Metrics: MetricsConfig{
			Listen: "127.0.0.1:9464",
		},
		Toolbars: []ToolbarConfig{
			{
				Name: "formatting",
				Buttons: []ButtonConfig{
					{Label: "Bold"},
					{Label: "Italic"},
					{Label: "Underline"},
				},
			},
			{
				Name: "alignment",
				Buttons: []ButtonConfig{
					{Label: "Left", Disabled: true},
					{Label: "Center"},
					{Label: "Right"},
				},
			},
		},
	}
}

// Paths returns the user and project config file locations, in load order.
func Paths() []string {
	var paths []string
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, dirName, "config.yaml"))
	}
	return append(paths, filepath.Join(".", dirName, "config.yaml"))
}

// Load reads ~/.roving/config.yaml and ./.roving/config.yaml over the
// defaults, then applies environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	paths := Paths()
	for i, path := range paths {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			scope := "user"
			if i == len(paths)-1 {
				scope = "project"
			}
			return nil, fmt.Errorf("loading %s config: %w", scope, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		if os.IsNotExist(err) {
			err = apperrors.Wrap(err, apperrors.ErrCodeConfigLoad, "reading config file").
				WithContext("path", path).
				WithRemediation("check the -config path")
		}
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROVING_ORIENTATION"); v != "" {
		cfg.Keymap.Orientation = strings.ToLower(strings.TrimSpace(v))
	}
	if val, ok := envBool("ROVING_HOME_END"); ok {
		cfg.Keymap.HomeEnd = val
	}
	if val, ok := envBool("ROVING_POINTER_ACTIVATES"); ok {
		cfg.Focus.PointerActivates = val
	}
	if v := os.Getenv("ROVING_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ROVING_LOG_FILE"); v != "" {
		cfg.Logging.File = expandHomeDir(v)
	}
	if val, ok := envBool("ROVING_METRICS"); ok {
		cfg.Metrics.Enabled = val
	}
	if v := os.Getenv("ROVING_METRICS_LISTEN"); v != "" {
		cfg.Metrics.Listen = v
	}
	if val, ok := envBool("ROVING_TRACING"); ok {
		cfg.Tracing.Enabled = val
	}
	if v := os.Getenv("ROVING_TRACE_FILE"); v != "" {
		cfg.Tracing.File = expandHomeDir(v)
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// namedKeys lists the key names accepted in keymap.forward/backward.
var namedKeys = map[string]bool{
	"right": true, "left": true, "up": true, "down": true,
	"home": true, "end": true, "tab": true, "backtab": true,
	"pgup": true, "pgdn": true,
}

// IsKeyName reports whether name is a recognised key binding: one of the
// named keys or a single printable rune.
func IsKeyName(name string) bool {
	if namedKeys[strings.ToLower(name)] {
		return true
	}
	return utf8.RuneCountInString(name) == 1 && name != " "
}

// Validate checks the configuration for values the demo cannot honor.
func (c *Config) Validate() error {
	switch c.Keymap.Orientation {
	case OrientationHorizontal, OrientationVertical, OrientationBoth:
	default:
		return invalid("keymap.orientation", c.Keymap.Orientation,
			"use horizontal, vertical, or both")
	}
	for _, name := range append(append([]string{}, c.Keymap.Forward...), c.Keymap.Backward...) {
		if !IsKeyName(name) {
			return invalid("keymap", name, "use a named key (right, left, up, down, home, end, tab) or a single character")
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level", c.Logging.Level, "use debug, info, warn, or error")
	}

	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Listen) == "" {
		return invalid("metrics.listen", c.Metrics.Listen, "set a listen address or disable metrics")
	}

	names := make(map[string]bool, len(c.Toolbars))
	for i, tb := range c.Toolbars {
		if strings.TrimSpace(tb.Name) == "" {
			return invalid(fmt.Sprintf("toolbars[%d].name", i), tb.Name, "every toolbar needs a name")
		}
		if names[tb.Name] {
			return invalid(fmt.Sprintf("toolbars[%d].name", i), tb.Name, "toolbar names must be unique")
		}
		names[tb.Name] = true
		if len(tb.Buttons) == 0 {
			return invalid(fmt.Sprintf("toolbars[%d].buttons", i), "", "every toolbar needs at least one button")
		}
		labels := make(map[string]bool, len(tb.Buttons))
		for j, b := range tb.Buttons {
			field := fmt.Sprintf("toolbars[%d].buttons[%d].label", i, j)
			if strings.TrimSpace(b.Label) == "" {
				return invalid(field, b.Label, "buttons need a label")
			}
			if labels[b.Label] {
				return invalid(field, b.Label, "labels must be unique within a toolbar")
			}
			labels[b.Label] = true
		}
	}
	return nil
}

func invalid(field, value, tip string) error {
	return apperrors.New(apperrors.ErrCodeConfigInvalid, fmt.Sprintf("invalid %s: %q", field, value)).
		WithContext("field", field).
		WithRemediation(tip)
}
