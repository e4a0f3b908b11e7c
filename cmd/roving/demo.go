package main

import (
	"fmt"
	"slices"

	"github.com/odvcencio/roving/pkg/config"
	"github.com/odvcencio/roving/pkg/keymap"
	"github.com/odvcencio/roving/pkg/logging"
	"github.com/odvcencio/roving/pkg/roving"
	"github.com/odvcencio/roving/pkg/ui/backend"
	uiruntime "github.com/odvcencio/roving/pkg/ui/runtime"
	"github.com/odvcencio/roving/pkg/ui/terminal"
	"github.com/odvcencio/roving/pkg/ui/theme"
	"github.com/odvcencio/roving/pkg/ui/widgets"
)

// shell is the demo's root widget. It owns the quit keys and leaves
// everything else to the screen's focus routing.
type shell struct {
	*uiruntime.Flex
}

func (s *shell) HandleMessage(msg uiruntime.Message) uiruntime.HandleResult {
	if k, ok := msg.(uiruntime.KeyMsg); ok {
		if k.Key == terminal.KeyCtrlC || (k.Key == terminal.KeyRune && k.Rune == 'q') {
			return uiruntime.WithCommand(uiruntime.Quit{})
		}
	}
	return uiruntime.Unhandled()
}

// toolbarRow pairs a toolbar with the row that shows its name.
type toolbarRow struct {
	toolbar *widgets.Toolbar
	row     *uiruntime.Flex
}

// demo builds the toolbar screen from config and keeps it in step with
// config reloads. All methods run on the event loop.
type demo struct {
	logger           *logging.Logger
	groupOpts        []roving.Option
	keymap           *keymap.Keymap
	pointerActivates bool

	root   *shell
	body   *uiruntime.Flex
	status *widgets.Label
	rows   []toolbarRow
}

func newDemo(cfg *config.Config, logger *logging.Logger, groupOpts ...roving.Option) (*demo, error) {
	km, err := keymap.FromConfig(cfg.Keymap)
	if err != nil {
		return nil, err
	}
	d := &demo{
		logger:           logger,
		groupOpts:        groupOpts,
		keymap:           km,
		pointerActivates: cfg.Focus.PointerActivates,
		body:             uiruntime.VBox().WithGap(1),
		status: widgets.NewLabel("Tab to a toolbar, then use the arrow keys").
			WithThemeStyle(func(th *theme.Theme) backend.Style { return th.Status }),
	}

	dot := " " + theme.Symbols.Dot + " "
	title := widgets.NewLabel("roving" + dot + "Tab/Shift+Tab switch toolbars" + dot +
		"arrows move" + dot + "Enter presses" + dot + "q quits").
		WithThemeStyle(func(th *theme.Theme) backend.Style { return th.Title })

	d.root = &shell{Flex: uiruntime.VBox(
		uiruntime.Fixed(title),
		uiruntime.Expanded(d.body),
		uiruntime.Fixed(d.status),
	).WithGap(1)}

	for _, tc := range cfg.Toolbars {
		if err := d.addToolbar(tc); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Root returns the widget tree.
func (d *demo) Root() uiruntime.Widget {
	return d.root
}

// Toolbar returns the toolbar named name, or nil.
func (d *demo) Toolbar(name string) *widgets.Toolbar {
	for _, r := range d.rows {
		if r.toolbar.Name() == name {
			return r.toolbar
		}
	}
	return nil
}

// Status returns the status line text.
func (d *demo) Status() string {
	return d.status.Text()
}

func (d *demo) addToolbar(tc config.ToolbarConfig) error {
	tb := widgets.NewToolbar(tc.Name, d.groupOpts...).
		WithVertical(tc.Vertical).
		WithKeymap(d.keymap)
	tb.SetPointerActivates(d.pointerActivates)
	for _, bc := range tc.Buttons {
		if _, err := tb.AddButton(bc.Label, bc.Disabled); err != nil {
			tb.Close()
			return err
		}
	}

	name := widgets.NewLabel(fmt.Sprintf("%-12s", tc.Name)).
		WithThemeStyle(func(th *theme.Theme) backend.Style { return th.TextMuted })
	row := uiruntime.HBox(uiruntime.Fixed(name), uiruntime.Fixed(tb)).WithGap(1)
	d.body.Add(uiruntime.Fixed(row))
	d.rows = append(d.rows, toolbarRow{toolbar: tb, row: row})
	return nil
}

// Apply brings the screen in line with cfg: keymap, click policy, toolbars
// and their buttons. Buttons keep their roving state across reloads.
func (d *demo) Apply(cfg *config.Config) {
	km, err := keymap.FromConfig(cfg.Keymap)
	if err != nil {
		_ = d.logger.Warn(logging.CategoryConfig, "keymap_rejected", err.Error(), nil)
	} else {
		d.keymap = km
	}
	d.pointerActivates = cfg.Focus.PointerActivates

	wanted := make(map[string]bool, len(cfg.Toolbars))
	for _, tc := range cfg.Toolbars {
		wanted[tc.Name] = true
	}
	d.rows = slices.DeleteFunc(d.rows, func(r toolbarRow) bool {
		if wanted[r.toolbar.Name()] {
			return false
		}
		d.body.Remove(r.row)
		r.toolbar.Close()
		return true
	})

	for _, tc := range cfg.Toolbars {
		tb := d.Toolbar(tc.Name)
		if tb == nil {
			if err := d.addToolbar(tc); err != nil {
				_ = d.logger.Warn(logging.CategoryConfig, "toolbar_rejected", err.Error(),
					map[string]any{"toolbar": tc.Name})
			}
			continue
		}
		tb.WithVertical(tc.Vertical).SetKeymap(d.keymap)
		tb.SetPointerActivates(d.pointerActivates)
		d.syncButtons(tb, tc.Buttons)
	}

	_ = d.logger.Info(logging.CategoryConfig, "config_applied", "configuration reloaded",
		map[string]any{"toolbars": len(d.rows)})
}

// syncButtons removes buttons missing from want, updates disabled flags and
// mounts new buttons after their predecessor in want.
func (d *demo) syncButtons(tb *widgets.Toolbar, want []config.ButtonConfig) {
	keep := make(map[string]bool, len(want))
	for _, bc := range want {
		keep[bc.Label] = true
	}
	for _, b := range tb.Buttons() {
		if !keep[b.Label()] {
			tb.RemoveButton(b.Label())
		}
	}

	var prev roving.MemberID
	for _, bc := range want {
		b := tb.Button(bc.Label)
		if b == nil {
			placement := roving.At(0)
			if prev != "" {
				placement = roving.After(prev)
			}
			var err error
			if b, err = tb.AddButton(bc.Label, bc.Disabled, placement); err != nil {
				_ = d.logger.Warn(logging.CategoryConfig, "button_rejected", err.Error(),
					map[string]any{"toolbar": tb.Name(), "label": bc.Label})
				continue
			}
		} else {
			tb.SetDisabled(bc.Label, bc.Disabled)
		}
		prev = b.Member().ID()
	}
}

// HandleCommand reports toolbar activity on the status line.
func (d *demo) HandleCommand(cmd uiruntime.Command) bool {
	switch c := cmd.(type) {
	case uiruntime.Pressed:
		d.status.SetText(fmt.Sprintf("Pressed %s %s %s", c.Toolbar, theme.Symbols.Arrow, c.Label))
		_ = d.logger.Info(logging.CategoryFocus, "button_pressed", "button pressed",
			map[string]any{"toolbar": c.Toolbar, "label": c.Label})
		return true
	case uiruntime.FocusChanged:
		state := "selected"
		if c.Active {
			state = "active"
		}
		d.status.SetText(fmt.Sprintf("%s %s %s (%s)", c.Toolbar, theme.Symbols.Arrow, c.Label, state))
		return true
	default:
		return false
	}
}

// Close destroys every toolbar group.
func (d *demo) Close() {
	for _, r := range d.rows {
		r.toolbar.Close()
	}
}
