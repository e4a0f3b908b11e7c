package runtime

// Command represents an action/intent emitted by widgets.
// Commands bubble up from widgets to the app for handling.
type Command interface {
	isCommand()
}

// Quit signals the application should exit.
type Quit struct{}

func (Quit) isCommand() {}

// Refresh requests a full screen redraw.
type Refresh struct{}

func (Refresh) isCommand() {}

// FocusNext requests focus move to the next focusable widget.
type FocusNext struct{}

func (FocusNext) isCommand() {}

// FocusPrev requests focus move to the previous focusable widget.
type FocusPrev struct{}

func (FocusPrev) isCommand() {}

// Pressed reports that a toolbar button was activated with Enter, Space or a
// click.
type Pressed struct {
	Toolbar string
	Label   string
}

func (Pressed) isCommand() {}

// FocusChanged reports that keyboard navigation or a click moved the roving
// tab stop inside a toolbar.
type FocusChanged struct {
	Toolbar string
	Label   string
	Active  bool
}

func (FocusChanged) isCommand() {}
