package runtime

import "github.com/odvcencio/roving/pkg/ui/terminal"

// Message represents an event flowing into the UI.
// Messages come from terminal input or background goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// IsPress reports whether the message is a left button press.
func (m MouseMsg) IsPress() bool {
	return m.Action == terminal.MousePress && m.Button == terminal.MouseLeft
}

// CallMsg runs Fn on the event loop goroutine. Widgets and roving groups are
// not safe for concurrent use; background producers hand work to the loop
// through CallMsg. Fn reports whether a render is needed.
type CallMsg struct {
	Fn func(app *App) bool
}

func (CallMsg) isMessage() {}
