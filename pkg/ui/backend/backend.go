// Package backend defines the terminal backend interface for the widget
// runtime. Swapping tcell for the simulation backend lets tests drive the
// runtime with injected key and mouse events.
package backend

import "github.com/odvcencio/roving/pkg/ui/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init initializes the backend (enters alt screen, raw mode, mouse).
	Init() error

	// Fini restores terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show synchronizes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Beep emits an audible bell.
	Beep()

	// Sync forces a full redraw on next Show().
	Sync()
}
