package runtime

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/logging"
	"github.com/odvcencio/roving/pkg/ui/backend"
	"github.com/odvcencio/roving/pkg/ui/terminal"
	"github.com/odvcencio/roving/pkg/ui/theme"
)

// ErrNotRunning is returned by Call when the event loop has exited.
var ErrNotRunning = errors.New("app is not running")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Theme          *theme.Theme
	Update         UpdateFunc
	CommandHandler CommandHandler
	Logger         *logging.Logger
	MessageBuffer  int
}

// App runs a widget tree against a terminal backend. Everything that touches
// widgets happens on the goroutine running Run.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	theme          *theme.Theme
	update         UpdateFunc
	commandHandler CommandHandler
	logger         *logging.Logger
	messages       chan Message
	started        chan struct{}
	done           chan struct{}
	startOnce      sync.Once

	running bool
	dirty   bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	update := cfg.Update
	if update == nil {
		update = DefaultUpdate
	}
	return &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		theme:          cfg.Theme,
		update:         update,
		commandHandler: cfg.CommandHandler,
		logger:         cfg.Logger,
		messages:       make(chan Message, bufferSize),
		started:        make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Screen returns the active screen, if initialized. Only call it from the
// event loop or after Started is closed.
func (a *App) Screen() *Screen {
	return a.screen
}

// Started is closed once the screen exists and the loop is running.
func (a *App) Started() <-chan struct{} {
	return a.started
}

// Done is closed when Run returns.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// SetTheme swaps the active theme.
func (a *App) SetTheme(th *theme.Theme) {
	a.theme = th
	if a.screen != nil {
		a.screen.SetTheme(th)
		a.dirty = true
	}
}

// Post sends a message to the event loop. Input messages are dropped when
// the queue is full.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
	}
}

// Call queues fn to run on the event loop. It blocks until the message is
// queued and fails once the loop has exited.
func (a *App) Call(ctx context.Context, fn func(app *App) bool) error {
	select {
	case <-a.done:
		return ErrNotRunning
	default:
	}
	select {
	case a.messages <- CallMsg{Fn: fn}:
		return nil
	case <-a.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.startOnce.Do(func() { close(a.started) })
	defer close(a.done)

	if a.backend == nil {
		return apperrors.New(apperrors.ErrCodeBackendInit, "backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackendInit, "init backend").
			WithRemediation("run from an interactive terminal")
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	if a.theme == nil {
		a.theme = theme.DefaultTheme()
	}
	a.screen = NewScreen(w, h, a.theme)
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}

	a.running = true
	a.dirty = true
	_ = a.logger.Info(logging.CategoryRuntime, "app_start", "event loop started",
		map[string]any{"width": w, "height": h})

	go a.pollEvents()

	for a.running {
		if a.dirty {
			a.render()
			a.dirty = false
		}
		a.startOnce.Do(func() { close(a.started) })

		select {
		case <-ctx.Done():
			a.running = false
		case msg := <-a.messages:
			if a.update(a, msg) {
				a.dirty = true
			}
		}
	}

	_ = a.logger.Info(logging.CategoryRuntime, "app_stop", "event loop stopped", nil)
	return ctx.Err()
}

// DefaultUpdate handles input messages, loop calls and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case CallMsg:
		if m.Fn == nil {
			return false
		}
		return m.Fn(app)
	default:
		result := app.screen.HandleMessage(msg)
		dirty := result.Handled
		for _, cmd := range result.Commands {
			if app.handleCommand(cmd) {
				dirty = true
			}
		}
		return dirty
	}
}

func (a *App) handleCommand(cmd Command) bool {
	switch cmd.(type) {
	case Quit:
		a.running = false
		return false
	case Refresh:
		a.screen.Buffer().MarkAllDirty()
		return true
	case FocusNext, FocusPrev:
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

func (a *App) pollEvents() {
	for {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}

		var msg Message
		switch e := ev.(type) {
		case terminal.KeyEvent:
			msg = KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
		case terminal.ResizeEvent:
			msg = ResizeMsg{Width: e.Width, Height: e.Height}
		case terminal.MouseEvent:
			msg = MouseMsg{X: e.X, Y: e.Y, Button: e.Button, Action: e.Action, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
		default:
			continue
		}

		select {
		case a.messages <- msg:
		case <-a.done:
			return
		}
	}
}

func (a *App) render() {
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		buf.ForEachDirtyCell(func(x, y int, cell Cell) {
			if cell.Rune == 0 {
				return
			}
			a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
		})
		buf.ClearDirty()
	}
	a.backend.Show()
}
