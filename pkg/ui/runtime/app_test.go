package runtime

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/ui/backend/sim"
	"github.com/odvcencio/roving/pkg/ui/terminal"
)

// textWidget renders a fixed string and quits on 'q'.
type textWidget struct {
	text   string
	bounds Rect
}

func (w *textWidget) Measure(c Constraints) Size {
	return c.Constrain(Size{Width: StringWidth(w.text), Height: 1})
}
func (w *textWidget) Layout(bounds Rect) { w.bounds = bounds }
func (w *textWidget) Render(ctx RenderContext) {
	ctx.Buffer.SetString(ctx.Bounds.X, ctx.Bounds.Y, w.text, ctx.Theme.TextPrimary, ctx.Bounds.Width)
}
func (w *textWidget) HandleMessage(msg Message) HandleResult {
	if k, ok := msg.(KeyMsg); ok && k.Key == terminal.KeyRune && k.Rune == 'q' {
		return WithCommand(Quit{})
	}
	return Unhandled()
}

func startApp(t *testing.T, cfg AppConfig) (*App, *sim.Backend, context.CancelFunc, <-chan error) {
	t.Helper()
	backend := sim.New(30, 6)
	cfg.Backend = backend
	app := NewApp(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-app.Done()
	})

	select {
	case <-app.Started():
	case <-time.After(2 * time.Second):
		t.Fatal("app did not start")
	}
	return app, backend, cancel, errCh
}

func waitExit(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
		return nil
	}
}

func TestApp_RunRequiresBackend(t *testing.T) {
	err := NewApp(AppConfig{}).Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeBackendInit) {
		t.Fatalf("expected BACKEND_INIT, got %v", err)
	}
}

func TestApp_RendersRoot(t *testing.T) {
	_, backend, _, _ := startApp(t, AppConfig{Root: &textWidget{text: "hello toolbar"}})

	if !backend.ContainsText("hello toolbar") {
		t.Fatalf("root not rendered:\n%s", backend.Capture())
	}
}

func TestApp_QuitCommandStopsLoop(t *testing.T) {
	_, backend, _, errCh := startApp(t, AppConfig{Root: &textWidget{text: "q quits"}})

	backend.InjectKeyRune('q')

	if err := waitExit(t, errCh); err != nil {
		t.Fatalf("Run returned %v, want nil", err)
	}
}

func TestApp_ContextCancelStopsLoop(t *testing.T) {
	_, _, cancel, errCh := startApp(t, AppConfig{Root: &textWidget{text: "idle"}})

	cancel()

	if err := waitExit(t, errCh); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
}

func TestApp_CallRunsOnLoop(t *testing.T) {
	app, backend, cancel, errCh := startApp(t, AppConfig{Root: &textWidget{text: "before"}})

	ran := make(chan struct{})
	err := app.Call(context.Background(), func(a *App) bool {
		a.Screen().SetRoot(&textWidget{text: "after"})
		close(ran)
		return true
	})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	<-ran

	// A second call orders after the render triggered by the first.
	done := make(chan struct{})
	if err := app.Call(context.Background(), func(*App) bool { close(done); return false }); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	<-done
	if !backend.ContainsText("after") {
		t.Fatalf("expected re-render:\n%s", backend.Capture())
	}

	cancel()
	waitExit(t, errCh)
	if err := app.Call(context.Background(), func(*App) bool { return false }); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Call after exit returned %v, want ErrNotRunning", err)
	}
}

func TestApp_PostedKeysMoveFocus(t *testing.T) {
	a, b := newFocusable("a"), newFocusable("b")
	app, _, _, _ := startApp(t, AppConfig{Root: VBox(Fixed(a), Fixed(b))})

	app.Post(KeyMsg{Key: terminal.KeyTab})

	got := make(chan Focusable, 1)
	if err := app.Call(context.Background(), func(app *App) bool {
		got <- app.Screen().FocusScope().Current()
		return false
	}); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if f := <-got; f != b {
		t.Fatalf("focused %v, want b", f)
	}
}

func TestApp_CommandHandlerReceivesWidgetCommands(t *testing.T) {
	w := newFocusable("w")
	w.onMsg = func(msg Message) HandleResult {
		if _, ok := msg.(KeyMsg); ok {
			return WithCommand(Pressed{Toolbar: "formatting", Label: "Bold"})
		}
		return Unhandled()
	}
	got := make(chan Command, 1)
	app, _, _, _ := startApp(t, AppConfig{
		Root: VBox(Fixed(w)),
		CommandHandler: func(cmd Command) bool {
			got <- cmd
			return false
		},
	})

	app.Post(KeyMsg{Key: terminal.KeyEnter})

	select {
	case cmd := <-got:
		if p, ok := cmd.(Pressed); !ok || p.Label != "Bold" {
			t.Fatalf("unexpected command %#v", cmd)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("command not delivered")
	}
}
