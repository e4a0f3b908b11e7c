package runtime

import (
	"testing"

	"github.com/odvcencio/roving/pkg/ui/terminal"
)

func newTestScreen(t *testing.T) (*Screen, *focusableWidget, *focusableWidget) {
	t.Helper()
	a, b := newFocusable("a"), newFocusable("b")
	s := NewScreen(20, 5, nil)
	s.SetRoot(VBox(Fixed(a), Fixed(b)))
	s.Render()
	return s, a, b
}

func press(x, y int) MouseMsg {
	return MouseMsg{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress}
}

func TestScreen_SetRootFocusesFirst(t *testing.T) {
	s, a, _ := newTestScreen(t)

	if s.FocusScope().Current() != a || !a.focused {
		t.Fatal("first focusable should take focus")
	}
	if s.FocusScope().Count() != 2 {
		t.Fatalf("Count() = %d", s.FocusScope().Count())
	}
}

func TestScreen_TabCyclesFocus(t *testing.T) {
	s, a, b := newTestScreen(t)

	if !s.HandleMessage(KeyMsg{Key: terminal.KeyTab}).Handled {
		t.Fatal("Tab should be handled")
	}
	if s.FocusScope().Current() != b || a.focused {
		t.Fatal("Tab should move focus to b")
	}

	s.HandleMessage(KeyMsg{Key: terminal.KeyTab})
	if s.FocusScope().Current() != a {
		t.Fatal("Tab should wrap to a")
	}

	s.HandleMessage(KeyMsg{Key: terminal.KeyBacktab})
	if s.FocusScope().Current() != b {
		t.Fatal("Shift+Tab should wrap to b")
	}
}

func TestScreen_FocusedWidgetSeesKeysFirst(t *testing.T) {
	s, a, b := newTestScreen(t)
	a.onMsg = func(msg Message) HandleResult {
		if k, ok := msg.(KeyMsg); ok && k.Key == terminal.KeyTab {
			return Handled()
		}
		return Unhandled()
	}

	s.HandleMessage(KeyMsg{Key: terminal.KeyTab})

	if s.FocusScope().Current() != a {
		t.Fatal("a consumed Tab, focus should not move")
	}
	if len(a.msgs) != 1 {
		t.Fatalf("a saw %d messages, want 1", len(a.msgs))
	}
	if len(b.msgs) != 0 {
		t.Fatalf("b saw %d messages, want 0", len(b.msgs))
	}
}

func TestScreen_UnhandledKeysReachRoot(t *testing.T) {
	s, a, b := newTestScreen(t)

	result := s.HandleMessage(KeyMsg{Key: terminal.KeyRune, Rune: 'x'})

	if result.Handled {
		t.Fatal("no widget handles 'x'")
	}
	// The focused widget sees it directly and again through the root.
	if len(a.msgs) != 2 || len(b.msgs) != 1 {
		t.Fatalf("unexpected deliveries a=%d b=%d", len(a.msgs), len(b.msgs))
	}
}

func TestScreen_WidgetCommandsMoveFocus(t *testing.T) {
	s, a, b := newTestScreen(t)
	a.onMsg = func(Message) HandleResult { return WithCommand(FocusNext{}) }

	s.HandleMessage(KeyMsg{Key: terminal.KeyRight})

	if s.FocusScope().Current() != b {
		t.Fatal("FocusNext command should move focus")
	}
}

func TestScreen_MousePressFocusesHitWidget(t *testing.T) {
	s, a, b := newTestScreen(t)

	s.HandleMessage(press(3, 1))

	if s.FocusScope().Current() != b || a.focused {
		t.Fatal("press on b should focus it")
	}
	if len(b.msgs) != 1 {
		t.Fatalf("b should receive the press, got %d messages", len(b.msgs))
	}
	if _, ok := b.msgs[0].(MouseMsg); !ok {
		t.Fatalf("unexpected message %T", b.msgs[0])
	}
}

func TestScreen_MousePressOnEmptySpaceClearsFocus(t *testing.T) {
	s, a, _ := newTestScreen(t)

	if !s.HandleMessage(press(3, 4)).Handled {
		t.Fatal("press on empty space should be handled")
	}
	if s.FocusScope().Current() != nil || a.focused {
		t.Fatal("focus should be cleared")
	}

	// Rendering again must not steal focus back.
	s.Render()
	if s.FocusScope().Current() != nil {
		t.Fatal("render should leave the scope unfocused")
	}

	s.HandleMessage(KeyMsg{Key: terminal.KeyTab})
	if s.FocusScope().Current() != a {
		t.Fatal("Tab from nothing should focus the first widget")
	}
}

func TestScreen_MouseReleaseDoesNotMoveFocus(t *testing.T) {
	s, a, b := newTestScreen(t)

	s.HandleMessage(MouseMsg{X: 3, Y: 1, Button: terminal.MouseLeft, Action: terminal.MouseRelease})

	if s.FocusScope().Current() != a {
		t.Fatal("release should not move focus")
	}
	if len(b.msgs) != 1 {
		t.Fatal("release should still reach the widget under the pointer")
	}
}

func TestScreen_ResizeRelayouts(t *testing.T) {
	s, a, _ := newTestScreen(t)

	s.Resize(8, 3)

	if w, h := s.Size(); w != 8 || h != 3 {
		t.Fatalf("Size() = %d,%d", w, h)
	}
	if a.bounds.Width != 8 {
		t.Fatalf("a width = %d, want 8", a.bounds.Width)
	}
}

func TestScreen_MousePressOnUnfocusableWidgetClearsFocus(t *testing.T) {
	s, a, b := newTestScreen(t)
	b.canFocus = false
	s.Render()

	s.HandleMessage(press(3, 1))

	if s.FocusScope().Current() != nil || a.focused {
		t.Fatal("press on a widget that cannot focus should clear focus")
	}
	if a.blurs != 1 {
		t.Fatalf("a should be blurred once, got %d", a.blurs)
	}
	if len(b.msgs) != 1 {
		t.Fatal("the press should still reach the widget under the pointer")
	}
}
