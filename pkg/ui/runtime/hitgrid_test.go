package runtime

import "testing"

func TestHitGrid_WidgetAt(t *testing.T) {
	g := NewHitGrid(10, 4)
	a, b := newFocusable("a"), newFocusable("b")

	g.Add(a, Rect{X: 0, Y: 0, Width: 5, Height: 2})
	g.Add(b, Rect{X: 3, Y: 1, Width: 10, Height: 5})

	if g.WidgetAt(1, 0) != a {
		t.Error("expected a at 1,0")
	}
	if g.WidgetAt(4, 1) != b {
		t.Error("later entries should win where bounds overlap")
	}
	if g.WidgetAt(9, 3) != b {
		t.Error("clipped bounds should still register")
	}
	if g.WidgetAt(8, 0) != nil || g.WidgetAt(-1, 0) != nil || g.WidgetAt(10, 0) != nil {
		t.Error("expected no widget outside registered bounds")
	}

	g.Clear()
	if g.WidgetAt(1, 0) != nil {
		t.Error("Clear should drop all regions")
	}
}

func TestHitGrid_ResizeClears(t *testing.T) {
	g := NewHitGrid(4, 4)
	a := newFocusable("a")
	g.Add(a, Rect{Width: 4, Height: 4})

	g.Resize(4, 4)
	if g.WidgetAt(0, 0) != nil {
		t.Error("Resize should clear even when dimensions are unchanged")
	}

	g.Resize(2, 2)
	g.Add(nil, Rect{Width: 2, Height: 2})
	g.Add(a, Rect{X: 5, Y: 5, Width: 2, Height: 2})
	if g.WidgetAt(1, 1) != nil {
		t.Error("nil widgets and off-grid bounds should be ignored")
	}
}
