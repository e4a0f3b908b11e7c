package runtime

import "testing"

func TestFlex_ColumnLayout(t *testing.T) {
	a, b, c := newFocusable("a"), newFocusable("b"), newFocusable("c")
	f := VBox(Fixed(a), Expanded(b), Fixed(c)).WithGap(1)

	f.Layout(Rect{Width: 20, Height: 10})

	if a.bounds != (Rect{Width: 20, Height: 1}) {
		t.Errorf("a bounds = %+v", a.bounds)
	}
	if b.bounds != (Rect{Y: 2, Width: 20, Height: 6}) {
		t.Errorf("b bounds = %+v", b.bounds)
	}
	if c.bounds != (Rect{Y: 9, Width: 20, Height: 1}) {
		t.Errorf("c bounds = %+v", c.bounds)
	}
}

func TestFlex_RowMeasure(t *testing.T) {
	f := HBox(Fixed(newFocusable("a")), Fixed(newFocusable("b"))).WithGap(2)

	got := f.Measure(Loose(100, 5))
	if got != (Size{Width: 22, Height: 1}) {
		t.Fatalf("Measure = %+v", got)
	}
}

func TestFlex_AddRemove(t *testing.T) {
	a, b := newFocusable("a"), newFocusable("b")
	f := VBox(Fixed(a))
	f.Add(Fixed(b))

	if len(f.ChildWidgets()) != 2 {
		t.Fatalf("expected two children")
	}
	if !f.Remove(a) || f.Remove(a) {
		t.Fatal("Remove should succeed once")
	}
	if kids := f.ChildWidgets(); len(kids) != 1 || kids[0] != b {
		t.Fatalf("unexpected children %v", kids)
	}
}
