package backend

import "testing"

func TestStyleAttributes(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true)
	if s.Attributes() != AttrBold|AttrUnderline {
		t.Fatalf("attrs = %b", s.Attributes())
	}
	s = s.Bold(false)
	if s.Attributes() != AttrUnderline {
		t.Fatalf("attrs after clearing bold = %b", s.Attributes())
	}
}

func TestColorRGB(t *testing.T) {
	c := ColorRGB(10, 20, 30)
	if !c.IsRGB() {
		t.Fatalf("expected RGB color")
	}
	r, g, b := c.RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("RGB() = %d,%d,%d", r, g, b)
	}
	if ColorDefault.IsRGB() || ColorRed.IsRGB() {
		t.Fatalf("palette colors are not RGB")
	}
}

func TestStyleDecompose(t *testing.T) {
	fg, bg, attrs := DefaultStyle().Foreground(ColorCyan).Background(ColorBlack).Reverse(true).Decompose()
	if fg != ColorCyan || bg != ColorBlack || attrs != AttrReverse {
		t.Fatalf("Decompose() = %v %v %v", fg, bg, attrs)
	}
}
