package runtime

import "slices"

// FlexDirection specifies the main axis of a flex container.
type FlexDirection int

const (
	Column FlexDirection = iota // Vertical (VBox)
	Row                         // Horizontal (HBox)
)

// FlexChild wraps a widget with flex layout properties.
type FlexChild struct {
	Widget Widget
	Grow   int // Share of leftover main-axis space (0 = fixed)
}

// Fixed creates a child that keeps its measured size.
func Fixed(w Widget) FlexChild {
	return FlexChild{Widget: w}
}

// Expanded creates a child that grows to fill available space.
func Expanded(w Widget) FlexChild {
	return FlexChild{Widget: w, Grow: 1}
}

// Flex is a container that lays out children along an axis.
type Flex struct {
	Direction FlexDirection
	Children  []FlexChild
	Gap       int // Space between children

	bounds      Rect
	childBounds []Rect
}

// VBox creates a vertical flex container.
func VBox(children ...FlexChild) *Flex {
	return &Flex{Direction: Column, Children: children}
}

// HBox creates a horizontal flex container.
func HBox(children ...FlexChild) *Flex {
	return &Flex{Direction: Row, Children: children}
}

// WithGap sets the gap between children.
func (f *Flex) WithGap(gap int) *Flex {
	f.Gap = gap
	return f
}

// Add appends a child. Call Layout again before the next render.
func (f *Flex) Add(child FlexChild) {
	f.Children = append(f.Children, child)
}

// Remove drops the child holding w and reports whether it was present.
func (f *Flex) Remove(w Widget) bool {
	i := slices.IndexFunc(f.Children, func(c FlexChild) bool { return c.Widget == w })
	if i < 0 {
		return false
	}
	f.Children = slices.Delete(f.Children, i, i+1)
	return true
}

func (f *Flex) childConstraints(c Constraints) Constraints {
	if f.Direction == Column {
		return Constraints{MinWidth: c.MinWidth, MaxWidth: c.MaxWidth, MaxHeight: maxInt}
	}
	return Constraints{MaxWidth: maxInt, MinHeight: c.MinHeight, MaxHeight: c.MaxHeight}
}

func (f *Flex) gaps() int {
	if len(f.Children) < 2 {
		return 0
	}
	return f.Gap * (len(f.Children) - 1)
}

// Measure calculates the desired size of the flex container.
func (f *Flex) Measure(constraints Constraints) Size {
	main, cross := f.gaps(), 0
	cc := f.childConstraints(constraints)
	for _, child := range f.Children {
		s := child.Widget.Measure(cc)
		main += f.mainSize(s)
		cross = max(cross, f.crossSize(s))
	}
	if f.Direction == Column {
		return constraints.Constrain(Size{Width: cross, Height: main})
	}
	return constraints.Constrain(Size{Width: main, Height: cross})
}

// Layout positions all children within the given bounds.
func (f *Flex) Layout(bounds Rect) {
	f.bounds = bounds
	f.childBounds = make([]Rect, len(f.Children))
	if len(f.Children) == 0 {
		return
	}

	cc := f.childConstraints(Loose(bounds.Width, bounds.Height))
	sizes := make([]int, len(f.Children))
	fixed, grow := f.gaps(), 0
	for i, child := range f.Children {
		sizes[i] = f.mainSize(child.Widget.Measure(cc))
		if child.Grow == 0 {
			fixed += sizes[i]
		}
		grow += child.Grow
	}
	available := max(0, f.mainSize(bounds.Size())-fixed)

	offset := 0
	for i, child := range f.Children {
		size := sizes[i]
		if child.Grow > 0 {
			size = available * child.Grow / grow
		}
		var r Rect
		if f.Direction == Column {
			r = Rect{X: bounds.X, Y: bounds.Y + offset, Width: bounds.Width, Height: size}
		} else {
			r = Rect{X: bounds.X + offset, Y: bounds.Y, Width: size, Height: bounds.Height}
		}
		f.childBounds[i] = r
		child.Widget.Layout(r)
		offset += size + f.Gap
	}
}

// Bounds returns the assigned bounds for the flex container.
func (f *Flex) Bounds() Rect {
	return f.bounds
}

// ChildWidgets returns the flex container's child widgets.
func (f *Flex) ChildWidgets() []Widget {
	children := make([]Widget, 0, len(f.Children))
	for _, child := range f.Children {
		if child.Widget != nil {
			children = append(children, child.Widget)
		}
	}
	return children
}

// Render draws all children.
func (f *Flex) Render(ctx RenderContext) {
	for i, child := range f.Children {
		if i < len(f.childBounds) {
			child.Widget.Render(ctx.Sub(f.childBounds[i]))
		}
	}
}

// HandleMessage dispatches to children; first handler wins.
func (f *Flex) HandleMessage(msg Message) HandleResult {
	for _, child := range f.Children {
		if result := child.Widget.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return Unhandled()
}

func (f *Flex) mainSize(s Size) int {
	if f.Direction == Column {
		return s.Height
	}
	return s.Width
}

func (f *Flex) crossSize(s Size) int {
	if f.Direction == Column {
		return s.Width
	}
	return s.Height
}
