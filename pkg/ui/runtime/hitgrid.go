package runtime

// HitGrid maps screen cells to focusable widgets for mouse routing. It is
// rebuilt after every render from the widgets' layout bounds; later entries
// win where bounds overlap.
type HitGrid struct {
	width   int
	height  int
	cells   []int
	widgets []Focusable
}

// NewHitGrid creates a new hit grid with the given dimensions.
func NewHitGrid(width, height int) *HitGrid {
	grid := &HitGrid{}
	grid.Resize(width, height)
	return grid
}

// Resize updates the hit grid dimensions and clears it.
func (g *HitGrid) Resize(width, height int) {
	if width != g.width || height != g.height {
		g.width = width
		g.height = height
		g.cells = make([]int, max(0, width*height))
	}
	g.Clear()
}

// Clear resets the grid contents.
func (g *HitGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = -1
	}
	g.widgets = g.widgets[:0]
}

// Add records a widget occupying the specified bounds.
func (g *HitGrid) Add(widget Focusable, bounds Rect) {
	if widget == nil {
		return
	}
	bounds = bounds.Intersection(Rect{Width: g.width, Height: g.height})
	if bounds.Empty() {
		return
	}

	id := len(g.widgets)
	g.widgets = append(g.widgets, widget)

	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		row := y * g.width
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			g.cells[row+x] = id
		}
	}
}

// WidgetAt returns the widget at the given screen position, or nil.
func (g *HitGrid) WidgetAt(x, y int) Focusable {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	idx := g.cells[y*g.width+x]
	if idx < 0 || idx >= len(g.widgets) {
		return nil
	}
	return g.widgets[idx]
}
