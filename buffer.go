package cooked

// Grid is a flat row-major cell array backing a TextBuffer
// implementation's read_rect/write_rect operations. Adapted from the
// framework's own cell-grid Buffer type, stripped of layout/widget
// concerns this component has no use for.
type Grid struct {
	cells  []Cell
	width  int
	height int
}

func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.cells = make([]Cell, width*height)
	g.Clear()
	return g
}

func (g *Grid) Size() (int, int) { return g.width, g.height }

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = EmptyCell()
	}
}

func (g *Grid) Get(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return EmptyCell()
	}
	return g.cells[row*g.width+col]
}

func (g *Grid) Set(row, col int, c Cell) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	g.cells[row*g.width+col] = c
}

// ReadRect copies r's cells out in row-major order, clipped to the grid.
func (g *Grid) ReadRect(r Rect) []Cell {
	out := make([]Cell, r.Width*r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out[y*r.Width+x] = g.Get(r.Y+y, r.X+x)
		}
	}
	return out
}

// WriteRect paints cells (row-major, r.Width×r.Height) into the grid
// at r, clipped to the grid.
func (g *Grid) WriteRect(cells []Cell, r Rect) {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			idx := y*r.Width + x
			if idx >= len(cells) {
				return
			}
			g.Set(r.Y+y, r.X+x, cells[idx])
		}
	}
}

// ScrollUp shifts every row up by n (discarding the top n rows) and
// clears the newly exposed bottom rows. Used when a write advances
// past the last row of the viewport.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	if n >= g.height {
		g.Clear()
		return
	}
	copy(g.cells, g.cells[n*g.width:])
	for i := (g.height - n) * g.width; i < len(g.cells); i++ {
		g.cells[i] = EmptyCell()
	}
}

// Resize grows or shrinks the grid, preserving the top-left content
// that still fits.
func (g *Grid) Resize(width, height int) {
	ng := NewGrid(width, height)
	minW, minH := width, height
	if g.width < minW {
		minW = g.width
	}
	if g.height < minH {
		minH = g.height
	}
	for y := 0; y < minH; y++ {
		for x := 0; x < minW; x++ {
			ng.Set(y, x, g.Get(y, x))
		}
	}
	*g = *ng
}
