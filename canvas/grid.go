package canvas

// Grid is a fixed-size row-major array of cells
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// newGrid returns a grid with every cell a copy of template
func newGrid(width, height int, template Cell) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = template
		}
		cells[y] = row
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the column count
func (g *Grid) Width() int { return g.width }

// Height returns the row count
func (g *Grid) Height() int { return g.height }

// InBounds reports whether the 0-indexed position is inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at a 0-indexed position
func (g *Grid) At(x, y int) Cell {
	return g.cells[y][x]
}

// Set stores c at a 0-indexed position
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y][x] = c
}

// row exposes a row for the render loop
func (g *Grid) row(y int) []Cell {
	return g.cells[y]
}
