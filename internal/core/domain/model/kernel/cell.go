package kernel

import "fmt"

// Cell is a coordinate on the road grid. Unlike world-space points, cells are
// discrete: one cell covers one tile. Cells themselves carry no bounds; the
// road network decides which cells lie inside its grid.
//
// The zero value Cell{0, 0} is a valid coordinate (the grid origin).
type Cell struct {
	X int
	Y int
}

// NewCell creates a cell at the given grid coordinates.
func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Distance returns the Manhattan distance to other: |x1-x2| + |y1-y2|.
// This is the natural metric for 4-directional movement on the grid.
func (c Cell) Distance(other Cell) int {
	return absInt(c.X-other.X) + absInt(c.Y-other.Y)
}

// Neighbors returns the four edge-adjacent cells in a fixed order
// (left, right, up, down). Bounds filtering is the caller's job.
func (c Cell) Neighbors() [4]Cell {
	return [4]Cell{
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
	}
}

// String implements fmt.Stringer as "Cell(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("Cell(%d,%d)", c.X, c.Y)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
