package kernel

import (
	"fmt"
	"math"
)

// Point is a position in continuous world space. World coordinates relate to
// grid cells through the tile size: the cell at (cx, cy) covers the world
// rectangle [cx*tile, (cx+1)*tile) × [cy*tile, (cy+1)*tile).
type Point struct {
	X float64
	Y float64
}

// NewPoint creates a world-space point.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// CellAt converts the point to the grid cell containing it, by floor
// division with the tile size. Tile sizes below 1 are treated as 1 so a
// misconfigured caller can never divide by zero.
func (p Point) CellAt(tileSize float64) Cell {
	if tileSize < 1 {
		tileSize = 1
	}
	return Cell{
		X: int(math.Floor(p.X / tileSize)),
		Y: int(math.Floor(p.Y / tileSize)),
	}
}

// ManhattanDistance returns |x1-x2| + |y1-y2| in world units. It is the
// continuous counterpart of Cell.Distance and keeps cost estimates monotonic
// with distance whether or not a road path exists.
func (p Point) ManhattanDistance(other Point) float64 {
	return math.Abs(p.X-other.X) + math.Abs(p.Y-other.Y)
}

// String implements fmt.Stringer as "Point(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("Point(%g,%g)", p.X, p.Y)
}

// CellCenter returns the world-space center of a grid cell for the given
// tile size. Paths computed on the grid are reported as sequences of cell
// centers.
func CellCenter(c Cell, tileSize float64) Point {
	if tileSize < 1 {
		tileSize = 1
	}
	return Point{
		X: (float64(c.X) + 0.5) * tileSize,
		Y: (float64(c.Y) + 0.5) * tileSize,
	}
}
