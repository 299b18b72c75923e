package maze

import "github.com/pkg/errors"

// Coord addresses a wall by (x, y, isTop): x, y index the cell in
// [0, width), and isTop selects the cell's top edge versus its right edge.
// Coordinates outside the grid never exist — NewCoord rejects out-of-range
// values.
type Coord struct {
	X, Y  int
	IsTop bool
}

// NewCoord validates (x, y) against width and returns the coordinate, or an
// error if either index falls outside [0, width).
func NewCoord(width, x, y int, isTop bool) (Coord, error) {
	if x < 0 || x >= width || y < 0 || y >= width {
		return Coord{}, errors.Errorf("coordinate (%d, %d) out of range for width %d", x, y, width)
	}
	return Coord{X: x, Y: y, IsTop: isTop}, nil
}

// index returns the dense array index of the coordinate within a width x
// width grid. There are 2*width*width addressable walls (top and right
// edges of every cell); index ranges densely over [0, 2*width*width).
func (c Coord) index(width int) int {
	bit := 0
	if c.IsTop {
		bit = 1
	}
	return c.Y*2*width + c.X*2 + bit
}

// Right returns the coordinate with IsTop cleared (the cell's right edge).
func (c Coord) Right() Coord { c.IsTop = false; return c }

// Top returns the coordinate with IsTop set (the cell's top edge).
func (c Coord) Top() Coord { c.IsTop = true; return c }
