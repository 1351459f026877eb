// Package grid maps between 2D habitat coordinates and slot indices.
// It exists for one consumer: the tree crowding pass, which needs to know
// which slots sit within a square neighborhood of a cell.
package grid

// Grid is a square habitat of side×side cells. Cell (x, y) maps to slot
// index y*side + x.
type Grid struct {
	side int
}

// New creates a grid with the given side length, clamped to at least 1.
func New(side int) *Grid {
	if side < 1 {
		side = 1
	}
	return &Grid{side: side}
}

// Side returns the side length in cells.
func (g *Grid) Side() int { return g.side }

// Cells returns the total cell count (side squared).
func (g *Grid) Cells() int { return g.side * g.side }

// IndexOf returns the slot index for cell (x, y). Coordinates outside the
// grid are clamped to the nearest edge.
func (g *Grid) IndexOf(x, y int) int {
	x = clamp(x, 0, g.side-1)
	y = clamp(y, 0, g.side-1)
	return y*g.side + x
}

// CoordsOf returns the cell coordinates for a slot index.
func (g *Grid) CoordsOf(i int) (x, y int) {
	return i % g.side, i / g.side
}

// Neighborhood returns the slot indices within Chebyshev distance radius of
// the cell holding index i, clipped at the grid edges. The center cell is
// included.
func (g *Grid) Neighborhood(i, radius int) []int {
	cx, cy := g.CoordsOf(i)
	x0 := clamp(cx-radius, 0, g.side-1)
	x1 := clamp(cx+radius, 0, g.side-1)
	y0 := clamp(cy-radius, 0, g.side-1)
	y1 := clamp(cy+radius, 0, g.side-1)

	out := make([]int, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, y*g.side+x)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
