package render

import (
	"cmp"
	"math"
	"slices"
)

// Cell is a board coordinate in render order.
type Cell struct {
	X, Y     int
	Distance float64
}

// RenderOrder lists every cell of a cols x rows board farthest from the centre
// (floor(cols/2), floor(rows/2)) first. Cells at equal distance keep row-major order.
func RenderOrder(cols, rows int) []Cell {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cx, cy := cols/2, rows/2
	order := make([]Cell, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			order = append(order, Cell{
				X:        x,
				Y:        y,
				Distance: math.Hypot(float64(cx-x), float64(cy-y)),
			})
		}
	}
	slices.SortStableFunc(order, func(a, b Cell) int {
		return cmp.Compare(b.Distance, a.Distance)
	})
	return order
}
