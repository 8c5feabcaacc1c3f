// Package rect provides the axis-aligned integer rectangle shared by the engine and the
// renderer. Every mutation recomputes the corners and the centre together, so a Rect is never
// partially stale.
package rect

import "math"

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// Rect is an integer rectangle. The zero value is an empty rectangle at the origin.
type Rect struct {
	x, y, w, h int
	x1, y1     int
	x2, y2     int
	cx, cy     int
}

// New returns a rectangle with the given top-left corner and size.
func New(x, y, w, h float64) Rect {
	var r Rect
	r.SetByCorner(x, y, w, h)
	return r
}

// FromAbsolute returns a rectangle spanning (x1, y1) to (x2, y2).
func FromAbsolute(x1, y1, x2, y2 float64) Rect {
	var r Rect
	r.SetByAbsolute(x1, y1, x2, y2)
	return r
}

// Round rounds half away from negative infinity, so 2.5 becomes 3 and -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Clone returns a copy of r.
func (r Rect) Clone() Rect {
	return r
}

// SetByCorner sets the rectangle from its top-left corner and size. Inputs are rounded.
func (r *Rect) SetByCorner(x, y, w, h float64) *Rect {
	r.x = Round(x)
	r.y = Round(y)
	r.w = Round(w)
	r.h = Round(h)
	r.x1 = r.x
	r.y1 = r.y
	r.x2 = r.x + r.w
	r.y2 = r.y + r.h
	r.cx = r.x + Round(float64(r.w)/2)
	r.cy = r.y + Round(float64(r.h)/2)
	return r
}

// SetByAbsolute sets the rectangle from its top-left and bottom-right corners.
func (r *Rect) SetByAbsolute(x1, y1, x2, y2 float64) *Rect {
	return r.SetByCorner(x1, y1, x2-x1, y2-y1)
}

// Offset moves the rectangle by (dx, dy).
func (r *Rect) Offset(dx, dy float64) *Rect {
	return r.SetByCorner(float64(r.x)+dx, float64(r.y)+dy, float64(r.w), float64(r.h))
}

// ContainsStrict reports whether (x, y) lies strictly inside the rectangle.
// Points on the boundary are outside.
func (r Rect) ContainsStrict(x, y float64) bool {
	return float64(r.x1) < x && x < float64(r.x2) && float64(r.y1) < y && y < float64(r.y2)
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() []Point {
	return []Point{
		{X: float64(r.x1), Y: float64(r.y1)},
		{X: float64(r.x2), Y: float64(r.y1)},
		{X: float64(r.x2), Y: float64(r.y2)},
		{X: float64(r.x1), Y: float64(r.y2)},
	}
}

func (r Rect) X() int  { return r.x }
func (r Rect) Y() int  { return r.y }
func (r Rect) W() int  { return r.w }
func (r Rect) H() int  { return r.h }
func (r Rect) X1() int { return r.x1 }
func (r Rect) Y1() int { return r.y1 }
func (r Rect) X2() int { return r.x2 }
func (r Rect) Y2() int { return r.y2 }
func (r Rect) CX() int { return r.cx }
func (r Rect) CY() int { return r.cy }
