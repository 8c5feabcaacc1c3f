package render

import (
	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/rect"
)

// drawBackground paints the room: back plane, floor and side walls, the frame edges, then
// the grid lines running into depth. The two column lines hugging the active piece are drawn
// in the guide colours.
func (r *Renderer) drawBackground(snap *engine.Snapshot) {
	t := r.cfg.Theme
	f, b := r.front, r.back
	fx1, fy1, fx2, fy2 := float64(f.X1()), float64(f.Y1()), float64(f.X2()), float64(f.Y2())
	bx1, by1, bx2, by2 := float64(b.X1()), float64(b.Y1()), float64(b.X2()), float64(b.Y2())

	r.surface.Polygon([]rect.Point{{X: bx1, Y: 0}, {X: bx2, Y: 0}, {X: bx2, Y: by2}, {X: bx1, Y: by2}}, t.BackPlane, nil)
	r.surface.Polygon([]rect.Point{{X: fx1, Y: fy2}, {X: bx1, Y: by2}, {X: bx2, Y: by2}, {X: fx2, Y: fy2}}, t.Floor, nil)
	r.surface.Polygon([]rect.Point{{X: fx1, Y: 0}, {X: bx1, Y: 0}, {X: bx1, Y: by2}, {X: fx1, Y: fy2}}, t.Walls, nil)
	r.surface.Polygon([]rect.Point{{X: fx2, Y: 0}, {X: bx2, Y: 0}, {X: bx2, Y: by2}, {X: fx2, Y: fy2}}, t.Walls, nil)

	r.surface.Line(fx1, fy2, fx2, fy2, t.FrontFrame)
	r.surface.Line(fx1, fy2, fx1, fy1, t.FrontFrame)
	r.surface.Line(fx2, fy2, fx2, fy1, t.FrontFrame)
	r.surface.Line(bx1, by2, bx2, by2, t.BackFrame)
	r.surface.Line(bx1, by2, bx1, by1, t.BackFrame)
	r.surface.Line(bx2, by2, bx2, by1, t.BackFrame)

	for y := 0; y < r.totalRows; y++ {
		cell := r.cellRect(0, y, 0)
		row := rect.New(float64(cell.X1()), float64(cell.Y1()), float64(r.cfg.Columns*r.brickW), float64(r.brickH))
		back := r.backRect(row)
		r.surface.Line(float64(row.X2()), float64(row.Y1()), float64(back.X2()), float64(back.Y1()), t.RowSide)
		r.surface.Line(float64(row.X1()), float64(row.Y1()), float64(back.X1()), float64(back.Y1()), t.RowSide)
		r.surface.Line(float64(back.X1()), float64(back.Y1()), float64(back.X2()), float64(back.Y1()), t.RowBack)
	}

	guide1 := snap.Position.X + snap.ActiveBounds.X() - 1
	guide2 := snap.Position.X + snap.ActiveBounds.X() + snap.ActiveBounds.W()
	for x := 0; x < r.cfg.Columns-1; x++ {
		cell := r.cellRect(x, 0, 0)
		col := rect.New(float64(cell.X1()), float64(cell.Y1()), float64(r.brickW), float64(r.totalRows*r.brickH))
		back := r.backRect(col)

		floor, wall := t.ColumnFloor, t.ColumnBack
		if x == guide1 || x == guide2 {
			floor, wall = t.ColumnFloorGuide, t.ColumnBackGuide
		}
		r.surface.Line(float64(col.X2()), float64(col.Y2()), float64(back.X2()), float64(back.Y2()+1), floor)
		r.surface.Line(float64(back.X2()), float64(back.Y1()), float64(back.X2()), float64(back.Y2()), wall)
	}
}
