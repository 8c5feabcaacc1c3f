package render

import "github.com/plus3/cubetris/rect"

// backRect skews r towards the back plane. Each corner moves by the perspective coefficients
// interpolated across its normalised position within the board.
func (r *Renderer) backRect(front rect.Rect) rect.Rect {
	p := r.cfg.Perspective
	bx1, by1 := r.backPoint(float64(front.X1()), float64(front.Y1()), p)
	bx2, by2 := r.backPoint(float64(front.X2()), float64(front.Y2()), p)
	return rect.FromAbsolute(bx1, by1, bx2, by2)
}

func (r *Renderer) backPoint(x, y float64, p Perspective) (float64, float64) {
	w, h := float64(r.w), float64(r.h)
	var fx, fy float64
	if w > 0 {
		fx = x / w
	}
	if h > 0 {
		fy = y / h
	}
	return x + (p.Left+fx*(p.Right-p.Left))*w, y + (p.Top+fy*(p.Bottom-p.Top))*h
}

// cellRect is the front square of board cell (x, y), pushed down by yOffset pixels. Hidden
// board rows map to negative pixel rows.
func (r *Renderer) cellRect(x, y int, yOffset float64) rect.Rect {
	cy := y
	if r.cfg.Mode == ModeBoard {
		cy -= r.cfg.PieceSize
	}
	return rect.New(
		float64(x*r.brickW),
		yOffset+float64(cy*r.brickH),
		float64(r.brickW),
		float64(r.brickH),
	)
}

// previewOffset shifts the preview so the piece's bounding box sits in the middle of its
// matrix.
func (r *Renderer) previewOffset(b rect.Rect) rect.Point {
	size := float64(r.cfg.PieceSize)
	x1, y1 := float64(b.X1()), float64(b.Y1())
	x2, y2 := float64(b.X2()), float64(b.Y2())
	return rect.Point{
		X: ((x1+size-x2-1)/2 - x1) * float64(r.brickW),
		Y: ((y1+size-y2-1)/2 - y1) * float64(r.brickH),
	}
}
