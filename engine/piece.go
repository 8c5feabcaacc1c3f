package engine

import "github.com/plus3/cubetris/rect"

// Piece is an immutable square occupancy matrix. Cells are stored column-major, matching the
// board's (x, y) addressing. The zero value is an empty piece of size zero.
type Piece struct {
	size  int
	cells []uint8
}

// NewPiece builds a piece from columns, each listed top to bottom.
func NewPiece(columns [][]uint8) Piece {
	size := len(columns)
	p := Piece{size: size, cells: make([]uint8, size*size)}
	for x, col := range columns {
		for y := 0; y < size && y < len(col); y++ {
			if col[y] != 0 {
				p.cells[x*size+y] = 1
			}
		}
	}
	return p
}

// Size returns the edge length of the matrix.
func (p Piece) Size() int {
	return p.size
}

// At reports whether the cell is filled. Out-of-range coordinates are empty.
func (p Piece) At(x, y int) bool {
	if x < 0 || y < 0 || x >= p.size || y >= p.size {
		return false
	}
	return p.cells[x*p.size+y] == 1
}

// Count returns the number of filled cells.
func (p Piece) Count() int {
	n := 0
	for _, c := range p.cells {
		n += int(c)
	}
	return n
}

// Empty reports whether no cell is filled.
func (p Piece) Empty() bool {
	return p.Count() == 0
}

// Rotate returns the piece turned by the given number of quarter turns. Negative values turn
// the other way.
func (p Piece) Rotate(times int) Piece {
	times = ((times % 4) + 4) % 4
	out := p
	for range times {
		out = out.quarterTurn()
	}
	return out
}

func (p Piece) quarterTurn() Piece {
	last := p.size - 1
	rot := Piece{size: p.size, cells: make([]uint8, len(p.cells))}
	for x := 0; x < p.size; x++ {
		for y := 0; y < p.size; y++ {
			rot.cells[x*p.size+y] = p.cells[(last-y)*p.size+x]
		}
	}
	return rot
}

// Bounds returns the tight bounding box of the filled cells in matrix coordinates. X2 and Y2
// are the inclusive maximum indices.
func (p Piece) Bounds() rect.Rect {
	x1, y1 := p.size, p.size
	x2, y2 := 0, 0
	for x := 0; x < p.size; x++ {
		for y := 0; y < p.size; y++ {
			if p.cells[x*p.size+y] == 1 {
				x1 = min(x1, x)
				y1 = min(y1, y)
				x2 = max(x2, x)
				y2 = max(y2, y)
			}
		}
	}
	return rect.FromAbsolute(float64(x1), float64(y1), float64(x2), float64(y2))
}

// Equal reports whether both pieces have the same size and cells.
func (p Piece) Equal(o Piece) bool {
	if p.size != o.size {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Each calls fn for every filled cell.
func (p Piece) Each(fn func(x, y int)) {
	for x := 0; x < p.size; x++ {
		for y := 0; y < p.size; y++ {
			if p.cells[x*p.size+y] == 1 {
				fn(x, y)
			}
		}
	}
}
