package engine

// Board is the grid of landed cells, addressed (x, y) with y growing downwards.
type Board struct {
	width  int
	height int
	cells  []uint8
}

func newBoard(width, height int) Board {
	return Board{width: width, height: height, cells: make([]uint8, width*height)}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Occupied reports whether a landed cell fills (x, y). Out-of-range coordinates are empty.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	return b.cells[x*b.height+y] == 1
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	out := Board{width: b.width, height: b.height, cells: make([]uint8, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

func (b *Board) set(x, y int, filled bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	v := uint8(0)
	if filled {
		v = 1
	}
	b.cells[x*b.height+y] = v
}

func (b *Board) reset() {
	clear(b.cells)
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if !b.Occupied(x, y) {
			return false
		}
	}
	return true
}

func (b *Board) rowEmpty(y int) bool {
	for x := 0; x < b.width; x++ {
		if b.Occupied(x, y) {
			return false
		}
	}
	return true
}

// removeRows drops every row for which skip returns true and shifts the rows above down into
// the gap. Rows entering from above the top are empty.
func (b *Board) removeRows(skip func(y int) bool) {
	to := b.height - 1
	for from := b.height - 1; to >= 0; from-- {
		if from >= 0 && skip(from) {
			continue
		}
		for x := 0; x < b.width; x++ {
			b.set(x, to, from >= 0 && b.Occupied(x, from))
		}
		to--
	}
}
