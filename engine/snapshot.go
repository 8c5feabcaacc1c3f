package engine

import (
	"slices"

	"github.com/plus3/cubetris/rect"
)

// NeighborMode selects which piece Neighbors blends into the landed board.
type NeighborMode int

const (
	// NeighborBoard blends the active piece when the cell lies inside its matrix.
	NeighborBoard NeighborMode = iota
	// NeighborNext reads (x, y) as coordinates in the next piece's matrix.
	NeighborNext
)

// Neighbors flags the filled cells around a cell.
type Neighbors struct {
	Top, Left, Bottom, Right bool
}

// Snapshot is a copy of the engine state for one rendered frame. Pieces are immutable and the
// board and row list are copied, so a snapshot never changes after RenderData returns it.
type Snapshot struct {
	Board          Board
	PieceSize      int
	Active         Piece
	ActiveMaterial int
	Next           Piece
	NextMaterial   int
	Position       Position
	ActiveBounds   rect.Rect
	NextBounds     rect.Rect
	ClearRows      []int
	Paused         bool
	GameOver       bool
}

// Clearing reports whether row y is waiting for compaction.
func (s *Snapshot) Clearing(y int) bool {
	return slices.Contains(s.ClearRows, y)
}

// ActiveAt reports whether the active piece covers board cell (x, y).
func (s *Snapshot) ActiveAt(x, y int) bool {
	return s.Active.At(x-s.Position.X, y-s.Position.Y)
}

// Neighbors answers the same question as Engine.Neighbors against the copied state.
func (s *Snapshot) Neighbors(x, y int, mode NeighborMode) Neighbors {
	occupied := func(x, y int) bool {
		return !s.Clearing(y) && s.Board.Occupied(x, y)
	}
	return neighbors(occupied, s.Active, s.Next, s.Position, x, y, mode)
}

func neighbors(occupied func(x, y int) bool, active, next Piece, pos Position, x, y int, mode NeighborMode) Neighbors {
	n := Neighbors{
		Top:    occupied(x, y-1),
		Left:   occupied(x-1, y),
		Bottom: occupied(x, y+1),
		Right:  occupied(x+1, y),
	}

	piece := active
	bx, by := x-pos.X, y-pos.Y
	if mode == NeighborNext {
		piece = next
		bx, by = x, y
	} else if bx < 0 || by < 0 || bx >= active.Size() || by >= active.Size() {
		return n
	}

	n.Top = n.Top || piece.At(bx, by-1)
	n.Left = n.Left || piece.At(bx-1, by)
	n.Bottom = n.Bottom || piece.At(bx, by+1)
	n.Right = n.Right || piece.At(bx+1, by)
	return n
}
