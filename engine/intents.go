package engine

// Intents are the debounced player inputs for one processed batch. Each value is a held
// magnitude; anything above zero counts as active.
type Intents struct {
	MoveLeft  int
	MoveRight int
	SoftDrop  int
	Rotate    int
}

// Any reports whether at least one intent is active.
func (in Intents) Any() bool {
	return in.MoveLeft > 0 || in.MoveRight > 0 || in.SoftDrop > 0 || in.Rotate > 0
}

// ApplyIntents moves or rotates the active piece. A rotation takes the whole batch; otherwise
// a soft drop is tried first and then a horizontal shift. The candidate is applied only when
// it does not collide. It returns true when the piece moved or touched down.
func (e *Engine) ApplyIntents(in Intents) bool {
	if !in.Any() || e.paused || e.gameOver || len(e.clearing) > 0 {
		return false
	}

	piece := e.active.piece
	x, y := e.pos.X, e.pos.Y
	rotate := in.Rotate > 0
	modified := false

	if rotate {
		rotated := piece.Rotate(1)
		oldB, newB := piece.Bounds(), rotated.Bounds()
		x += oldB.CX() - newB.CX()
		y += oldB.CY() - newB.CY()
		x = max(x, -newB.X1())
		x = min(x, e.cfg.Width-1-newB.X2())
		y = min(y, e.board.height-1-newB.Y2())
		piece = rotated
		modified = true
	} else {
		bounds := piece.Bounds()
		bounds.Offset(float64(e.pos.X), float64(e.pos.Y))

		if in.SoftDrop > 0 {
			if e.collides(piece, x, y+1) {
				e.touchdown()
				return true
			}
			y++
			modified = true
		}
		if in.MoveLeft > 0 && in.MoveRight == 0 && bounds.X1() > 0 && !e.collides(piece, x-1, y) {
			x--
			modified = true
		}
		if in.MoveRight > 0 && in.MoveLeft == 0 && bounds.X2() < e.cfg.Width-1 && !e.collides(piece, x+1, y) {
			x++
			modified = true
		}
	}

	if !modified || e.collides(piece, x, y) {
		return false
	}

	e.active.piece = piece
	e.pos.X, e.pos.Y = x, y
	if rotate {
		e.cue(CueRotate)
	} else if in.SoftDrop > 0 {
		e.fastDrops++
		e.cue(CueSoftDrop)
	}
	return true
}
