// Package engine simulates the falling-block board: collision, rotation, row clearing,
// scoring and the bonuses layered on top of it.
//
// The engine is single threaded. A caller drives it once per tick with ApplyIntents and
// Advance, drains the side effects with Events, and reads frames through RenderData. Rows
// that fill up stay on the board in a clearing sub-state until CompactClearedRows is called,
// which is normally done by the renderer when its clear animation finishes.
package engine

import (
	"math/rand/v2"
	"strconv"

	"github.com/kamstrup/intmap"
)

// State is the simulation state.
type State int

const (
	// StateFalling covers a freshly spawned piece and a piece in flight.
	StateFalling State = iota
	// StateClearing holds while full rows wait for compaction.
	StateClearing
	// StateGameOver is terminal until Reset.
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateClearing:
		return "clearing"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// Position is the board coordinate of the active piece's matrix origin. StartY is the row it
// spawned on.
type Position struct {
	X, Y   int
	StartY int
}

type catalogEntry struct {
	piece    Piece
	weight   int
	material int
}

type livePiece struct {
	piece    Piece
	material int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for piece selection.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// Engine owns the board and every piece of game state.
type Engine struct {
	cfg      Config
	settings Settings
	rng      *rand.Rand
	catalog  []catalogEntry

	board    Board
	active   livePiece
	next     livePiece
	pos      Position
	clearing []int
	cleared  *intmap.Map[int, int]

	score     int
	streak    Streak
	fastDrops int
	speed     SpeedCounts

	gameOver bool
	paused   bool
	events   []Event
}

// New validates cfg and settings and returns an engine that has already been Reset.
func New(cfg Config, settings Settings, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		settings: settings,
		board:    newBoard(cfg.Width, cfg.Height+cfg.PieceSize),
		cleared:  intmap.New[int, int](cfg.Height),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for _, def := range cfg.Pieces {
		e.catalog = append(e.catalog, catalogEntry{
			piece:    NewPiece(def.Columns),
			weight:   def.weight(),
			material: def.Material,
		})
	}

	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset empties the board, zeroes the score and every bonus counter, and spawns a fresh
// active and next piece.
func (e *Engine) Reset() error {
	if err := validateSettings(e.settings); err != nil {
		return err
	}

	e.board.reset()
	e.clearRows()
	e.score = 0
	e.streak = Streak{}
	e.fastDrops = 0
	e.speed = SpeedCounts{}
	e.gameOver = false
	e.paused = false
	e.events = nil
	e.active = livePiece{}
	e.next = livePiece{}

	e.spawn()
	e.spawn()
	return nil
}

// Config returns the static configuration.
func (e *Engine) Config() Config { return e.cfg }

// BoardHeight is the number of board rows including the hidden spawn rows.
func (e *Engine) BoardHeight() int { return e.board.height }

func (e *Engine) Score() int               { return e.score }
func (e *Engine) Streak() Streak           { return e.streak }
func (e *Engine) SpeedCounts() SpeedCounts { return e.speed }
func (e *Engine) Position() Position       { return e.pos }
func (e *Engine) Paused() bool             { return e.paused }

// SetPaused freezes or resumes input handling and stepping.
func (e *Engine) SetPaused(paused bool) {
	e.paused = paused
}

// End finishes the game without a game-over cue, as when the player quits. Rows still
// waiting for compaction are removed without any bonus.
func (e *Engine) End() {
	if len(e.clearing) > 0 {
		e.board.removeRows(e.isClearing)
		e.clearRows()
	}
	e.gameOver = true
	e.paused = false
}

// State reports the simulation state.
func (e *Engine) State() State {
	switch {
	case e.gameOver:
		return StateGameOver
	case len(e.clearing) > 0:
		return StateClearing
	}
	return StateFalling
}

// ClearRows returns a copy of the rows pending compaction in ascending order.
func (e *Engine) ClearRows() []int {
	return append([]int(nil), e.clearing...)
}

// Advance runs one simulation step: the active piece falls one row or touches down. It does
// nothing while rows are clearing or after game over.
func (e *Engine) Advance() {
	if e.gameOver || len(e.clearing) > 0 {
		return
	}
	if e.collides(e.active.piece, e.pos.X, e.pos.Y+1) {
		e.touchdown()
		return
	}
	e.pos.Y++
}

// CompactClearedRows removes the pending rows and lets the rows above fall into place. A
// board whose bottom row ends up empty earns the cleanup bonus.
func (e *Engine) CompactClearedRows() {
	if len(e.clearing) == 0 {
		return
	}
	e.board.removeRows(e.isClearing)
	e.clearRows()
	if e.board.rowEmpty(e.board.height - 1) {
		e.achievement(5000, "Cleanup")
	}
}

func (e *Engine) isClearing(y int) bool {
	_, ok := e.cleared.Get(y)
	return ok
}

func (e *Engine) clearRows() {
	e.clearing = e.clearing[:0]
	e.cleared.Clear()
}

// occupied reads the landed board with clearing rows treated as empty.
func (e *Engine) occupied(x, y int) bool {
	if e.isClearing(y) {
		return false
	}
	return e.board.Occupied(x, y)
}

// collides reports whether p at (px, py) reaches the floor or overlaps a landed cell.
func (e *Engine) collides(p Piece, px, py int) bool {
	if py+p.Bounds().Y2() >= e.board.height {
		return true
	}
	hit := false
	p.Each(func(x, y int) {
		if !hit && e.occupied(px+x, py+y) {
			hit = true
		}
	})
	return hit
}

func (e *Engine) touchdown() {
	count := 0
	minY := e.board.height
	e.active.piece.Each(func(x, y int) {
		e.board.set(e.pos.X+x, e.pos.Y+y, true)
		minY = min(minY, e.pos.Y+y)
		count++
	})

	// landing inside the spawn rows or the first visible row ends the game
	if minY < e.cfg.PieceSize+1 {
		e.gameOver = true
		e.cue(CueGameOver)
		return
	}

	e.score += e.scale(count)
	e.cue(CueTouchdown)
	e.scanFullRows()
	e.events = append(e.events, Event{Kind: EventTouchdown, Clearing: len(e.clearing) > 0})
	e.spawn()

	// the speed bonus paid by spawn must not seed the next streak
	if len(e.clearing) == 0 {
		e.streak = Streak{}
	}
}

func (e *Engine) scanFullRows() {
	for y := 0; y < e.board.height; y++ {
		if e.board.rowFull(y) {
			e.cleared.Put(y, len(e.clearing))
			e.clearing = append(e.clearing, y)
		}
	}

	rows := len(e.clearing)
	if rows == 0 {
		return
	}

	e.achievement(rows*rows*10, rowLabel(rows))
	e.streak.Count++
	if e.streak.Count > 1 {
		e.achievement(e.streak.Count*e.streak.Sum, "Spree x"+strconv.Itoa(e.streak.Count))
	}
	e.cue(CueClear)
}

// spawn settles the speed bonus of the piece that just landed, promotes the next piece and
// rolls a new one.
func (e *Engine) spawn() {
	if !e.active.piece.Empty() {
		e.accountSpeed()
	}
	e.fastDrops = 0

	e.active = e.next
	e.next = e.roll()
	if e.active.piece.Empty() {
		return
	}

	b := e.active.piece.Bounds()
	lo, hi := -b.X1(), e.cfg.Width-1-b.X2()
	e.pos.X = lo + (hi-lo)/2
	e.pos.Y = e.cfg.PieceSize - b.Y2() - 1
	e.pos.StartY = e.pos.Y
}

func (e *Engine) roll() livePiece {
	limit := min(len(e.catalog), max(1, e.settings.BrickSetSize()))
	total := 0
	for _, c := range e.catalog[:limit] {
		total += c.weight
	}

	pick := e.rng.IntN(total)
	entry := e.catalog[limit-1]
	for _, c := range e.catalog[:limit] {
		if pick < c.weight {
			entry = c
			break
		}
		pick -= c.weight
	}

	return livePiece{piece: entry.piece.Rotate(e.rng.IntN(4)), material: entry.material}
}

// Neighbors reports which of the four cells around (x, y) are filled. In NeighborBoard mode
// the landed board and, inside its matrix, the active piece count. In NeighborNext mode the
// next piece's matrix is always consulted.
func (e *Engine) Neighbors(x, y int, mode NeighborMode) Neighbors {
	return neighbors(e.occupied, e.active.piece, e.next.piece, e.pos, x, y, mode)
}

// RenderData returns a deep copy of everything a renderer needs for one frame.
func (e *Engine) RenderData() Snapshot {
	return Snapshot{
		Board:          e.board.Clone(),
		PieceSize:      e.cfg.PieceSize,
		Active:         e.active.piece,
		ActiveMaterial: e.active.material,
		Next:           e.next.piece,
		NextMaterial:   e.next.material,
		Position:       e.pos,
		ActiveBounds:   e.active.piece.Bounds(),
		NextBounds:     e.next.piece.Bounds(),
		ClearRows:      e.ClearRows(),
		Paused:         e.paused,
		GameOver:       e.gameOver,
	}
}
