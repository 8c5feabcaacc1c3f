package engine

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normal = FixedSettings{DifficultyPercent: 100, BrickSet: StandardSetSize}

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func column(cells ...uint8) []uint8 { return cells }

var empty5 = column(0, 0, 0, 0, 0)

// dot is a single cell at matrix (2, 2).
var dot = PieceDef{Name: "dot", Columns: [][]uint8{
	empty5, empty5, column(0, 0, 1, 0, 0), empty5, empty5,
}}

// domino fills matrix (2, 1) and (2, 2).
var domino = PieceDef{Name: "domino", Columns: [][]uint8{
	empty5, empty5, column(0, 1, 1, 0, 0), empty5, empty5,
}}

func boardConfig(pieces ...PieceDef) Config {
	return Config{Width: 12, Height: 22, PieceSize: 5, Pieces: pieces}
}

func newTestEngine(t *testing.T, cfg Config, settings Settings) *Engine {
	t.Helper()
	e, err := New(cfg, settings, seeded())
	require.NoError(t, err)
	e.Events()
	return e
}

// stage replaces the active piece with catalogue entry i, unrotated, at (x, y).
func stage(e *Engine, i, x, y int) {
	e.active = livePiece{piece: e.catalog[i].piece, material: e.catalog[i].material}
	e.pos = Position{X: x, Y: y, StartY: y}
}

func fillRow(e *Engine, y int, except ...int) {
	for x := 0; x < e.cfg.Width; x++ {
		if !slices.Contains(except, x) {
			e.board.set(x, y, true)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tooWide := PieceDef{Name: "wide", Columns: [][]uint8{
		column(0, 0, 1, 0, 0), column(0, 0, 1, 0, 0), column(0, 0, 1, 0, 0), empty5, empty5,
	}}

	tests := []struct {
		name     string
		cfg      Config
		settings Settings
	}{
		{"zero width", Config{Width: 0, Height: 22, PieceSize: 5, Pieces: []PieceDef{dot}}, normal},
		{"negative height", Config{Width: 12, Height: -1, PieceSize: 5, Pieces: []PieceDef{dot}}, normal},
		{"zero piece size", Config{Width: 12, Height: 22, PieceSize: 0, Pieces: []PieceDef{dot}}, normal},
		{"empty piece set", boardConfig(), normal},
		{"short column", boardConfig(PieceDef{Columns: [][]uint8{empty5, empty5, empty5, empty5, {1}}}), normal},
		{"no filled cells", boardConfig(PieceDef{Columns: [][]uint8{empty5, empty5, empty5, empty5, empty5}}), normal},
		{"cell out of range", boardConfig(PieceDef{Columns: [][]uint8{empty5, empty5, column(0, 0, 2, 0, 0), empty5, empty5}}), normal},
		{"wider than board", Config{Width: 2, Height: 22, PieceSize: 5, Pieces: []PieceDef{tooWide}}, normal},
		{"zero difficulty", boardConfig(dot), FixedSettings{DifficultyPercent: 0, BrickSet: 7}},
		{"zero brick set", boardConfig(dot), FixedSettings{DifficultyPercent: 100, BrickSet: 0}},
		{"nil settings", boardConfig(dot), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, tt.settings)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestResetSpawnsActiveAndNext(t *testing.T) {
	e := newTestEngine(t, boardConfig(DefaultPieces()...), normal)

	for range 50 {
		require.NoError(t, e.Reset())

		snap := e.RenderData()
		require.False(t, snap.Active.Empty())
		require.False(t, snap.Next.Empty())

		b := snap.ActiveBounds
		pos := e.Position()
		assert.GreaterOrEqual(t, pos.X, -b.X1())
		assert.LessOrEqual(t, pos.X, e.cfg.Width-1-b.X2())
		assert.Equal(t, e.cfg.PieceSize-b.Y2()-1, pos.Y)
		assert.Equal(t, pos.Y, pos.StartY)
		assert.Equal(t, StateFalling, e.State())
		assert.Zero(t, e.Score())
		assert.Equal(t, Streak{}, e.Streak())
		assert.Equal(t, SpeedCounts{}, e.SpeedCounts())
	}
}

func TestSpawnCentresPiece(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	// dot occupies matrix column 2, so the legal range is [-2, 9]
	assert.Equal(t, 3, e.Position().X)
	assert.Equal(t, 2, e.Position().Y)
}

func TestBrickSetLimitsSelection(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot, domino), FixedSettings{DifficultyPercent: 100, BrickSet: 1})
	for range 100 {
		assert.Equal(t, 1, e.roll().piece.Count())
	}
}

func TestWeightedSelection(t *testing.T) {
	heavy := domino
	heavy.Weight = 1000
	e := newTestEngine(t, boardConfig(dot, heavy), FixedSettings{DifficultyPercent: 100, BrickSet: 2})

	dominoes := 0
	for range 200 {
		if e.roll().piece.Count() == 2 {
			dominoes++
		}
	}
	assert.Greater(t, dominoes, 190)
}

func TestAdvanceFalls(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	stage(e, 0, 4, 10)

	e.Advance()
	assert.Equal(t, 11, e.Position().Y)
	assert.Empty(t, e.Events())
}

func TestCollision(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	p := e.catalog[0].piece
	e.board.set(5, 20, true)

	assert.True(t, e.collides(p, 3, 18), "overlaps a landed cell")
	assert.False(t, e.collides(p, 3, 17))
	assert.True(t, e.collides(p, 0, 25), "bottom edge reaches the floor")
	assert.False(t, e.collides(p, 0, 24))
	assert.False(t, e.collides(p, -2, 10), "walls are not collisions")
}

func TestTouchdownClearsSingleRow(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	bottom := e.BoardHeight() - 1
	fillRow(e, bottom, 11)
	stage(e, 0, 9, bottom-2)

	e.Advance()

	assert.Equal(t, StateClearing, e.State())
	assert.Equal(t, []int{bottom}, e.ClearRows())
	assert.Equal(t, 1+10, e.Score())
	assert.Equal(t, []Event{
		{Kind: EventCue, Cue: CueTouchdown},
		{Kind: EventAchievement, Points: 10, Label: "Single row"},
		{Kind: EventCue, Cue: CueClear},
		{Kind: EventTouchdown, Clearing: true},
	}, e.Events())

	// frozen until compaction
	pos := e.Position()
	e.Advance()
	assert.Equal(t, pos, e.Position())
	assert.False(t, e.ApplyIntents(Intents{MoveLeft: 1}))

	e.CompactClearedRows()
	assert.Equal(t, StateFalling, e.State())
	assert.Empty(t, e.ClearRows())
	assert.Equal(t, 11+5000, e.Score())
	assert.Equal(t, []Event{{Kind: EventAchievement, Points: 5000, Label: "Cleanup"}}, e.Events())
}

func TestCompactionShiftsRowsDown(t *testing.T) {
	e := newTestEngine(t, boardConfig(domino), normal)
	bottom := e.BoardHeight() - 1
	fillRow(e, bottom, 11)
	fillRow(e, bottom-1, 11)
	e.board.set(0, bottom-2, true)
	e.board.set(4, bottom-4, true)
	stage(e, 0, 9, bottom-2)

	e.Advance()
	require.Equal(t, []int{bottom - 1, bottom}, e.ClearRows())
	assert.Equal(t, 2+40, e.Score())

	e.CompactClearedRows()
	assert.True(t, e.board.Occupied(0, bottom))
	assert.True(t, e.board.Occupied(4, bottom-2))
	assert.Equal(t, 2, e.boardCount())
	assert.Equal(t, 42, e.Score(), "bottom row is not empty, so no cleanup")
}

func (e *Engine) boardCount() int {
	n := 0
	for _, c := range e.board.cells {
		n += int(c)
	}
	return n
}

func TestSpreeBonus(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	bottom := e.BoardHeight() - 1

	fillRow(e, bottom, 11)
	e.board.set(0, bottom-1, true)
	stage(e, 0, 9, bottom-2)
	e.Advance()
	e.CompactClearedRows()
	require.Equal(t, Streak{Count: 1, Sum: 10}, e.Streak())

	fillRow(e, bottom, 11)
	stage(e, 0, 9, bottom-2)
	e.Events()
	e.Advance()

	assert.Equal(t, Streak{Count: 2, Sum: 10 + 10 + 40}, e.Streak())
	assert.Contains(t, e.Events(), Event{Kind: EventAchievement, Points: 40, Label: "Spree x2"})

	e.CompactClearedRows()
	stage(e, 0, 0, 10)
	for e.State() == StateFalling && e.Position().Y >= 10 {
		e.Advance()
	}
	assert.Equal(t, Streak{}, e.Streak(), "a touchdown without rows resets the streak")
}

func TestSpeedBonusWithoutRowsEndsStreak(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	bottom := e.BoardHeight() - 1

	e.streak = Streak{Count: 1, Sum: 10}
	e.speed = SpeedCounts{10, 0, 0}
	stage(e, 0, 0, bottom-2)
	e.fastDrops = 100
	e.Advance()

	assert.Contains(t, e.Events(), Event{Kind: EventAchievement, Points: 50, Label: "Speedy"})
	assert.Equal(t, Streak{}, e.Streak())

	fillRow(e, bottom, 0, 11)
	stage(e, 0, 11, bottom-2)
	e.Advance()
	assert.Equal(t, Streak{Count: 1, Sum: 10}, e.Streak(), "the next clear starts a fresh streak")
	assert.NotContains(t, e.Events(), Event{Kind: EventAchievement, Points: 10, Label: "Spree x2"})
}

func TestDifficultyScalesAwards(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), FixedSettings{DifficultyPercent: 50, BrickSet: 1})
	bottom := e.BoardHeight() - 1
	fillRow(e, bottom, 11)
	stage(e, 0, 9, bottom-2)

	e.Advance()
	assert.Equal(t, 2+20, e.Score())

	easy := newTestEngine(t, boardConfig(dot), FixedSettings{DifficultyPercent: 150, BrickSet: 1})
	assert.Equal(t, 7, easy.scale(10))
	assert.Equal(t, 1, easy.scale(1))
}

func TestGameOverAboveSafetyRow(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	e.board.set(5, 6, true)
	stage(e, 0, 3, 3)

	e.Advance()

	assert.Equal(t, StateGameOver, e.State())
	assert.Equal(t, []Event{{Kind: EventCue, Cue: CueGameOver}}, e.Events())
	assert.True(t, e.RenderData().GameOver)

	pos := e.Position()
	e.Advance()
	assert.False(t, e.ApplyIntents(Intents{SoftDrop: 1}))
	assert.Equal(t, pos, e.Position())

	require.NoError(t, e.Reset())
	assert.Equal(t, StateFalling, e.State())
}

func TestLandingOnSafetyRowIsSafe(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	e.board.set(5, 7, true)
	stage(e, 0, 3, 4)

	e.Advance()
	assert.Equal(t, StateFalling, e.State())
}

func TestSoftDrop(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	stage(e, 0, 4, 10)

	assert.True(t, e.ApplyIntents(Intents{SoftDrop: 1}))
	assert.Equal(t, 11, e.Position().Y)
	assert.Equal(t, 1, e.fastDrops)
	assert.Equal(t, []Event{{Kind: EventCue, Cue: CueSoftDrop}}, e.Events())

	bottom := e.BoardHeight() - 1
	stage(e, 0, 4, bottom-2)
	assert.True(t, e.ApplyIntents(Intents{SoftDrop: 1}), "a blocked soft drop touches down")
	assert.True(t, e.board.Occupied(6, bottom))
}

func TestHorizontalMoves(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)

	stage(e, 0, 4, 10)
	assert.True(t, e.ApplyIntents(Intents{MoveLeft: 1}))
	assert.Equal(t, 3, e.Position().X)
	assert.True(t, e.ApplyIntents(Intents{MoveRight: 2}))
	assert.Equal(t, 4, e.Position().X)

	assert.False(t, e.ApplyIntents(Intents{MoveLeft: 1, MoveRight: 1}), "opposite directions cancel")
	assert.Equal(t, 4, e.Position().X)

	stage(e, 0, -2, 10)
	assert.False(t, e.ApplyIntents(Intents{MoveLeft: 1}), "left wall")
	stage(e, 0, 9, 10)
	assert.False(t, e.ApplyIntents(Intents{MoveRight: 1}), "right wall")

	stage(e, 0, 4, 10)
	e.board.set(5, 12, true)
	assert.False(t, e.ApplyIntents(Intents{MoveLeft: 1}), "blocked by a landed cell")

	assert.True(t, e.ApplyIntents(Intents{MoveRight: 1, SoftDrop: 1}), "drop and shift in one batch")
	assert.Equal(t, Position{X: 5, Y: 11, StartY: 10}, e.Position())
}

func TestRotationRecentresAndClamps(t *testing.T) {
	e := newTestEngine(t, boardConfig(DefaultPieces()[1]), normal)

	// the vertical bar sits in column 0; its horizontal form must be pushed off the wall
	stage(e, 0, -2, 10)
	require.True(t, e.ApplyIntents(Intents{Rotate: 1}))
	assert.Equal(t, -1, e.Position().X)
	assert.Equal(t, 11, e.Position().Y)
	snap := e.RenderData()
	for x := 0; x < 4; x++ {
		assert.True(t, snap.ActiveAt(x, 13))
	}
	assert.Equal(t, []Event{{Kind: EventCue, Cue: CueRotate}}, e.Events())

	stage(e, 0, 9, 10)
	require.True(t, e.ApplyIntents(Intents{Rotate: 1}))
	assert.Equal(t, 7, e.Position().X)

	stage(e, 0, 3, 10)
	e.board.set(4, 13, true)
	assert.False(t, e.ApplyIntents(Intents{Rotate: 1}), "rotation into a landed cell is refused")
	assert.True(t, e.RenderData().Active.Equal(e.catalog[0].piece))
}

func TestRotateTakesWholeBatch(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	stage(e, 0, 4, 10)

	assert.True(t, e.ApplyIntents(Intents{Rotate: 1, MoveLeft: 1, SoftDrop: 1}))
	assert.Equal(t, Position{X: 4, Y: 10, StartY: 10}, e.Position())
	assert.Zero(t, e.fastDrops)
}

func TestIntentsIgnoredWhilePaused(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	stage(e, 0, 4, 10)
	e.SetPaused(true)

	assert.False(t, e.ApplyIntents(Intents{MoveLeft: 1}))
	assert.False(t, e.ApplyIntents(Intents{}))
	assert.True(t, e.RenderData().Paused)

	e.SetPaused(false)
	assert.False(t, e.ApplyIntents(Intents{}))
	assert.True(t, e.ApplyIntents(Intents{MoveLeft: 1}))
}

func TestNeighbors(t *testing.T) {
	e := newTestEngine(t, boardConfig(domino), normal)
	stage(e, 0, 0, 10)
	e.board.set(5, 20, true)
	e.board.set(5, 21, true)
	e.board.set(6, 20, true)

	assert.Equal(t, Neighbors{Bottom: true, Right: true}, e.Neighbors(5, 20, NeighborBoard))
	assert.Equal(t, Neighbors{Top: true}, e.Neighbors(5, 21, NeighborBoard))
	assert.Equal(t, Neighbors{}, e.Neighbors(-5, 100, NeighborBoard), "out of range reads as empty")

	// the active domino covers (2, 11) and (2, 12)
	assert.Equal(t, Neighbors{Bottom: true}, e.Neighbors(2, 11, NeighborBoard))
	assert.Equal(t, Neighbors{Top: true}, e.Neighbors(2, 12, NeighborBoard))

	e.cleared.Put(21, 0)
	e.clearing = append(e.clearing, 21)
	assert.Equal(t, Neighbors{Right: true}, e.Neighbors(5, 20, NeighborBoard), "clearing rows read as empty")
}

func TestNeighborsNextMode(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	e.next = livePiece{piece: NewPiece(domino.Columns)}

	assert.Equal(t, Neighbors{Bottom: true}, e.Neighbors(2, 1, NeighborNext))
	assert.Equal(t, Neighbors{Top: true}, e.Neighbors(2, 2, NeighborNext))
	assert.Equal(t, Neighbors{Left: true}, e.Neighbors(3, 1, NeighborNext))
}

func TestSnapshotIsIsolated(t *testing.T) {
	e := newTestEngine(t, boardConfig(DefaultPieces()...), normal)
	e.board.set(3, 20, true)
	e.board.set(4, 20, true)
	e.cleared.Put(26, 0)
	e.clearing = append(e.clearing, 26)

	snap := e.RenderData()
	for x := 0; x < e.cfg.Width; x++ {
		for y := 0; y < e.BoardHeight(); y++ {
			assert.Equal(t, e.Neighbors(x, y, NeighborBoard), snap.Neighbors(x, y, NeighborBoard))
			assert.Equal(t, e.Neighbors(x, y, NeighborNext), snap.Neighbors(x, y, NeighborNext))
		}
	}

	e.board.set(3, 20, false)
	e.clearRows()
	assert.True(t, snap.Board.Occupied(3, 20))
	assert.Equal(t, []int{26}, snap.ClearRows)
	assert.True(t, snap.Clearing(26))
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	e := newTestEngine(t, boardConfig(DefaultPieces()...), FixedSettings{DifficultyPercent: 100, BrickSet: 99})
	rng := rand.New(rand.NewPCG(7, 7))

	last := 0
	for tick := range 20000 {
		switch e.State() {
		case StateGameOver:
			require.NoError(t, e.Reset())
			last = 0
			continue
		case StateClearing:
			e.CompactClearedRows()
		}

		e.ApplyIntents(Intents{
			MoveLeft:  rng.IntN(2),
			MoveRight: rng.IntN(2),
			SoftDrop:  rng.IntN(3) / 2,
			Rotate:    rng.IntN(4) / 3,
		})
		if tick%3 == 0 {
			e.Advance()
		}

		require.GreaterOrEqual(t, e.Score(), last)
		last = e.Score()

		if e.State() != StateFalling {
			continue
		}
		snap := e.RenderData()
		b := snap.ActiveBounds
		require.GreaterOrEqual(t, snap.Position.X+b.X1(), 0)
		require.Less(t, snap.Position.X+b.X2(), e.cfg.Width)
		require.Less(t, snap.Position.Y+b.Y2(), e.BoardHeight())
		snap.Active.Each(func(x, y int) {
			require.False(t, snap.Board.Occupied(snap.Position.X+x, snap.Position.Y+y), "piece overlaps the pile")
		})
	}
}

func TestEndStopsWithoutCue(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	e.Events()
	e.SetPaused(true)

	e.End()

	assert.Equal(t, StateGameOver, e.State())
	assert.False(t, e.Paused())
	assert.Empty(t, e.Events())

	pos := e.Position()
	e.Advance()
	assert.Equal(t, pos, e.Position())
}

func TestEndDropsPendingRows(t *testing.T) {
	e := newTestEngine(t, boardConfig(dot), normal)
	bottom := e.BoardHeight() - 1
	fillRow(e, bottom, 11)
	e.board.set(0, bottom-1, true)
	stage(e, 0, 9, bottom-2)
	e.Advance()
	require.Equal(t, StateClearing, e.State())
	e.Events()
	score := e.Score()

	e.End()

	assert.Equal(t, StateGameOver, e.State())
	assert.Empty(t, e.ClearRows())
	assert.Equal(t, score, e.Score())
	assert.Empty(t, e.Events())
	assert.True(t, e.board.Occupied(0, bottom), "rows above fall into place")
}
