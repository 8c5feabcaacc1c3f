package render

import (
	"image/color"
	"testing"

	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/palette"
	"github.com/plus3/cubetris/rect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type op struct {
	kind   string
	points []rect.Point
	fill   color.Color
	stroke color.Color
	line   [4]float64
	text   string
	x, y   float64
}

type recorder struct {
	ops []op
}

func (s *recorder) Clear(x, y, w, h float64) {
	s.ops = append(s.ops, op{kind: "clear", line: [4]float64{x, y, w, h}})
}

func (s *recorder) Polygon(points []rect.Point, fill, stroke color.Color) {
	s.ops = append(s.ops, op{kind: "polygon", points: points, fill: fill, stroke: stroke})
}

func (s *recorder) Line(x1, y1, x2, y2 float64, c color.Color) {
	s.ops = append(s.ops, op{kind: "line", line: [4]float64{x1, y1, x2, y2}, stroke: c})
}

func (s *recorder) Label(text string, x, y float64, style LabelStyle) {
	s.ops = append(s.ops, op{kind: "label", text: text, x: x, y: y})
}

func (s *recorder) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (s *recorder) polygons() []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == "polygon" {
			out = append(out, o)
		}
	}
	return out
}

func (s *recorder) reset() { s.ops = nil }

type fixedSource struct {
	snap engine.Snapshot
}

func (s *fixedSource) RenderData() engine.Snapshot { return s.snap }

func colors(t *testing.T) *palette.Table {
	t.Helper()
	table, err := palette.New(palette.DefaultConfig())
	require.NoError(t, err)
	return table
}

var dot = engine.PieceDef{Name: "dot", Columns: [][]uint8{
	{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 1, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0},
}}

// landedDot returns an engine whose first dot has landed at (5, 26) with the next dot
// spawned at (5, 4).
func landedDot(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(
		engine.Config{Width: 12, Height: 22, PieceSize: 5, Pieces: []engine.PieceDef{dot}},
		engine.FixedSettings{DifficultyPercent: 100, BrickSet: 7},
	)
	require.NoError(t, err)
	for e.Score() == 0 {
		e.Advance()
	}
	return e
}

func newBoard(t *testing.T, src Source, opts ...Option) (*Renderer, *recorder) {
	t.Helper()
	surface := &recorder{}
	r, err := New(src, surface, colors(t), BoardConfig(12, 22, 5, 60), opts...)
	require.NoError(t, err)
	r.Resize(600, 440)
	return r, surface
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	src := &fixedSource{}
	surface := &recorder{}

	_, err := New(src, surface, colors(t), BoardConfig(0, 22, 5, 60))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(src, surface, colors(t), BoardConfig(12, 22, 5, 0))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = New(nil, surface, colors(t), BoardConfig(12, 22, 5, 60))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRenderOrderDescendingDistance(t *testing.T) {
	order := RenderOrder(12, 22)
	require.Len(t, order, 12*22)

	seen := map[[2]int]bool{}
	for i, c := range order {
		seen[[2]int{c.X, c.Y}] = true
		if i > 0 {
			assert.GreaterOrEqual(t, order[i-1].Distance, c.Distance)
		}
	}
	assert.Len(t, seen, 12*22)
	assert.Equal(t, Cell{X: 6, Y: 11, Distance: 0}, order[len(order)-1])
	assert.Equal(t, [2]int{0, 0}, [2]int{order[0].X, order[0].Y})
	assert.Nil(t, RenderOrder(0, 5))
}

func TestResizeGeometry(t *testing.T) {
	r, _ := newBoard(t, &fixedSource{})

	bw, bh := r.BrickSize()
	assert.Equal(t, 50, bw)
	assert.Equal(t, 20, bh)

	front := r.Front()
	assert.Equal(t, [4]int{0, 0, 600, 440}, [4]int{front.X1(), front.Y1(), front.X2(), front.Y2()})

	back := r.Back()
	assert.Equal(t, [4]int{48, 9, 552, 425}, [4]int{back.X1(), back.Y1(), back.X2(), back.Y2()})

	// odd sizes floor to whole bricks
	r.Resize(611, 450)
	bw, bh = r.BrickSize()
	assert.Equal(t, 50, bw)
	assert.Equal(t, 20, bh)
	assert.Equal(t, 600, r.Front().W())
}

func TestResizeIgnoresBadInput(t *testing.T) {
	r, _ := newBoard(t, &fixedSource{})
	before := r.Back()

	r.Resize(0, 100)
	r.Resize(-5, -5)
	r.Resize(5, 440)

	bw, bh := r.BrickSize()
	assert.Equal(t, 50, bw)
	assert.Equal(t, 20, bh)
	assert.Equal(t, before, r.Back())
}

func TestUpdateSkipsWhenNothingChanged(t *testing.T) {
	r, surface := newBoard(t, &fixedSource{})

	assert.True(t, r.Update(false), "resize leaves a pending redraw")
	surface.reset()

	assert.False(t, r.Update(false))
	assert.Empty(t, surface.ops)

	assert.True(t, r.Update(true))
	assert.Equal(t, "clear", surface.ops[0].kind)
	assert.Equal(t, [4]float64{0, 0, 600, 440}, surface.ops[0].line)
}

func TestUpdateDrawsCubesAndGroupsFronts(t *testing.T) {
	e := landedDot(t)
	r, surface := newBoard(t, e)

	require.True(t, r.Update(true))

	table := colors(t)
	polys := surface.polygons()
	// four room planes, two visible sides per cube, two fronts
	require.Len(t, polys, 4+2+2+2)

	pileFront := polys[len(polys)-2]
	assert.Equal(t, []rect.Point{{X: 250, Y: 420}, {X: 300, Y: 420}, {X: 300, Y: 440}, {X: 250, Y: 440}}, pileFront.points)
	assert.Equal(t, table.Color(palette.Pile(), palette.ShadeFront, palette.PartFill), pileFront.fill)

	pieceFront := polys[len(polys)-1]
	assert.Equal(t, []rect.Point{{X: 250, Y: -20}, {X: 300, Y: -20}, {X: 300, Y: 0}, {X: 250, Y: 0}}, pieceFront.points)
	assert.Equal(t, table.Color(palette.Piece(0), palette.ShadeFront, palette.PartFill), pieceFront.fill)
	assert.Equal(t, table.Color(palette.Piece(0), palette.ShadeFront, palette.PartStroke), pieceFront.stroke)

	assert.Zero(t, surface.count("label"))
}

func TestSideFaceCulling(t *testing.T) {
	r, surface := newBoard(t, &fixedSource{})
	front := rect.New(100, 100, 50, 20)

	r.drawFace([]rect.Point{{X: 100, Y: 100}, {X: 110, Y: 110}, {X: 110, Y: 130}, {X: 100, Y: 120}}, palette.Pile(), palette.ShadeLeftRight, &front)
	assert.Empty(t, surface.ops, "a corner inside the front square hides the face")

	r.drawFace([]rect.Point{{X: 150, Y: 100}, {X: 158, Y: 90}, {X: 158, Y: 110}, {X: 150, Y: 120}}, palette.Pile(), palette.ShadeLeftRight, &front)
	require.Len(t, surface.ops, 1, "corners on the boundary or outside keep it")

	table := colors(t)
	assert.Equal(t, table.Color(palette.Pile(), palette.ShadeLeftRight, palette.PartFill), surface.ops[0].fill)
	assert.Equal(t, table.Color(palette.Pile(), palette.ShadeLeftRight, palette.PartStroke), surface.ops[0].stroke)

	r.drawFace(front.Corners(), palette.Piece(1), palette.ShadeFront, nil)
	assert.Len(t, surface.ops, 2, "front faces skip the test")
}

func TestPausedDrawsLabelOnly(t *testing.T) {
	e := landedDot(t)
	e.SetPaused(true)
	r, surface := newBoard(t, e)

	r.Update(true)

	assert.Equal(t, 4, surface.count("polygon"), "room only")
	last := surface.ops[len(surface.ops)-1]
	assert.Equal(t, op{kind: "label", text: "Paused", x: 300, y: 220}, last)
}

func TestGameOverLabelComesLast(t *testing.T) {
	e := landedDot(t)
	for e.State() != engine.StateGameOver {
		e.Advance()
	}
	r, surface := newBoard(t, e)

	r.Update(true)

	assert.Greater(t, surface.count("polygon"), 4)
	last := surface.ops[len(surface.ops)-1]
	assert.Equal(t, "Game Over", last.text)
}

func TestBackgroundGuides(t *testing.T) {
	e := landedDot(t)
	r, surface := newBoard(t, e)
	r.Update(true)

	theme := DefaultTheme()
	guides := 0
	rows := 0
	for _, o := range surface.ops {
		if o.kind != "line" {
			continue
		}
		switch o.stroke {
		case theme.ColumnFloorGuide, theme.ColumnBackGuide:
			guides++
		case theme.RowSide:
			rows++
		}
	}
	// the dot sits in column 5, so columns 4 and 5 carry the guide lines
	assert.Equal(t, 4, guides)
	assert.Equal(t, 2*27, rows)
}

func TestPreviewSkipsRoom(t *testing.T) {
	e := landedDot(t)
	surface := &recorder{}
	r, err := New(e, surface, colors(t), PreviewConfig(5, 60))
	require.NoError(t, err)
	r.Resize(100, 100)

	r.Update(true)
	assert.Zero(t, surface.count("line"))
	polys := surface.polygons()
	require.NotEmpty(t, polys)
	front := polys[len(polys)-1]
	assert.Equal(t, []rect.Point{{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60}}, front.points)

	for e.State() != engine.StateGameOver {
		e.Advance()
	}
	surface.reset()
	r.Update(true)
	assert.Equal(t, []string{"clear"}, kinds(surface.ops))
}

func kinds(ops []op) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = o.kind
	}
	return out
}

func TestPreviewOffsetCentresBounds(t *testing.T) {
	r, err := New(&fixedSource{}, &recorder{}, colors(t), PreviewConfig(5, 60))
	require.NoError(t, err)
	r.Resize(100, 100)

	assert.Equal(t, rect.Point{}, r.previewOffset(rect.FromAbsolute(2, 2, 2, 2)))
	assert.Equal(t, rect.Point{X: 0, Y: 10}, r.previewOffset(rect.FromAbsolute(2, 1, 2, 2)))
	assert.Equal(t, rect.Point{X: -10, Y: 0}, r.previewOffset(rect.FromAbsolute(1, 2, 4, 2)))
}

func TestClearAnimationCompletesOnce(t *testing.T) {
	src := &fixedSource{snap: engine.Snapshot{PieceSize: 5, ClearRows: []int{25, 26}}}
	done := 0
	r, _ := newBoard(t, src, OnClearDone(func() {
		done++
		src.snap.ClearRows = nil
	}))

	require.True(t, r.Update(false))
	assert.True(t, r.Animating(), "first frame arms the animation")
	assert.Nil(t, r.anim.offsets)

	for frame := 1; frame < 18; frame++ {
		require.True(t, r.Update(false))
		assert.Zero(t, done, "frame %d", frame)
	}
	assert.Equal(t, 1, r.anim.remaining)

	require.True(t, r.Update(false))
	assert.Equal(t, 1, done)
	assert.False(t, r.Animating())
	assert.Nil(t, r.anim.offsets)

	assert.False(t, r.Update(false))
	assert.Equal(t, 1, done)
}

func TestClearAnimationOffsets(t *testing.T) {
	snap := engine.Snapshot{PieceSize: 5, ClearRows: []int{20, 26}}
	r, _ := newBoard(t, &fixedSource{snap: snap})

	assert.Nil(t, r.animate(&snap))

	first := r.animate(&snap)
	require.Len(t, first, 27)
	step := first[25]
	assert.Zero(t, first[26])
	assert.InDelta(t, 1.181, step, 0.001, "20^(1/18)")
	assert.InDelta(t, step, first[20], 1e-9)
	assert.InDelta(t, 2*step, first[19], 1e-9)
	assert.InDelta(t, 2*step, first[0], 1e-9)

	var last []float64
	for r.Animating() {
		last = r.animate(&snap)
	}
	assert.InDelta(t, 20, last[25], 1e-9, "a full brick height on the final frame")
	assert.InDelta(t, 40, last[0], 1e-9)
}

func TestCancelAnimation(t *testing.T) {
	src := &fixedSource{snap: engine.Snapshot{PieceSize: 5, ClearRows: []int{26}}}
	done := 0
	r, surface := newBoard(t, src, OnClearDone(func() { done++ }))

	r.Update(false)
	r.Update(false)
	require.True(t, r.Animating())

	src.snap.ClearRows = nil
	r.CancelAnimation()
	assert.False(t, r.Animating())

	surface.reset()
	assert.True(t, r.Update(false), "cancel schedules a redraw")
	assert.Zero(t, done)
}

func TestStepFramesIsCached(t *testing.T) {
	r, _ := newBoard(t, &fixedSource{})
	r.SetStepFrames(40)
	assert.Equal(t, 40, r.StepFrames())
}

func TestLabelGradient(t *testing.T) {
	style := DefaultTheme().Label
	assert.Equal(t, palette.MustHex("#E0E0E0"), style.ColorAt(0))
	assert.Equal(t, palette.MustHex("#FFFFFF"), style.ColorAt(0.5))
	assert.Equal(t, palette.MustHex("#C0C0C0"), style.ColorAt(1))
	assert.Equal(t, color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, style.ColorAt(0.15))
}
