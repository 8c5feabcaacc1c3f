// Package render draws engine snapshots as extruded cubes on a flat Surface.
//
// Every cell is a front square plus a back square pushed through a fixed per-axis perspective
// distortion; the four quads between them are the cube's sides. Cells are visited farthest
// from the board centre first so nearer sides overwrite farther ones, and all front faces are
// drawn last, landed cells before the falling piece.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/palette"
	"github.com/plus3/cubetris/rect"
)

// ErrInvalidConfig is returned by New for unusable geometry.
var ErrInvalidConfig = errors.New("render: invalid configuration")

// Mode selects what a renderer draws.
type Mode int

const (
	// ModeBoard draws the room, the pile and the active piece.
	ModeBoard Mode = iota
	// ModePreview draws only the next piece, centred in its matrix.
	ModePreview
)

// Perspective holds the back-plane distortion coefficients, as fractions of the front size.
type Perspective struct {
	Top, Bottom, Left, Right float64
}

var (
	BoardPerspective   = Perspective{Top: 0.02, Bottom: -0.035, Left: 0.08, Right: -0.08}
	PreviewPerspective = Perspective{Top: 0.03, Bottom: 0.05, Left: -0.06, Right: -0.18}
)

// Config describes one renderer.
type Config struct {
	Mode Mode
	// Columns and Rows are the visible cell counts. In board mode PieceSize more rows sit
	// hidden above the visible area.
	Columns     int
	Rows        int
	PieceSize   int
	Perspective Perspective
	// FramesPerSecond and ClearSeconds set the clear animation length in frames.
	FramesPerSecond int
	ClearSeconds    float64
	Theme           Theme
}

// BoardConfig returns the configuration of the main board view.
func BoardConfig(width, height, pieceSize, fps int) Config {
	return Config{
		Mode:            ModeBoard,
		Columns:         width,
		Rows:            height,
		PieceSize:       pieceSize,
		Perspective:     BoardPerspective,
		FramesPerSecond: fps,
		ClearSeconds:    0.3,
		Theme:           DefaultTheme(),
	}
}

// PreviewConfig returns the configuration of the next-piece view.
func PreviewConfig(pieceSize, fps int) Config {
	return Config{
		Mode:            ModePreview,
		Columns:         pieceSize,
		Rows:            pieceSize,
		PieceSize:       pieceSize,
		Perspective:     PreviewPerspective,
		FramesPerSecond: fps,
		ClearSeconds:    0.3,
		Theme:           DefaultTheme(),
	}
}

func (c Config) validate() error {
	if c.Columns <= 0 || c.Rows <= 0 || c.PieceSize <= 0 {
		return fmt.Errorf("%w: %dx%d cells, piece size %d", ErrInvalidConfig, c.Columns, c.Rows, c.PieceSize)
	}
	if c.FramesPerSecond <= 0 {
		return fmt.Errorf("%w: %d frames per second", ErrInvalidConfig, c.FramesPerSecond)
	}
	if c.ClearSeconds < 0 {
		return fmt.Errorf("%w: negative clear duration", ErrInvalidConfig)
	}
	return nil
}

// Source provides the snapshot to draw.
type Source interface {
	RenderData() engine.Snapshot
}

// Option configures a Renderer.
type Option func(*Renderer)

// OnClearDone registers the function called once when a clear animation finishes.
func OnClearDone(fn func()) Option {
	return func(r *Renderer) {
		r.onClearDone = fn
	}
}

// Renderer draws one view of the game.
type Renderer struct {
	src     Source
	surface Surface
	colors  *palette.Table
	cfg     Config

	totalRows int
	order     []Cell

	brickW, brickH int
	w, h           int
	canvasW        int
	canvasH        int
	front, back    rect.Rect
	pending        bool

	anim        clearAnimation
	onClearDone func()
	offset      rect.Point
	stepFrames  int
}

// New returns a renderer for cfg. Nothing is drawn until Resize provides a size.
func New(src Source, surface Surface, colors *palette.Table, cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if src == nil || surface == nil || colors == nil {
		return nil, fmt.Errorf("%w: missing source, surface or colours", ErrInvalidConfig)
	}

	r := &Renderer{
		src:       src,
		surface:   surface,
		colors:    colors,
		cfg:       cfg,
		totalRows: cfg.Rows,
	}
	if cfg.Mode == ModeBoard {
		r.totalRows += cfg.PieceSize
	}
	r.order = RenderOrder(cfg.Columns, r.totalRows)
	r.anim.duration = int(math.Round(float64(cfg.FramesPerSecond) * cfg.ClearSeconds))

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SetStepFrames caches the simulation cadence. It does not change what is drawn.
func (r *Renderer) SetStepFrames(n int) { r.stepFrames = n }
func (r *Renderer) StepFrames() int     { return r.stepFrames }

// Mode returns the renderer's mode.
func (r *Renderer) Mode() Mode { return r.cfg.Mode }

// BrickSize returns the pixel size of one cell.
func (r *Renderer) BrickSize() (w, h int) { return r.brickW, r.brickH }

// Front returns the front rectangle of the visible board.
func (r *Renderer) Front() rect.Rect { return r.front }

// Back returns the perspective-skewed companion of Front.
func (r *Renderer) Back() rect.Rect { return r.back }

// Order returns the cell traversal order.
func (r *Renderer) Order() []Cell { return r.order }

// Animating reports whether a clear animation is armed.
func (r *Renderer) Animating() bool { return r.anim.remaining > 0 }

// CancelAnimation drops any clear animation in flight without calling the completion
// function, and schedules a redraw.
func (r *Renderer) CancelAnimation() {
	r.anim.reset()
	r.pending = true
}

// Resize fits the board into a width x height pixel area. Bricks keep integer sizes, so the
// drawn board may be smaller than the area. Sizes that cannot hold a single pixel per cell
// leave the previous geometry untouched.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	bw := width / r.cfg.Columns
	bh := height / r.cfg.Rows
	if bw == 0 || bh == 0 {
		return
	}

	r.brickW, r.brickH = bw, bh
	r.w, r.h = bw*r.cfg.Columns, bh*r.cfg.Rows
	r.front = rect.New(0, 0, float64(r.w), float64(r.h))
	r.back = r.backRect(r.front)
	r.canvasW, r.canvasH = width, height
	r.pending = true
}

// Update pulls a snapshot and redraws when forced, when a resize or cancel is pending, or
// while rows are clearing. It returns whether anything was drawn.
func (r *Renderer) Update(force bool) bool {
	snap := r.src.RenderData()
	board := r.cfg.Mode == ModeBoard
	clearing := board && len(snap.ClearRows) > 0
	if !force && !r.pending && !clearing {
		return false
	}
	r.pending = false

	r.surface.Clear(0, 0, float64(r.canvasW), float64(r.canvasH))
	if board {
		r.drawBackground(&snap)
	}
	if board && snap.Paused {
		r.drawLabel("Paused")
		return true
	}

	var offsets []float64
	if clearing {
		offsets = r.animate(&snap)
	} else {
		r.anim.reset()
	}

	r.offset = rect.Point{}
	if !board {
		r.offset = r.previewOffset(snap.NextBounds)
	}

	if board || !snap.GameOver {
		r.drawCells(&snap, offsets)
	}

	if board && snap.GameOver {
		r.drawLabel("Game Over")
	}
	return true
}

func (r *Renderer) drawCells(snap *engine.Snapshot, offsets []float64) {
	board := r.cfg.Mode == ModeBoard
	mode := engine.NeighborBoard
	pieceMaterial := palette.Piece(snap.ActiveMaterial)
	if !board {
		mode = engine.NeighborNext
		pieceMaterial = palette.Piece(snap.NextMaterial)
	}

	var pileFronts, pieceFronts []rect.Rect
	for _, c := range r.order {
		if board && snap.Clearing(c.Y) {
			continue
		}

		var isPiece, isPile bool
		if board {
			isPiece = snap.ActiveAt(c.X, c.Y)
			isPile = snap.Board.Occupied(c.X, c.Y)
		} else {
			isPiece = snap.Next.At(c.X, c.Y)
		}
		if !isPiece && !isPile {
			continue
		}

		// only landed cells ride the clear animation
		material := pieceMaterial
		var rowOffset float64
		if !isPiece {
			material = palette.Pile()
			if c.Y < len(offsets) {
				rowOffset = offsets[c.Y]
			}
		}

		front := r.cellRect(c.X, c.Y, rowOffset)
		r.drawCube(front, snap.Neighbors(c.X, c.Y, mode), material)
		if isPiece {
			pieceFronts = append(pieceFronts, front)
		} else {
			pileFronts = append(pileFronts, front)
		}
	}

	for _, front := range pileFronts {
		r.drawFace(front.Corners(), palette.Pile(), palette.ShadeFront, nil)
	}
	for _, front := range pieceFronts {
		r.drawFace(front.Corners(), pieceMaterial, palette.ShadeFront, nil)
	}
}

func (r *Renderer) drawCube(front rect.Rect, n engine.Neighbors, m palette.Material) {
	back := r.backRect(front)
	fx1, fy1, fx2, fy2 := float64(front.X1()), float64(front.Y1()), float64(front.X2()), float64(front.Y2())
	bx1, by1, bx2, by2 := float64(back.X1()), float64(back.Y1()), float64(back.X2()), float64(back.Y2())

	if !n.Left {
		r.drawFace([]rect.Point{{X: fx1, Y: fy1}, {X: bx1, Y: by1}, {X: bx1, Y: by2}, {X: fx1, Y: fy2}}, m, palette.ShadeLeftRight, &front)
	}
	if !n.Right {
		r.drawFace([]rect.Point{{X: fx2, Y: fy1}, {X: bx2, Y: by1}, {X: bx2, Y: by2}, {X: fx2, Y: fy2}}, m, palette.ShadeLeftRight, &front)
	}
	if !n.Top {
		r.drawFace([]rect.Point{{X: fx1, Y: fy1}, {X: bx1, Y: by1}, {X: bx2, Y: by1}, {X: fx2, Y: fy1}}, m, palette.ShadeUpDown, &front)
	}
	if !n.Bottom {
		r.drawFace([]rect.Point{{X: fx1, Y: fy2}, {X: bx1, Y: by2}, {X: bx2, Y: by2}, {X: fx2, Y: fy2}}, m, palette.ShadeUpDown, &front)
	}
}

// drawFace paints a face unless it is a side face with a corner strictly inside the cell's
// front square, which means the face points away from the viewer.
func (r *Renderer) drawFace(points []rect.Point, m palette.Material, s palette.Shade, front *rect.Rect) {
	if front != nil {
		for _, p := range points {
			if front.ContainsStrict(p.X, p.Y) {
				return
			}
		}
	}
	shifted := make([]rect.Point, len(points))
	for i, p := range points {
		shifted[i] = rect.Point{X: p.X + r.offset.X, Y: p.Y + r.offset.Y}
	}
	r.surface.Polygon(shifted, r.colors.Color(m, s, palette.PartFill), r.colors.Color(m, s, palette.PartStroke))
}

func (r *Renderer) drawLabel(text string) {
	x := float64(rect.Round(float64(r.w) / 2))
	y := float64(rect.Round(float64(r.h) / 2))
	r.surface.Label(text, x, y, r.cfg.Theme.Label)
}
