// Package palette precomputes the shaded colour variants used to draw cube faces.
//
// Every material has a fill and a stroke base colour. At construction each of them is
// multiplied by the brightness ratio of every shade and re-encoded, so lookups during a frame
// never touch colour maths.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a base colour cannot be parsed or the piece palette is empty.
var ErrInvalidColor = errors.New("palette: invalid colour")

// Shade selects a face orientation.
type Shade int

const (
	ShadeFront Shade = iota
	ShadeUpDown
	ShadeLeftRight
	shadeCount
)

func (s Shade) String() string {
	switch s {
	case ShadeFront:
		return "front"
	case ShadeUpDown:
		return "updown"
	case ShadeLeftRight:
		return "leftright"
	}
	return fmt.Sprintf("Shade(%d)", int(s))
}

// Part selects the fill or the outline of a face.
type Part int

const (
	PartFill Part = iota
	PartStroke
	partCount
)

// Material is either the pile material or one of the piece materials.
type Material struct {
	piece bool
	index int
}

// Pile is the material of landed cells and of the background.
func Pile() Material { return Material{} }

// Piece is the material with the given piece colour index.
func Piece(index int) Material { return Material{piece: true, index: index} }

// IsPiece reports whether m is a piece material.
func (m Material) IsPiece() bool { return m.piece }

// Index returns the piece colour index. It is zero for the pile.
func (m Material) Index() int { return m.index }

// Pair holds the base hex colours of one material.
type Pair struct {
	Fill   string
	Stroke string
}

// Ratios are the brightness multipliers applied per shade.
type Ratios struct {
	Front     float64
	UpDown    float64
	LeftRight float64
}

// Config describes the colours to precompute.
type Config struct {
	Ratios Ratios
	Pile   Pair
	Pieces []Pair
}

// DefaultConfig returns the stock colours.
func DefaultConfig() Config {
	return Config{
		Ratios: Ratios{Front: 1.0, UpDown: 0.80, LeftRight: 0.83},
		Pile:   Pair{Fill: "#DADADA", Stroke: "#989898"},
		Pieces: []Pair{
			{Fill: "#B6C0FF", Stroke: "#3240FF"},
			{Fill: "#b6f0ff", Stroke: "#32c8ff"},
			{Fill: "#b6ffc8", Stroke: "#2eeb6a"},
			{Fill: "#fffbb6", Stroke: "#dce12c"},
			{Fill: "#ffdbb6", Stroke: "#ffa932"},
			{Fill: "#ffb6c2", Stroke: "#ff3246"},
			{Fill: "#eeb6ff", Stroke: "#dd32ff"},
		},
	}
}

type entry struct {
	hex string
	rgb color.NRGBA
}

type shades [shadeCount][partCount]entry

// Table is the immutable lookup of precomputed colours.
type Table struct {
	pile   shades
	pieces []shades
}

// New precomputes all shades for cfg.
func New(cfg Config) (*Table, error) {
	if len(cfg.Pieces) == 0 {
		return nil, fmt.Errorf("%w: no piece colours", ErrInvalidColor)
	}

	ratios := [shadeCount]float64{
		ShadeFront:     cfg.Ratios.Front,
		ShadeUpDown:    cfg.Ratios.UpDown,
		ShadeLeftRight: cfg.Ratios.LeftRight,
	}

	t := &Table{pieces: make([]shades, len(cfg.Pieces))}

	var err error
	if t.pile, err = precompute(cfg.Pile, ratios); err != nil {
		return nil, fmt.Errorf("pile: %w", err)
	}
	for i, pair := range cfg.Pieces {
		if t.pieces[i], err = precompute(pair, ratios); err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
	}

	return t, nil
}

// PieceCount returns the number of piece materials.
func (t *Table) PieceCount() int {
	return len(t.pieces)
}

// Color returns the precomputed colour. Piece indexes wrap around the palette.
func (t *Table) Color(m Material, s Shade, p Part) color.NRGBA {
	return t.lookup(m, s, p).rgb
}

// Hex returns the precomputed colour as a lower-case "#rrggbb" string.
func (t *Table) Hex(m Material, s Shade, p Part) string {
	return t.lookup(m, s, p).hex
}

func (t *Table) lookup(m Material, s Shade, p Part) entry {
	if s < 0 || s >= shadeCount {
		s = ShadeFront
	}
	if p < 0 || p >= partCount {
		p = PartFill
	}
	if !m.piece {
		return t.pile[s][p]
	}
	i := m.index % len(t.pieces)
	if i < 0 {
		i += len(t.pieces)
	}
	return t.pieces[i][s][p]
}

func precompute(pair Pair, ratios [shadeCount]float64) (shades, error) {
	var out shades
	for p, hex := range [partCount]string{PartFill: pair.Fill, PartStroke: pair.Stroke} {
		base, err := colorful.Hex(hex)
		if err != nil {
			return out, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
		}
		r, g, b := base.RGB255()
		for s, ratio := range ratios {
			out[s][p] = shade(r, g, b, ratio)
		}
	}
	return out, nil
}

func shade(r, g, b uint8, ratio float64) entry {
	rgb := color.NRGBA{R: scale(r, ratio), G: scale(g, ratio), B: scale(b, ratio), A: 0xff}
	c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
	return entry{hex: c.Hex(), rgb: rgb}
}

func scale(v uint8, ratio float64) uint8 {
	s := math.Floor(float64(v)*ratio + 0.5)
	return uint8(math.Max(0, math.Min(255, s)))
}

// MustHex parses a "#rrggbb" colour for static tables and panics on malformed input.
func MustHex(hex string) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
