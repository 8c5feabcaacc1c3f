// Package raster draws render output into an in-memory image with the gg software
// rasterizer, for headless runs and snapshots.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/plus3/cubetris/rect"
	"github.com/plus3/cubetris/render"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var ErrInvalidSize = errors.New("raster: invalid size")

type faceKey struct {
	size float64
	bold bool
}

// Surface implements render.Surface on a gg context. Drawing errors do not interrupt a
// frame; the first one is kept for Err.
type Surface struct {
	dc      *gg.Context
	regular *text.FontSource
	bold    *text.FontSource
	faces   map[faceKey]text.Face
	err     error
}

// New returns a transparent width x height surface.
func New(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load bold font: %w", err)
	}
	return &Surface{
		dc:      gg.NewContext(width, height),
		regular: regular,
		bold:    bold,
		faces:   map[faceKey]text.Face{},
	}, nil
}

// Width and Height return the canvas size.
func (s *Surface) Width() int  { return s.dc.Width() }
func (s *Surface) Height() int { return s.dc.Height() }

// Resize changes the canvas size, discarding its contents.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := s.dc.Resize(width, height); err != nil {
		return fmt.Errorf("raster: resize: %w", err)
	}
	return nil
}

// Err returns the first drawing error since the surface was created.
func (s *Surface) Err() error { return s.err }

// Image returns a copy of the canvas.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the canvas to a PNG file.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// Close releases the context.
func (s *Surface) Close() error { return s.dc.Close() }

func (s *Surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func (s *Surface) Clear(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(image.Rect(0, 0, s.Width(), s.Height()))
	if r.Empty() {
		return
	}
	if r.Dx() == s.Width() && r.Dy() == s.Height() {
		s.dc.Clear()
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (s *Surface) Polygon(points []rect.Point, fill, stroke color.Color) {
	if len(points) < 3 {
		return
	}
	s.dc.ClearPath()
	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()

	if fill != nil {
		s.dc.SetColor(fill)
		if stroke != nil {
			s.keep(s.dc.FillPreserve())
		} else {
			s.keep(s.dc.Fill())
		}
	}
	if stroke != nil {
		s.dc.SetColor(stroke)
		s.dc.SetLineWidth(1)
		s.dc.SetLineJoin(gg.LineJoinMiter)
		s.keep(s.dc.Stroke())
	}
	s.dc.ClearPath()
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c color.Color) {
	s.dc.ClearPath()
	s.dc.DrawLine(x1, y1, x2, y2)
	s.dc.SetColor(c)
	s.dc.SetLineWidth(1)
	s.keep(s.dc.Stroke())
}

// Label draws text centred on (x, y): a shadow copy, a one pixel outline, then the fill
// shaded top to bottom along the style gradient.
func (s *Surface) Label(str string, x, y float64, style render.LabelStyle) {
	face := s.face(style)
	s.dc.SetFont(face)

	s.dc.SetColor(style.Shadow)
	s.dc.DrawStringAnchored(str, x, y+style.ShadowOffsetY, 0.5, 0.5)

	s.dc.SetColor(style.Stroke)
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		s.dc.DrawStringAnchored(str, x+d[0], y+d[1], 0.5, 0.5)
	}

	s.gradientText(str, x, y, face, style)
}

// gradientText renders str as a white mask on a scratch canvas and blends the gradient
// through it, row by row.
func (s *Surface) gradientText(str string, x, y float64, face text.Face, style render.LabelStyle) {
	w, h := text.Measure(str, face)
	mw, mh := int(math.Ceil(w))+2, int(math.Ceil(h))+2
	if mw <= 2 || mh <= 2 {
		return
	}
	scratch := gg.NewContext(mw, mh)
	defer scratch.Close()
	scratch.SetFont(face)
	scratch.SetColor(color.White)
	scratch.DrawStringAnchored(str, float64(mw)/2, float64(mh)/2, 0.5, 0.5)
	mask := scratch.Image()

	base := s.dc.Image()
	x0 := int(math.Round(x)) - mw/2
	y0 := int(math.Round(y)) - mh/2
	for my := 0; my < mh; my++ {
		c := gg.FromColor(style.ColorAt(float64(my) / float64(mh-1)))
		for mx := 0; mx < mw; mx++ {
			_, _, _, a := mask.At(mx, my).RGBA()
			if a == 0 {
				continue
			}
			px, py := x0+mx, y0+my
			if !image.Pt(px, py).In(base.Bounds()) {
				continue
			}
			s.dc.SetPixel(px, py, blend(c, gg.FromColor(base.At(px, py)), float64(a)/0xffff))
		}
	}
}

// blend mixes src over dst with coverage a.
func blend(src, dst gg.RGBA, a float64) gg.RGBA {
	return gg.RGBA{
		R: src.R*a + dst.R*(1-a),
		G: src.G*a + dst.G*(1-a),
		B: src.B*a + dst.B*(1-a),
		A: a + dst.A*(1-a),
	}
}

func (s *Surface) face(style render.LabelStyle) text.Face {
	key := faceKey{size: style.Size, bold: style.Bold}
	if f, ok := s.faces[key]; ok {
		return f
	}
	src := s.regular
	if style.Bold {
		src = s.bold
	}
	f := src.Face(style.Size)
	s.faces[key] = f
	return f
}

var _ render.Surface = (*Surface)(nil)
