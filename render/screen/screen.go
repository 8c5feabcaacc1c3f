// Package screen draws render output onto ebiten images.
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/cubetris/rect"
	"github.com/plus3/cubetris/render"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a one pixel white source image for DrawTriangles. The pixel is cut out of a
// larger image so edge sampling stays white.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

type faceKey struct {
	size float64
	bold bool
}

// Surface implements render.Surface on an ebiten image. The target persists between frames;
// renderers only repaint it when something changed.
type Surface struct {
	target    *ebiten.Image
	regular   *text.GoTextFaceSource
	bold      *text.GoTextFaceSource
	faces     map[faceKey]*text.GoTextFace
	antiAlias bool

	vs []ebiten.Vertex
	is []uint16
}

// New returns a surface drawing onto target.
func New(target *ebiten.Image) (*Surface, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("screen: load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("screen: load bold font: %w", err)
	}
	return &Surface{
		target:    target,
		regular:   regular,
		bold:      bold,
		faces:     map[faceKey]*text.GoTextFace{},
		antiAlias: true,
	}, nil
}

// Target returns the image being drawn on.
func (s *Surface) Target() *ebiten.Image { return s.target }

// SetTarget switches to a new image, typically after a resize.
func (s *Surface) SetTarget(img *ebiten.Image) { s.target = img }

func (s *Surface) Clear(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(s.target.Bounds())
	if r.Empty() {
		return
	}
	s.target.SubImage(r).(*ebiten.Image).Clear()
}

func (s *Surface) Polygon(points []rect.Point, fill, stroke color.Color) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	if fill != nil {
		s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
		paint(s.vs, toNRGBA(fill))
		s.draw()
	}
	if stroke != nil {
		s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
			Width:      1,
			LineJoin:   vector.LineJoinMiter,
			MiterLimit: 4,
		})
		paint(s.vs, toNRGBA(stroke))
		s.draw()
	}
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c color.Color) {
	vector.StrokeLine(s.target, float32(x1), float32(y1), float32(x2), float32(y2), 1, c, s.antiAlias)
}

// Label draws text centred on (x, y): a shadow copy, the gradient fill, then the outline.
func (s *Surface) Label(str string, x, y float64, style render.LabelStyle) {
	face := s.face(style)
	_, h := text.Measure(str, face, 0)

	var path vector.Path
	text.AppendVectorPath(&path, str, face, &text.LayoutOptions{
		PrimaryAlign:   text.AlignCenter,
		SecondaryAlign: text.AlignCenter,
	})

	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	translate(s.vs, float32(x), float32(y+style.ShadowOffsetY))
	paint(s.vs, style.Shadow)
	s.draw()

	s.vs, s.is = path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	for i := range s.vs {
		t := 0.5
		if h > 0 {
			t = float64(s.vs[i].DstY)/h + 0.5
		}
		setColor(&s.vs[i], style.ColorAt(min(max(t, 0), 1)))
	}
	translate(s.vs, float32(x), float32(y))
	s.draw()

	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:    1,
		LineJoin: vector.LineJoinRound,
	})
	translate(s.vs, float32(x), float32(y))
	paint(s.vs, style.Stroke)
	s.draw()
}

func (s *Surface) face(style render.LabelStyle) *text.GoTextFace {
	key := faceKey{size: style.Size, bold: style.Bold}
	if f, ok := s.faces[key]; ok {
		return f
	}
	src := s.regular
	if style.Bold {
		src = s.bold
	}
	f := &text.GoTextFace{Source: src, Size: style.Size}
	s.faces[key] = f
	return f
}

func (s *Surface) draw() {
	if len(s.is) == 0 {
		return
	}
	s.target.DrawTriangles(s.vs, s.is, white(), &ebiten.DrawTrianglesOptions{AntiAlias: s.antiAlias})
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func setColor(v *ebiten.Vertex, c color.NRGBA) {
	v.SrcX, v.SrcY = 1, 1
	v.ColorR = float32(c.R) / 0xff
	v.ColorG = float32(c.G) / 0xff
	v.ColorB = float32(c.B) / 0xff
	v.ColorA = float32(c.A) / 0xff
}

func paint(vs []ebiten.Vertex, c color.NRGBA) {
	for i := range vs {
		setColor(&vs[i], c)
	}
}

func translate(vs []ebiten.Vertex, dx, dy float32) {
	for i := range vs {
		vs[i].DstX += dx
		vs[i].DstY += dy
	}
}

var _ render.Surface = (*Surface)(nil)
