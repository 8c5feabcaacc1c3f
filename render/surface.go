package render

import (
	"image/color"

	"github.com/plus3/cubetris/palette"
	"github.com/plus3/cubetris/rect"
)

// Surface is the 2D drawing target. Implementations draw immediately in call order.
type Surface interface {
	// Clear erases a rectangular region to transparent.
	Clear(x, y, w, h float64)
	// Polygon fills and then strokes a closed path. A nil colour skips that pass.
	Polygon(points []rect.Point, fill, stroke color.Color)
	// Line strokes a one pixel segment.
	Line(x1, y1, x2, y2 float64, c color.Color)
	// Label draws text centred on (x, y).
	Label(text string, x, y float64, style LabelStyle)
}

// GradientStop is one stop of a vertical label gradient. Offset runs from 0 at the top of the
// text box to 1 at its bottom.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// LabelStyle describes the centred overlay text.
type LabelStyle struct {
	Size     float64
	Bold     bool
	Gradient []GradientStop
	Stroke   color.NRGBA
	Shadow   color.NRGBA
	// ShadowOffsetY moves the shadow copy vertically; negative is up.
	ShadowOffsetY float64
}

// ColorAt samples the gradient at t in [0, 1].
func (s LabelStyle) ColorAt(t float64) color.NRGBA {
	stops := s.Gradient
	if len(stops) == 0 {
		return color.NRGBA{A: 0xff}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return color.NRGBA{
			R: lerp(a.Color.R, b.Color.R, f),
			G: lerp(a.Color.G, b.Color.G, f),
			B: lerp(a.Color.B, b.Color.B, f),
			A: lerp(a.Color.A, b.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// Theme holds the fixed colours of the room around the board and of the overlay labels.
type Theme struct {
	BackPlane        color.NRGBA
	Floor            color.NRGBA
	Walls            color.NRGBA
	FrontFrame       color.NRGBA
	BackFrame        color.NRGBA
	RowSide          color.NRGBA
	RowBack          color.NRGBA
	ColumnFloor      color.NRGBA
	ColumnFloorGuide color.NRGBA
	ColumnBack       color.NRGBA
	ColumnBackGuide  color.NRGBA
	Label            LabelStyle
}

// DefaultTheme returns the stock light-grey room.
func DefaultTheme() Theme {
	return Theme{
		BackPlane:        palette.MustHex("#F0F0F0"),
		Floor:            palette.MustHex("#B0B0B0"),
		Walls:            palette.MustHex("#DCDCDC"),
		FrontFrame:       palette.MustHex("#A0A0A0"),
		BackFrame:        palette.MustHex("#E8E8E8"),
		RowSide:          palette.MustHex("#CCCCCC"),
		RowBack:          palette.MustHex("#E2E2E2"),
		ColumnFloor:      palette.MustHex("#A0A0A0"),
		ColumnFloorGuide: palette.MustHex("#8080A0"),
		ColumnBack:       palette.MustHex("#E2E2E2"),
		ColumnBackGuide:  palette.MustHex("#C2C2E2"),
		Label: LabelStyle{
			Size: 40,
			Bold: true,
			Gradient: []GradientStop{
				{Offset: 0.0, Color: palette.MustHex("#E0E0E0")},
				{Offset: 0.3, Color: palette.MustHex("#FFFFFF")},
				{Offset: 0.7, Color: palette.MustHex("#FFFFFF")},
				{Offset: 1.0, Color: palette.MustHex("#C0C0C0")},
			},
			Stroke:        palette.MustHex("#909090"),
			Shadow:        palette.MustHex("#606060"),
			ShadowOffsetY: -13,
		},
	}
}
