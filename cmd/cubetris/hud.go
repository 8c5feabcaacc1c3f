package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/plus3/cubetris/game"
)

var (
	hudText     = color.NRGBA{0xdd, 0xdd, 0xdd, 0xff}
	hudBonus    = color.NRGBA{0xff, 0xcc, 0x33, 0xff}
	hudCongrats = color.NRGBA{0xff, 0xee, 0x88, 0xff}
)

// hud draws the score panel, the bonus lines and the congratulation.
type hud struct {
	small *text.GoTextFace
	large *text.GoTextFace
}

func newHUD() (*hud, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, err
	}
	return &hud{
		small: &text.GoTextFace{Source: regular, Size: 18},
		large: &text.GoTextFace{Source: bold, Size: 28},
	}, nil
}

func (h *hud) draw(dst *ebiten.Image, l screenLayout, s *game.Session) {
	x, y := float64(l.panel.X), float64(l.panel.Y)
	h.line(dst, h.large, fmt.Sprintf("%09d", s.Score()), x, y, hudText, 1)
	y += 36
	h.line(dst, h.small, fmt.Sprintf("High %09d", s.HighScore()), x, y, hudText, 1)
	y += 40

	for _, b := range s.Bonuses() {
		h.line(dst, h.small, b.Label, x, y, hudBonus, b.Opacity())
		y += 26
	}

	help := "Enter: start   P: pause   Esc: abort"
	if s.Running() {
		help = "Arrows: move   Up: rotate   P: pause"
	}
	h.line(dst, h.small, help, x, float64(l.board.Max.Y)-20, hudText, 0.6)

	if s.Congrats() {
		center := image.Pt((l.board.Min.X+l.board.Max.X)/2, l.board.Min.Y+l.board.Dy()/3)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(center.X), float64(center.Y))
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(hudCongrats)
		text.Draw(dst, "New high score!", h.large, op)
	}
}

func (h *hud) line(dst *ebiten.Image, face *text.GoTextFace, str string, x, y float64, c color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, str, face, op)
}
