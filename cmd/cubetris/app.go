package main

import (
	"image"
	"image/color"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/cubetris/game"
	"github.com/plus3/cubetris/render/screen"
)

var background = color.NRGBA{0x10, 0x12, 0x18, 0xff}

// app implements ebiten.Game around one session.
type app struct {
	session *game.Session
	board   *screen.Surface
	preview *screen.Surface
	hud     *hud
	imgui   *ebitenbackend.EbitenBackend
	dt      float64

	width, height int
	layout        screenLayout
}

// resize reallocates the offscreen images when the window size changes.
func (a *app) resize(w, h int) {
	if w == a.width && h == a.height {
		return
	}
	a.width, a.height = w, h
	a.layout = computeLayout(w, h)

	replace := func(s *screen.Surface, r image.Rectangle) {
		if old := s.Target(); old != nil {
			old.Deallocate()
		}
		s.SetTarget(ebiten.NewImage(r.Dx(), r.Dy()))
	}
	b, p := a.layout.board, a.layout.preview
	replace(a.board, b)
	replace(a.preview, p)
	a.session.Resize(b.Dx(), b.Dy(), p.Dx(), p.Dy())
}

func (a *app) Update() error {
	if a.imgui != nil {
		a.imgui.BeginFrame()
	}
	err := a.handleKeys()
	if err == nil {
		a.session.Tick(a.dt)
	}
	if a.imgui != nil {
		a.imgui.EndFrame()
	}
	return err
}

func (a *app) handleKeys() error {
	if a.imgui != nil && imgui.CurrentIO().WantCaptureKeyboard() {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	s := a.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !s.Running():
		s.DismissCongrats()
		return s.Start()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if s.Running() {
			s.Abort()
		} else {
			s.DismissCongrats()
		}
		return nil
	}
	feedKeys(s.Input())
	return nil
}

func (a *app) Draw(dst *ebiten.Image) {
	dst.Fill(background)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(a.layout.board.Min.X), float64(a.layout.board.Min.Y))
	dst.DrawImage(a.board.Target(), op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(a.layout.preview.Min.X), float64(a.layout.preview.Min.Y))
	dst.DrawImage(a.preview.Target(), op)

	a.hud.draw(dst, a.layout, a.session)

	if a.imgui != nil {
		a.imgui.Draw(dst)
	}
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.resize(outsideWidth, outsideHeight)
	if a.imgui != nil {
		a.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
