package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/cubetris/input"
)

var bindings = []struct {
	key ebiten.Key
	to  input.Key
}{
	{ebiten.KeyArrowUp, input.KeyRotate},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyP, input.KeyPause},
}

// feedKeys forwards this tick's key edges to the tracker.
func feedKeys(t *input.Tracker) {
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			t.Press(b.to)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			t.Release(b.to)
		}
	}
}
