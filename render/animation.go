package render

import (
	"math"

	"github.com/plus3/cubetris/engine"
)

type clearAnimation struct {
	duration  int
	remaining int
	offsets   []float64
}

func (a *clearAnimation) reset() {
	a.remaining = 0
	a.offsets = nil
}

// animate advances the clear animation by one frame and returns the per-row pixel offsets to
// draw it with. The first frame only arms the counter. Every later frame grows the collapse of
// each clearing row along base^elapsed, where base^duration equals one brick height, and
// gives every row the summed collapse of the clearing rows below it. The frame that brings
// the counter to zero calls the completion function.
func (r *Renderer) animate(snap *engine.Snapshot) []float64 {
	a := &r.anim
	if a.remaining == 0 {
		a.remaining = a.duration
		if a.duration > 0 {
			return nil
		}
	}

	if a.duration > 0 {
		elapsed := a.duration - a.remaining + 1
		base := math.Pow(float64(r.brickH), 1/float64(a.duration))
		step := math.Pow(base, float64(elapsed))

		if len(a.offsets) != r.totalRows {
			a.offsets = make([]float64, r.totalRows)
		}
		sum := 0.0
		for y := r.totalRows - 1; y >= 0; y-- {
			a.offsets[y] = sum
			if snap.Clearing(y) {
				sum += step
			}
		}
		a.remaining--
		if a.remaining > 0 {
			return a.offsets
		}
	}

	frame := a.offsets
	a.reset()
	if r.onClearDone != nil {
		r.onClearDone()
	}
	return frame
}
