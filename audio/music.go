package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// melody is the looping background arpeggio.
var melody = []float64{220, 261.63, 329.63, 261.63, 196, 246.94, 293.66, 246.94}

// arpeggio plays melody forever, one enveloped sine note per step.
type arpeggio struct {
	sr    beep.SampleRate
	notes []float64
	step  int
	pos   int
}

func newArpeggio(sr beep.SampleRate, notes []float64, step time.Duration) *arpeggio {
	return &arpeggio{sr: sr, notes: notes, step: sr.N(step)}
}

func (a *arpeggio) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		idx := (a.pos / a.step) % len(a.notes)
		within := a.pos % a.step
		t := float64(within) / float64(a.sr)
		decay := 1 - float64(within)/float64(a.step)
		v := 0.12 * decay * math.Sin(2*math.Pi*a.notes[idx]*t)
		samples[i][0] = v
		samples[i][1] = v
		a.pos++
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }

// fader ramps the gain of an endless streamer towards a target. When a fade towards zero
// that was asked to pause completes, the source stops advancing and silence is emitted.
type fader struct {
	streamer beep.Streamer
	sr       beep.SampleRate
	gain     float64
	target   float64
	delta    float64
	pause    bool
	paused   bool
}

func newFader(s beep.Streamer, sr beep.SampleRate) *fader {
	return &fader{streamer: s, sr: sr, paused: true}
}

// fadeTo starts a ramp to target over d. pause stops the source once the ramp reaches zero.
func (f *fader) fadeTo(target float64, d time.Duration, pause bool) {
	f.target = target
	f.pause = pause && target == 0
	if target > 0 {
		f.paused = false
	}
	n := f.sr.N(d)
	if n <= 0 {
		f.gain = target
		f.delta = 0
		f.settle()
		return
	}
	f.delta = (target - f.gain) / float64(n)
}

func (f *fader) settle() {
	if f.gain == 0 && f.pause {
		f.paused = true
	}
}

func (f *fader) playing() bool {
	return !f.paused && (f.gain > 0 || f.target > 0)
}

func (f *fader) Stream(samples [][2]float64) (int, bool) {
	if f.paused {
		clear(samples)
		return len(samples), true
	}
	n, _ := f.streamer.Stream(samples)
	clear(samples[n:])
	for i := range samples[:n] {
		if f.delta != 0 {
			f.gain += f.delta
			if (f.delta > 0 && f.gain >= f.target) || (f.delta < 0 && f.gain <= f.target) {
				f.gain = f.target
				f.delta = 0
				f.settle()
			}
		}
		samples[i][0] *= f.gain
		samples[i][1] *= f.gain
	}
	return len(samples), true
}

func (f *fader) Err() error { return nil }
