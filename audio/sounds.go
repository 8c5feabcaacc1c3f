package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/plus3/cubetris/engine"
)

// Sound is a one-shot effect.
type Sound int

const (
	SoundRotate Sound = iota
	SoundDown
	SoundTouchdown
	SoundBlowup
	SoundGameOver
	SoundCongrats
	soundCount
)

var soundNames = [soundCount]string{"rotate", "down", "touchdown", "blowup", "gameover", "congrats"}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return fmt.Sprintf("Sound(%d)", int(s))
	}
	return soundNames[s]
}

// ForCue maps an engine cue to its sound.
func ForCue(c engine.Cue) (Sound, bool) {
	switch c {
	case engine.CueRotate:
		return SoundRotate, true
	case engine.CueSoftDrop:
		return SoundDown, true
	case engine.CueTouchdown:
		return SoundTouchdown, true
	case engine.CueClear:
		return SoundBlowup, true
	case engine.CueGameOver:
		return SoundGameOver, true
	}
	return 0, false
}

type note struct {
	freq float64
	dur  time.Duration
}

type voice struct {
	volume float64
	notes  []note
}

var voices = [soundCount]voice{
	SoundRotate:    {0.8, []note{{660, 40 * time.Millisecond}, {880, 40 * time.Millisecond}}},
	SoundDown:      {0.15, []note{{220, 30 * time.Millisecond}}},
	SoundTouchdown: {0.4, []note{{110, 90 * time.Millisecond}}},
	SoundBlowup:    {1.0, []note{{392, 70 * time.Millisecond}, {523.25, 70 * time.Millisecond}, {783.99, 160 * time.Millisecond}}},
	SoundGameOver:  {0.8, []note{{392, 200 * time.Millisecond}, {329.63, 200 * time.Millisecond}, {261.63, 400 * time.Millisecond}}},
	SoundCongrats:  {1.0, []note{{523.25, 120 * time.Millisecond}, {659.25, 120 * time.Millisecond}, {783.99, 120 * time.Millisecond}, {1046.5, 300 * time.Millisecond}}},
}

// synth renders s as a finite streamer: a sequence of enveloped sine notes at the sound's
// volume.
func synth(s Sound, sr beep.SampleRate) (beep.Streamer, error) {
	if s < 0 || s >= soundCount {
		return nil, fmt.Errorf("audio: unknown sound %d", int(s))
	}
	v := voices[s]
	parts := make([]beep.Streamer, 0, len(v.notes))
	for _, n := range v.notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: %s tone: %w", s, err)
		}
		length := sr.N(n.dur)
		parts = append(parts, newEnvelope(beep.Take(length, tone), length, length/10, length/2))
	}
	return newVolume(beep.Seq(parts...), v.volume), nil
}

// newVolume scales s linearly; effects.Volume works in powers of Base.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// envelope applies a linear attack and release to a streamer of known length.
type envelope struct {
	streamer beep.Streamer
	length   int
	attack   int
	release  int
	position int
}

func newEnvelope(s beep.Streamer, length, attack, release int) *envelope {
	return &envelope{streamer: s, length: length, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := range samples[:n] {
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if left := e.length - e.position; e.release > 0 && left < e.release {
			gain = min(gain, max(0, float64(left)/float64(e.release)))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
