// Package audio synthesizes the game's sound effects and background music and mixes them
// onto the speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// Player mixes one-shot sounds with the music loop. Sounds and music are both off until
// SetEnabled turns them on.
type Player struct {
	mu      sync.Mutex
	sr      beep.SampleRate
	mixer   *beep.Mixer
	music   *fader
	melody  *arpeggio
	soundOn bool
	musicOn bool
	opened  bool
}

// NewPlayer returns a player producing samples at sr. It is silent until Open hands it to
// the speaker; Stream may be read directly instead.
func NewPlayer(sr beep.SampleRate) *Player {
	p := &Player{
		sr:     sr,
		mixer:  &beep.Mixer{},
		melody: newArpeggio(sr, melody, 250*time.Millisecond),
	}
	p.music = newFader(p.melody, sr)
	p.mixer.Add(p.music)
	return p
}

// Open initializes the speaker and starts playback.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.opened {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p)
	p.opened = true
	return nil
}

// Close stops playback. The speaker stays initialized.
func (p *Player) Close() {
	p.mu.Lock()
	opened := p.opened
	p.opened = false
	p.mu.Unlock()

	if opened {
		speaker.Clear()
	}
}

// Stream mixes the next samples. The speaker calls it from its own goroutine.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

func (p *Player) Err() error { return nil }

// SetEnabled switches sound effects and music. Turning music off silences it at once.
func (p *Player) SetEnabled(sound, music bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.soundOn = sound
	if p.musicOn && !music {
		p.music.fadeTo(0, 0, true)
	}
	p.musicOn = music
}

// Play starts s when sound effects are on.
func (p *Player) Play(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.soundOn {
		return
	}
	streamer, err := synth(s, p.sr)
	if err != nil {
		return
	}
	p.mixer.Add(streamer)
}

// MusicOn restarts the music from the top, fading in over d.
func (p *Player) MusicOn(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.musicOn {
		return
	}
	p.melody.pos = 0
	p.music.gain = 0
	p.music.fadeTo(1, d, false)
}

// MusicOff fades the music out over d and then stops it.
func (p *Player) MusicOff(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.musicOn {
		return
	}
	p.music.fadeTo(0, d, true)
}

// MusicPause fades stopped music back in, or playing music out, over d. Music that is still
// fading out counts as playing.
func (p *Player) MusicPause(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.musicOn {
		return
	}
	if p.music.paused {
		p.music.fadeTo(1, d, false)
		return
	}
	p.music.fadeTo(0, d, true)
}

// MusicPlaying reports whether the music is audible or fading in.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music.playing()
}

// Active returns the number of streamers in the mix, the music loop included.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// Nop discards everything. It stands in for a Player in headless runs.
type Nop struct{}

func (Nop) Play(Sound)                   {}
func (Nop) MusicOn(time.Duration)        {}
func (Nop) MusicOff(time.Duration)       {}
func (Nop) MusicPause(time.Duration)     {}
func (Nop) SetEnabled(sound, music bool) {}
