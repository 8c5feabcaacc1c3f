package game

import (
	"time"

	"github.com/plus3/cubetris/tick"
)

// readInput applies the held keys every inputFrames frames.
func (s *Session) readInput(_ *tick.Frame) {
	if !s.running || s.frame%s.inputFrames != 0 {
		return
	}
	intents, pause := s.input.Intents()
	if pause {
		s.TogglePause()
		s.force = true
	}
	if s.engine.ApplyIntents(intents) {
		s.force = true
	}
	s.input.Next()
	s.dispatch()
}

// step lets the piece fall every stepFrames frames. A clear in progress holds the piece and
// keeps the board redrawing.
func (s *Session) step(_ *tick.Frame) {
	if !s.running {
		return
	}
	if s.clearing {
		s.force = true
		return
	}
	if s.engine.Paused() || s.frame%s.stepFrames != 0 {
		return
	}
	s.engine.Advance()
	s.force = true
	s.dispatch()
}

func (s *Session) render(_ *tick.Frame) {
	force := s.force
	s.force = false
	if !s.running {
		s.board.Update(false)
		s.preview.Update(false)
		return
	}
	s.board.Update(force)
	s.preview.Update(true)
}

func (s *Session) ageBonuses(f *tick.Frame) {
	s.bonuses.Advance(time.Duration(f.DeltaTime * float64(time.Second)))
}

// advanceClock counts frames. The count stands still while rows clear.
func (s *Session) advanceClock(_ *tick.Frame) {
	if s.running && !s.clearing {
		s.frame++
	}
}
