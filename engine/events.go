package engine

import "fmt"

// EventKind tells which fields of an Event are meaningful.
type EventKind int

const (
	// EventCue carries a Cue for the sound collaborator.
	EventCue EventKind = iota
	// EventAchievement carries already scaled Points and a Label.
	EventAchievement
	// EventTouchdown is emitted after a safe touchdown. Clearing reports whether rows are
	// waiting for compaction.
	EventTouchdown
)

// Cue names a sound-worthy moment.
type Cue int

const (
	CueRotate Cue = iota
	CueSoftDrop
	CueTouchdown
	CueClear
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueRotate:
		return "rotate"
	case CueSoftDrop:
		return "down"
	case CueTouchdown:
		return "touchdown"
	case CueClear:
		return "blowup"
	case CueGameOver:
		return "gameover"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Event is one side effect produced by the engine, queued until Events drains it.
type Event struct {
	Kind     EventKind
	Cue      Cue
	Points   int
	Label    string
	Clearing bool
}

func (e *Engine) cue(c Cue) {
	e.events = append(e.events, Event{Kind: EventCue, Cue: c})
}

// Events returns the queued events in emission order and empties the queue.
func (e *Engine) Events() []Event {
	out := e.events
	e.events = nil
	return out
}
