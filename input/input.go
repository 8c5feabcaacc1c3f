// Package input turns key presses and releases into the held counts the game reads once per
// input batch.
package input

import "github.com/plus3/cubetris/engine"

// Key is a game control.
type Key int

const (
	KeyRotate Key = iota
	KeyLeft
	KeyRight
	KeyDown
	KeyPause
	keyCount
)

var keyNames = [keyCount]string{"rotate", "left", "right", "down", "pause"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Repeats reports whether the key acts for as long as it is held. Other keys act once per
// press.
func (k Key) Repeats() bool {
	return k == KeyLeft || k == KeyRight || k == KeyDown
}

// Tracker counts key activity between batches. A repeating key keeps a held count that
// release takes back; a one-shot key is counted on press and consumed by Next.
type Tracker struct {
	counts [keyCount]int
	down   [keyCount]bool
}

// NewTracker returns a tracker with no keys down.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Press records a key going down. Auto-repeat presses of a key that is already down are
// ignored.
func (t *Tracker) Press(k Key) {
	if !valid(k) || t.down[k] {
		return
	}
	t.down[k] = true
	t.counts[k]++
}

// Release records a key going up.
func (t *Tracker) Release(k Key) {
	if !valid(k) || !t.down[k] {
		return
	}
	t.down[k] = false
	if k.Repeats() {
		t.counts[k] = max(0, t.counts[k]-1)
	}
}

// Next marks the current batch as processed: one press of every one-shot key is consumed.
func (t *Tracker) Next() {
	for k := range keyCount {
		if !k.Repeats() {
			t.counts[k] = max(0, t.counts[k]-1)
		}
	}
}

// Reset forgets every count and held key.
func (t *Tracker) Reset() {
	t.counts = [keyCount]int{}
	t.down = [keyCount]bool{}
}

// Count returns the current magnitude of k.
func (t *Tracker) Count(k Key) int {
	if !valid(k) {
		return 0
	}
	return t.counts[k]
}

// Down reports whether k is physically held.
func (t *Tracker) Down(k Key) bool {
	return valid(k) && t.down[k]
}

// HasKeys reports whether any key has a positive magnitude.
func (t *Tracker) HasKeys() bool {
	for _, c := range t.counts {
		if c > 0 {
			return true
		}
	}
	return false
}

// Intents returns the movement intents of the current batch and whether pause was pressed.
func (t *Tracker) Intents() (engine.Intents, bool) {
	return engine.Intents{
		MoveLeft:  t.counts[KeyLeft],
		MoveRight: t.counts[KeyRight],
		SoftDrop:  t.counts[KeyDown],
		Rotate:    t.counts[KeyRotate],
	}, t.counts[KeyPause] > 0
}

func valid(k Key) bool {
	return k >= 0 && k < keyCount
}
