package game

import "time"

// Bonus timings: a new line opens, fades in, holds, then fades out slowly.
const (
	bonusOpen    = 400 * time.Millisecond
	bonusFadeIn  = 400 * time.Millisecond
	bonusHold    = time.Second
	bonusFadeOut = 10 * time.Second
)

// Bonus is one achievement line.
type Bonus struct {
	Label  string
	Points int
	Age    time.Duration
}

// Opacity is the line's visibility between 0 and 1 at its current age.
func (b Bonus) Opacity() float64 {
	t := b.Age - bonusOpen
	switch {
	case t < 0:
		return 0
	case t < bonusFadeIn:
		return float64(t) / float64(bonusFadeIn)
	}
	t -= bonusFadeIn + bonusHold
	if t < 0 {
		return 1
	}
	return max(0, 1-float64(t)/float64(bonusFadeOut))
}

func (b Bonus) expired() bool {
	return b.Age >= bonusOpen+bonusFadeIn+bonusHold+bonusFadeOut
}

// Bonuses keeps the most recent achievement lines, newest first.
type Bonuses struct {
	limit int
	lines []Bonus
}

// NewBonuses keeps at most limit lines. A non-positive limit keeps one.
func NewBonuses(limit int) *Bonuses {
	return &Bonuses{limit: max(limit, 1)}
}

// Add puts a new line on top, dropping the oldest when full.
func (b *Bonuses) Add(label string, points int) {
	b.lines = append([]Bonus{{Label: label, Points: points}}, b.lines...)
	if len(b.lines) > b.limit {
		b.lines = b.lines[:b.limit]
	}
}

// Advance ages every line by d and forgets lines that have faded out.
func (b *Bonuses) Advance(d time.Duration) {
	kept := b.lines[:0]
	for _, l := range b.lines {
		l.Age += d
		if !l.expired() {
			kept = append(kept, l)
		}
	}
	b.lines = kept
}

// Lines returns a copy of the current lines, newest first.
func (b *Bonuses) Lines() []Bonus {
	return append([]Bonus(nil), b.lines...)
}
