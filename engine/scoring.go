package engine

import (
	"fmt"
	"math"
)

// Streak counts consecutive touchdowns that cleared at least one row, and the points they won.
type Streak struct {
	Count int
	Sum   int
}

type speedTier struct {
	name      string
	threshold float64
	target    int
	decay     int
	points    int
}

// speedTiers is ordered slowest first; the slice index doubles as the counter index.
var speedTiers = [...]speedTier{
	{name: "Speedy", threshold: 0.55, target: 10, decay: 1, points: 50},
	{name: "Supersonic", threshold: 0.70, target: 20, decay: 2, points: 500},
	{name: "Lightspeed", threshold: 0.85, target: 30, decay: 3, points: 5000},
}

// SpeedCounts holds the hysteresis counter of every speed tier, slowest first.
type SpeedCounts [len(speedTiers)]int

// SpeedTierNames lists the speed bonus labels in SpeedCounts order.
func SpeedTierNames() []string {
	names := make([]string, len(speedTiers))
	for i, t := range speedTiers {
		names[i] = t.name
	}
	return names
}

var rowLabels = [...]string{"", "Single row", "Double row", "Triple row", "Quadruple row"}

func rowLabel(rows int) string {
	if rows < len(rowLabels) {
		return rowLabels[rows]
	}
	return fmt.Sprintf("%d rows", rows)
}

// scale applies the difficulty transform to raw points.
func (e *Engine) scale(points int) int {
	d := e.settings.Difficulty()
	if d <= 0 {
		d = 100
	}
	return int(math.Round(float64(points) * 100 / float64(d)))
}

func (e *Engine) achievement(points int, label string) {
	p := e.scale(points)
	e.score += p
	e.streak.Sum += p
	e.events = append(e.events, Event{Kind: EventAchievement, Points: p, Label: label})
}

// dropSpeed is the share of descended rows that came from soft drops.
func dropSpeed(fastDrops, descended int) float64 {
	if descended <= 0 {
		if fastDrops > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return float64(fastDrops) / float64(descended)
}

// accountSpeed runs the tiers fastest first and stops at the first one that pays out.
func (e *Engine) accountSpeed() {
	speed := dropSpeed(e.fastDrops, e.pos.Y-e.pos.StartY-1)
	for i := len(speedTiers) - 1; i >= 0; i-- {
		if e.countSpeed(i, speed) {
			return
		}
	}
}

func (e *Engine) countSpeed(i int, speed float64) bool {
	tier := speedTiers[i]
	delta := -tier.decay
	if speed > tier.threshold {
		delta = 1
	}
	e.speed[i] = max(0, e.speed[i]+delta)
	if e.speed[i] <= tier.target {
		return false
	}
	e.achievement(tier.points, tier.name)
	for j := i; j >= 0; j-- {
		e.speed[j] = 0
	}
	return true
}
