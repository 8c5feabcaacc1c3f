package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/input"
	"github.com/plus3/cubetris/tick"
)

// Cell glyphs used by BoardLines.
const (
	glyphEmpty    = '.'
	glyphPile     = '#'
	glyphPiece    = '@'
	glyphClearing = '='
)

// BoardLines draws a snapshot as text, one string per board row from the top. Rows waiting
// for compaction show their filled cells as '='.
func BoardLines(snap engine.Snapshot) []string {
	w, h := snap.Board.Width(), snap.Board.Height()
	lines := make([]string, 0, h)
	var sb strings.Builder
	for y := range h {
		sb.Reset()
		for x := range w {
			switch {
			case !snap.GameOver && snap.ActiveAt(x, y):
				sb.WriteByte(glyphPiece)
			case snap.Board.Occupied(x, y) && snap.Clearing(y):
				sb.WriteByte(glyphClearing)
			case snap.Board.Occupied(x, y):
				sb.WriteByte(glyphPile)
			default:
				sb.WriteByte(glyphEmpty)
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Millis formats d as milliseconds with microsecond precision.
func Millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000.0)
}

// SystemRow is one line of the scheduler table.
type SystemRow struct {
	Name                string
	Runs                string
	Last, Avg, Min, Max string
}

// SystemRows formats the per-system timings in execution order.
func SystemRows(stats *tick.SchedulerStats) []SystemRow {
	rows := make([]SystemRow, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		rows = append(rows, SystemRow{
			Name: s.Name,
			Runs: fmt.Sprintf("%d", s.ExecutionCount),
			Last: Millis(s.LastDuration),
			Avg:  Millis(s.AvgDuration),
			Min:  Millis(s.MinDuration),
			Max:  Millis(s.MaxDuration),
		})
	}
	return rows
}

var keys = []input.Key{input.KeyRotate, input.KeyLeft, input.KeyRight, input.KeyDown, input.KeyPause}

// KeyLine lists every key with its pending count, marking held keys with '*'.
func KeyLine(t *input.Tracker) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		mark := ""
		if t.Down(k) {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s%s=%d", k, mark, t.Count(k)))
	}
	return strings.Join(parts, " ")
}

// SpeedLine lists the speed bonus counters by tier name.
func SpeedLine(counts engine.SpeedCounts) string {
	names := engine.SpeedTierNames()
	parts := make([]string, 0, len(names))
	for i, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[i]))
	}
	return strings.Join(parts, ", ")
}
