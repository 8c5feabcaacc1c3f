package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubetris/tick"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:   time.Second,
		Seed:       7,
		Difficulty: "Hard",
		Bricks:     "Extended",
		Systems:    []tick.SystemStats{{Name: "render", ExecutionCount: 60}},
	}
	r.recordGame(100)
	r.recordGame(300)

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Finished Games:** 2")
	assert.Contains(t, out, "**Best Score:** 300")
	assert.Contains(t, out, "**Mean Score:** 200")
	assert.Contains(t, out, "| render | 60 |")
	assert.NotContains(t, out, "GC Pause Durations")
}
