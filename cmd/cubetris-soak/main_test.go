package main

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubetris/game"
	"github.com/plus3/cubetris/render/raster"
)

func newSoakSession(t *testing.T) *game.Session {
	t.Helper()
	board, err := raster.New(120, 220)
	require.NoError(t, err)
	t.Cleanup(func() { board.Close() })
	preview, err := raster.New(60, 60)
	require.NoError(t, err)
	t.Cleanup(func() { preview.Close() })

	session, err := game.New(game.DefaultConfig(), board, preview, game.WithRand(rand.New(rand.NewPCG(1, 1))))
	require.NoError(t, err)
	session.Resize(120, 220, 60, 60)
	return session
}

func TestDriverStartsAndTicks(t *testing.T) {
	session := newSoakSession(t)
	pilot := &autopilot{rng: rand.New(rand.NewPCG(2, 2)), tracker: session.Input()}
	report := &Report{}

	d := driver(session, pilot, report, 1.0/60)
	for range 120 {
		d.Once(0)
	}

	assert.True(t, session.Running())
	assert.EqualValues(t, 120, report.TotalFrames)
	assert.Len(t, report.TickTime.Samples, 120)
	assert.EqualValues(t, 120, session.Scheduler().Stats().Frames)

	stats := d.Stats()
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "pilot", stats.Systems[0].Name)
	assert.Equal(t, "session", stats.Systems[1].Name)
}

func TestDriverPacedRun(t *testing.T) {
	session := newSoakSession(t)
	pilot := &autopilot{rng: rand.New(rand.NewPCG(3, 3)), tracker: session.Input()}
	report := &Report{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	driver(session, pilot, report, 1.0/60).Run(ctx, 5*time.Millisecond)

	assert.Positive(t, report.TotalFrames)
	assert.Less(t, report.TotalFrames, int64(21), "frames follow the ticker")
	assert.True(t, session.Running())
}
