package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/palette"
	"github.com/plus3/cubetris/render"
	"github.com/plus3/cubetris/settings"
)

// ErrInvalidConfig is returned by New for unusable timing values.
var ErrInvalidConfig = errors.New("game: invalid configuration")

// Config holds the static game constants.
type Config struct {
	// FramesPerSecond is the tick rate. StepsPerSecond is how often the piece falls at 100%
	// difficulty and KeysPerSecond how often held keys are read.
	FramesPerSecond int
	StepsPerSecond  float64
	KeysPerSecond   float64

	Engine   engine.Config
	Palette  palette.Config
	Theme    render.Theme
	Settings []settings.Setting

	// BonusLines caps how many achievement lines are kept for display.
	BonusLines int

	MusicFadeIn    time.Duration
	MusicFadeOut   time.Duration
	MusicAbortFade time.Duration
	PauseFade      time.Duration
}

// DefaultConfig returns the standard game.
func DefaultConfig() Config {
	return Config{
		FramesPerSecond: 60,
		StepsPerSecond:  1.5,
		KeysPerSecond:   13,
		Engine: engine.Config{
			Width:     12,
			Height:    22,
			PieceSize: 5,
			Pieces:    engine.DefaultPieces(),
		},
		Palette:        palette.DefaultConfig(),
		Theme:          render.DefaultTheme(),
		Settings:       settings.DefaultCatalog(),
		BonusLines:     5,
		MusicFadeIn:    5 * time.Second,
		MusicFadeOut:   time.Second,
		MusicAbortFade: 3 * time.Second,
		PauseFade:      time.Second,
	}
}

func (c Config) validate() error {
	if c.FramesPerSecond <= 0 {
		return fmt.Errorf("%w: %d frames per second", ErrInvalidConfig, c.FramesPerSecond)
	}
	if c.StepsPerSecond <= 0 || c.KeysPerSecond <= 0 {
		return fmt.Errorf("%w: %g steps and %g key reads per second", ErrInvalidConfig, c.StepsPerSecond, c.KeysPerSecond)
	}
	return nil
}

// stepFrames is the number of frames between two falls at the given difficulty percentage.
func (c Config) stepFrames(difficulty int) int {
	n := int(math.Round(float64(c.FramesPerSecond) / c.StepsPerSecond * float64(difficulty) / 100))
	return max(n, 1)
}

// inputFrames is the number of frames between two input reads.
func (c Config) inputFrames() int {
	n := int(math.Round(float64(c.FramesPerSecond) / c.KeysPerSecond))
	return max(n, 1)
}
