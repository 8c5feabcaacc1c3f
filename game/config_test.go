package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCounts(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.inputFrames())
	assert.Equal(t, 40, cfg.stepFrames(100))
	assert.Equal(t, 1, cfg.stepFrames(0), "never below one frame")

	cfg.KeysPerSecond = 1000
	assert.Equal(t, 1, cfg.inputFrames())
}
