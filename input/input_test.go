package input_test

import (
	"testing"

	"github.com/plus3/cubetris/engine"
	"github.com/plus3/cubetris/input"
	"github.com/stretchr/testify/assert"
)

func TestRepeatingKeysFollowHoldState(t *testing.T) {
	tr := input.NewTracker()

	tr.Press(input.KeyLeft)
	tr.Press(input.KeyLeft)
	assert.Equal(t, 1, tr.Count(input.KeyLeft), "auto-repeat is ignored while held")

	tr.Next()
	assert.Equal(t, 1, tr.Count(input.KeyLeft), "held keys survive a batch")
	assert.True(t, tr.HasKeys())

	tr.Release(input.KeyLeft)
	assert.Zero(t, tr.Count(input.KeyLeft))
	assert.False(t, tr.HasKeys())

	tr.Release(input.KeyLeft)
	assert.Zero(t, tr.Count(input.KeyLeft), "counts never go negative")
}

func TestOneShotKeysAreConsumedByNext(t *testing.T) {
	tr := input.NewTracker()

	tr.Press(input.KeyRotate)
	tr.Release(input.KeyRotate)
	tr.Press(input.KeyRotate)
	tr.Release(input.KeyRotate)
	assert.Equal(t, 2, tr.Count(input.KeyRotate), "release does not undo a one-shot press")

	tr.Next()
	assert.Equal(t, 1, tr.Count(input.KeyRotate))
	tr.Next()
	tr.Next()
	assert.Zero(t, tr.Count(input.KeyRotate))
}

func TestIntents(t *testing.T) {
	tr := input.NewTracker()
	in, pause := tr.Intents()
	assert.False(t, in.Any())
	assert.False(t, pause)

	tr.Press(input.KeyDown)
	tr.Press(input.KeyRight)
	tr.Press(input.KeyPause)

	in, pause = tr.Intents()
	assert.Equal(t, engine.Intents{MoveRight: 1, SoftDrop: 1}, in)
	assert.True(t, pause)

	tr.Next()
	_, pause = tr.Intents()
	assert.False(t, pause)
	assert.True(t, tr.Down(input.KeyPause), "still physically held")
}

func TestResetAndUnknownKeys(t *testing.T) {
	tr := input.NewTracker()
	tr.Press(input.Key(42))
	tr.Release(input.Key(-1))
	assert.False(t, tr.HasKeys())
	assert.Zero(t, tr.Count(input.Key(42)))
	assert.Equal(t, "unknown", input.Key(42).String())

	tr.Press(input.KeyDown)
	tr.Reset()
	assert.False(t, tr.HasKeys())
	assert.False(t, tr.Down(input.KeyDown))

	tr.Press(input.KeyDown)
	assert.Equal(t, 1, tr.Count(input.KeyDown), "reset clears the held flag too")
}

func TestKeyNames(t *testing.T) {
	for k, name := range map[input.Key]string{
		input.KeyRotate: "rotate",
		input.KeyLeft:   "left",
		input.KeyRight:  "right",
		input.KeyDown:   "down",
		input.KeyPause:  "pause",
	} {
		assert.Equal(t, name, k.String())
	}
	assert.False(t, input.KeyRotate.Repeats())
	assert.False(t, input.KeyPause.Repeats())
	assert.True(t, input.KeyDown.Repeats())
}
