package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateEdges(t *testing.T) {
	var s State

	s.Step(Held(Fire))
	assert.True(t, s.IsDown(Fire))
	assert.True(t, s.JustPressed(Fire))
	assert.False(t, s.JustReleased(Fire))

	s.Step(Held(Fire, Thrust))
	assert.True(t, s.IsDown(Fire))
	assert.False(t, s.JustPressed(Fire))
	assert.True(t, s.JustPressed(Thrust))

	s.Step(Held(Thrust))
	assert.False(t, s.IsDown(Fire))
	assert.True(t, s.JustReleased(Fire))
	assert.False(t, s.JustReleased(Thrust))

	s.Step(nil)
	assert.False(t, s.IsDown(Thrust))
	assert.True(t, s.JustReleased(Thrust))
	assert.False(t, s.IsDown(Action(-1)))
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("jump")
	assert.Error(t, err)
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string][]string{"fire": {"Space"}, "Turn_Left": {"A", "ArrowLeft"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Space"}, b[Fire])
	assert.Equal(t, []string{"A", "ArrowLeft"}, b[TurnLeft])

	_, err = ParseBindings(map[string][]string{"fire": nil})
	assert.Error(t, err)
	_, err = ParseBindings(map[string][]string{"dash": {"Shift"}})
	assert.Error(t, err)
}
