package runstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drainRestart(c *Controller) { c.TakeRestart() }

func TestControllerTransitions(t *testing.T) {
	tests := []struct {
		name    string
		actions []func(c *Controller)
		want    State
		restart bool
	}{
		{"starts_stopped", nil, Stopped, false},
		{"run_from_stopped_arms_restart", []func(*Controller){(*Controller).Run}, Running, true},
		{"pause_while_stopped_is_ignored", []func(*Controller){(*Controller).TogglePause}, Stopped, false},
		{"pause_toggle", []func(*Controller){(*Controller).Run, (*Controller).TogglePause}, Paused, true},
		{"unpause_does_not_restart", []func(*Controller){(*Controller).Run, drainRestart, (*Controller).TogglePause, (*Controller).TogglePause}, Running, false},
		{"stop_from_paused", []func(*Controller){(*Controller).Run, (*Controller).Pause, (*Controller).ToggleStop}, Stopped, true},
		{"exit_is_terminal", []func(*Controller){(*Controller).Run, (*Controller).Exit, (*Controller).Run, (*Controller).Stop}, Exiting, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(nil)
			for _, act := range tc.actions {
				act(c)
			}
			assert.Equal(t, tc.want, c.State())
			assert.Equal(t, tc.restart, c.TakeRestart())
			assert.False(t, c.TakeRestart())
		})
	}
}
