// Package input is the kernel's view of the keyboard: logical actions and a
// per-tick snapshot of their state. Device polling lives with the caller.
package input

import (
	"fmt"
	"strings"
)

type Action int

const (
	TurnLeft Action = iota
	TurnRight
	Thrust
	Fire
	Pause
	Stop
	Exit
	Debug
	Colliders
	actionCount
)

var actionNames = [actionCount]string{
	TurnLeft:  "turn_left",
	TurnRight: "turn_right",
	Thrust:    "thrust",
	Fire:      "fire",
	Pause:     "pause",
	Stop:      "stop",
	Exit:      "exit",
	Debug:     "debug",
	Colliders: "colliders",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Actions lists every action.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range actionNames {
		if s == n {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action %q", name)
}

// Snapshot is the key state of one tick.
type Snapshot interface {
	IsDown(a Action) bool
	JustPressed(a Action) bool
	JustReleased(a Action) bool
}

// State is a Snapshot rebuilt once per tick with Step.
type State struct {
	down     [actionCount]bool
	pressed  [actionCount]bool
	released [actionCount]bool
}

// Step samples every action through down and derives edges from the previous
// sample.
func (s *State) Step(down func(Action) bool) {
	for a := Action(0); a < actionCount; a++ {
		prev := s.down[a]
		cur := down != nil && down(a)
		s.down[a] = cur
		s.pressed[a] = cur && !prev
		s.released[a] = !cur && prev
	}
}

func (s *State) IsDown(a Action) bool {
	return valid(a) && s.down[a]
}

func (s *State) JustPressed(a Action) bool {
	return valid(a) && s.pressed[a]
}

func (s *State) JustReleased(a Action) bool {
	return valid(a) && s.released[a]
}

// Held returns a sampler reporting exactly the given actions as down.
func Held(actions ...Action) func(Action) bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return func(a Action) bool { return set[a] }
}

func valid(a Action) bool {
	return a >= 0 && a < actionCount
}
