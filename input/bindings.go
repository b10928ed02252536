package input

import (
	"fmt"
	"sort"
)

// Bindings maps each action to the key names that trigger it. Key names are
// resolved by the device layer.
type Bindings map[Action][]string

// ParseBindings converts a config map of action name to key names.
func ParseBindings(raw map[string][]string) (Bindings, error) {
	out := make(Bindings, len(raw))
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		if len(raw[name]) == 0 {
			return nil, fmt.Errorf("input: action %q has no keys", name)
		}
		out[a] = append([]string(nil), raw[name]...)
	}
	return out, nil
}

// DefaultBindings mirrors the shipped game.yaml.
func DefaultBindings() Bindings {
	return Bindings{
		TurnLeft:  {"A", "ArrowLeft"},
		TurnRight: {"D", "ArrowRight"},
		Thrust:    {"W", "ArrowUp"},
		Fire:      {"Space"},
		Pause:     {"P"},
		Stop:      {"Semicolon"},
		Exit:      {"Escape"},
		Debug:     {"Backquote"},
		Colliders: {"Digit1"},
	}
}
