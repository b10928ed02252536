package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/protofarer/aion/input"
)

// keyboard polls ebiten once per tick into an input.State.
type keyboard struct {
	state   input.State
	keys    map[input.Action][]ebiten.Key
	pressed []ebiten.Key
}

func newKeyboard(bindings input.Bindings) (*keyboard, error) {
	kb := &keyboard{keys: make(map[input.Action][]ebiten.Key, len(bindings))}
	for action, names := range bindings {
		for _, name := range names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("bind %s: key %q: %w", action, name, err)
			}
			kb.keys[action] = append(kb.keys[action], k)
		}
	}
	return kb, nil
}

func (kb *keyboard) Poll() {
	kb.pressed = inpututil.AppendPressedKeys(kb.pressed[:0])
	kb.state.Step(kb.isDown)
}

func (kb *keyboard) isDown(a input.Action) bool {
	for _, want := range kb.keys[a] {
		for _, k := range kb.pressed {
			if k == want {
				return true
			}
		}
	}
	return false
}

func (kb *keyboard) Snapshot() input.Snapshot {
	return &kb.state
}

// bindingsFor overlays configured keys on the defaults.
func bindingsFor(raw map[string][]string) (input.Bindings, error) {
	bindings := input.DefaultBindings()
	if len(raw) == 0 {
		return bindings, nil
	}
	custom, err := input.ParseBindings(raw)
	if err != nil {
		return nil, err
	}
	for action, keys := range custom {
		bindings[action] = keys
	}
	return bindings, nil
}
