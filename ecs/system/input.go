package system

import (
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/input"
)

// RunGate reports whether the game is in the running state.
type RunGate interface {
	Running() bool
}

// HumanInputSystem copies the keyboard snapshot into the steering intent and
// trigger of human-controlled entities.
type HumanInputSystem struct {
	input input.Snapshot
	gate  RunGate
}

func NewHumanInputSystem(in input.Snapshot, gate RunGate) *HumanInputSystem {
	return &HumanInputSystem{input: in, gate: gate}
}

func (s *HumanInputSystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.input == nil {
		return
	}
	if s.gate != nil && !s.gate.Running() {
		return
	}

	turn := turnSign(s.input.IsDown(input.TurnLeft), s.input.IsDown(input.TurnRight))
	thrust := s.input.IsDown(input.Thrust)
	fire := s.input.IsDown(input.Fire)

	ecs.ForEach2(w, component.HumanControlComponent.Kind(), component.RotationalInputComponent.Kind(), func(e ecs.Entity, _ *component.HumanControl, ri *component.RotationalInput) {
		ri.Turn = turn
		ri.Thrusting = thrust
		if em, ok := ecs.Get(w, e, component.ProjectileEmitterComponent.Kind()); ok {
			em.IntendsToFire = fire
		}
	})
}

func turnSign(left, right bool) component.TurnSign {
	switch {
	case left && !right:
		return component.TurnLeft
	case right && !left:
		return component.TurnRight
	default:
		return component.TurnNone
	}
}
