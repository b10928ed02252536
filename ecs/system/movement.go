package system

import (
	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

// MovementSystem turns steering intent into motion. Thrust is an
// instantaneous velocity set along the heading, not an acceleration.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.RotationalInputComponent.Kind(), component.MoveAttributesComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ri *component.RotationalInput, attrs *component.MoveAttributes, tr *component.Transform) {
		if rb, ok := ecs.Get(w, e, component.RotatableBodyComponent.Kind()); ok {
			rb.RotationRate = float64(ri.Turn) * attrs.TurnRate
		}
		if body, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
			if ri.Thrusting {
				body.Velocity = cp.ForAngle(tr.Heading).Mult(attrs.Speed)
			} else {
				body.Velocity = cp.Vector{}
			}
		}
	})
}
