package system

import (
	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

type RotationIntegrationSystem struct{}

func NewRotationIntegrationSystem() *RotationIntegrationSystem {
	return &RotationIntegrationSystem{}
}

func (s *RotationIntegrationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RotatableBodyComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, rb *component.RotatableBody) {
		tr.Heading = common.NormalizeAngle(tr.Heading + rb.RotationRate*dt)
	})
}

type TranslationIntegrationSystem struct{}

func NewTranslationIntegrationSystem() *TranslationIntegrationSystem {
	return &TranslationIntegrationSystem{}
}

func (s *TranslationIntegrationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RigidBodyComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, body *component.RigidBody) {
		tr.Position = tr.Position.Add(body.Velocity.Mult(dt))
	})
}

// OrbitIntegrationSystem advances orbit angles and pins attached orbiters to
// their parent. Parent positions are read before any orbiter moves, so
// chained orbiters follow where their parent was at the start of the pass.
type OrbitIntegrationSystem struct{}

func NewOrbitIntegrationSystem() *OrbitIntegrationSystem {
	return &OrbitIntegrationSystem{}
}

func (s *OrbitIntegrationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	anchors := make(map[uint64]cp.Vector)
	ecs.ForEach(w, component.OrbitParticleComponent.Kind(), func(_ ecs.Entity, orb *component.OrbitParticle) {
		if orb.Parent == 0 {
			return
		}
		if _, seen := anchors[orb.Parent]; seen {
			return
		}
		if tr, ok := ecs.Get(w, ecs.Entity(orb.Parent), component.TransformComponent.Kind()); ok {
			anchors[orb.Parent] = tr.Position
		}
	})

	ecs.ForEach2(w, component.OrbitParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, orb *component.OrbitParticle, tr *component.Transform) {
		if orb.Radius > 0 {
			orb.Angle = common.NormalizeAngle(orb.Angle + orb.Speed/orb.Radius*dt)
		}
		if orb.Parent == 0 {
			return
		}
		anchor, ok := anchors[orb.Parent]
		if !ok {
			orb.Parent = 0
			return
		}
		tr.Position = anchor.Add(cp.ForAngle(orb.Angle).Mult(orb.Radius))
	})
}
