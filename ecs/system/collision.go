package system

import (
	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
)

type discShape struct {
	e      ecs.Entity
	pos    cp.Vector
	radius float64
}

type pointShape struct {
	e   ecs.Entity
	pos cp.Vector
}

// CollisionDetectionSystem reports overlapping disc-disc and disc-point
// pairs. Points never collide with points.
type CollisionDetectionSystem struct {
	discs  []discShape
	points []pointShape
}

func NewCollisionDetectionSystem() *CollisionDetectionSystem {
	return &CollisionDetectionSystem{}
}

func (s *CollisionDetectionSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	s.snapshot(w)

	for i := 0; i < len(s.discs); i++ {
		for j := i + 1; j < len(s.discs); j++ {
			if discsOverlap(s.discs[i], s.discs[j]) {
				ecs.Send(w, event.CollisionKind, event.Collision{A: s.discs[i].e, B: s.discs[j].e})
			}
		}
	}
	for _, d := range s.discs {
		for _, p := range s.points {
			if discContains(d, p) {
				ecs.Send(w, event.CollisionKind, event.Collision{A: d.e, B: p.e})
			}
		}
	}
}

// snapshot copies collider geometry so sending events never touches the
// stores being read.
func (s *CollisionDetectionSystem) snapshot(w *ecs.World) {
	s.discs = s.discs[:0]
	s.points = s.points[:0]

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.CircleColliderComponent.Kind(), func(e ecs.Entity, tr *component.Transform, col *component.CircleCollider) {
		s.discs = append(s.discs, discShape{e: e, pos: tr.Position, radius: col.Radius})
	})

	ecs.NewQuery(w, component.TransformComponent.Kind(), component.ParticleColliderComponent.Kind()).
		Without(component.CircleColliderComponent.Kind()).
		Each(func(e ecs.Entity) {
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			s.points = append(s.points, pointShape{e: e, pos: tr.Position})
		})
}

// discsOverlap is strict: tangent discs do not collide.
func discsOverlap(a, b discShape) bool {
	return a.pos.Distance(b.pos) < a.radius+b.radius
}

// discContains is closed: a point on the rim collides.
func discContains(d discShape, p pointShape) bool {
	return d.pos.Distance(p.pos) <= d.radius
}
