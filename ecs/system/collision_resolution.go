package system

import (
	"go.uber.org/zap"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
)

// CollisionResolutionSystem classifies each collision by the components the
// pair carries now. A projectile point striking a disc with health becomes a
// damage request and is consumed. Disc-disc overlaps pass through.
type CollisionResolutionSystem struct{}

func NewCollisionResolutionSystem() *CollisionResolutionSystem {
	return &CollisionResolutionSystem{}
}

func (s *CollisionResolutionSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	for _, c := range ecs.Drain(w, event.CollisionKind) {
		disc, point, ok := discAndPoint(w, c)
		if !ok {
			continue
		}
		s.resolveHit(w, disc, point)
	}
}

func (s *CollisionResolutionSystem) resolveHit(w *ecs.World, disc, point ecs.Entity) {
	if !ecs.IsAlive(w, disc) || !ecs.IsAlive(w, point) {
		return
	}
	proj, ok := ecs.Get(w, point, component.ProjectileComponent.Kind())
	if !ok || proj.Source == disc.Ref() {
		return
	}
	if !ecs.Has(w, disc, component.HealthComponent.Kind()) {
		return
	}
	if proj.Friendly && ecs.Has(w, disc, component.HumanControlComponent.Kind()) {
		return
	}

	ecs.Send(w, event.DamageKind, event.Damage{Receiver: disc, Amount: proj.HitDamage})
	ecs.DestroyEntity(w, point)
	w.Logger().Debug("collision: projectile hit",
		zap.Stringer("receiver", disc), zap.Stringer("projectile", point), zap.Int("damage", proj.HitDamage))
}

// discAndPoint orders a collision as (disc, point). It fails for disc-disc
// pairs and for pairs whose shapes changed since detection.
func discAndPoint(w *ecs.World, c event.Collision) (ecs.Entity, ecs.Entity, bool) {
	switch {
	case isDisc(w, c.A) && isPoint(w, c.B):
		return c.A, c.B, true
	case isDisc(w, c.B) && isPoint(w, c.A):
		return c.B, c.A, true
	default:
		return ecs.NoEntity, ecs.NoEntity, false
	}
}

func isDisc(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.CircleColliderComponent.Kind())
}

func isPoint(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.ParticleColliderComponent.Kind()) && !isDisc(w, e)
}
