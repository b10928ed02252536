package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
	"github.com/protofarer/aion/timing"
)

// ProjectileEmissionSystem spawns a projectile from the rim of every disc
// whose emitter wants to fire and whose cooldown has elapsed.
type ProjectileEmissionSystem struct {
	clock timing.Clock
}

func NewProjectileEmissionSystem(clock timing.Clock) *ProjectileEmissionSystem {
	return &ProjectileEmissionSystem{clock: clock}
}

func (s *ProjectileEmissionSystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.clock == nil {
		return
	}
	now := s.clock.Now()

	ecs.ForEach3(w, component.ProjectileEmitterComponent.Kind(), component.TransformComponent.Kind(), component.CircleColliderComponent.Kind(), func(e ecs.Entity, em *component.ProjectileEmitter, tr *component.Transform, col *component.CircleCollider) {
		if !em.IntendsToFire {
			return
		}
		if !em.LastEmission.IsZero() && now.Sub(em.LastEmission) < em.Cooldown {
			return
		}

		dir := cp.ForAngle(tr.Heading)
		tint := common.ColorHostileShot
		if em.Friendly {
			tint = common.ColorFriendlyShot
		}
		_, err := ecs.Spawn(w,
			ecs.Bind(component.TransformComponent.Kind(), &component.Transform{
				Position: tr.Position.Add(dir.Mult(col.Radius)),
				Heading:  tr.Heading,
				Scale:    1,
			}),
			ecs.Bind(component.RigidBodyComponent.Kind(), &component.RigidBody{Velocity: dir.Mult(em.ProjectileSpeed)}),
			ecs.Bind(component.ParticleColliderComponent.Kind(), &component.ParticleCollider{}),
			ecs.Bind(component.ProjectileComponent.Kind(), &component.Projectile{
				HitDamage: em.HitDamage,
				Duration:  em.ProjectileDuration,
				StartTime: now,
				Source:    e.Ref(),
				Friendly:  em.Friendly,
			}),
			ecs.Bind(component.DrawBodyComponent.Kind(), &component.DrawBody{Shape: component.ShapePoint, Color: tint}),
		)
		if err != nil {
			w.Logger().Warn("emission: spawn projectile", zap.Stringer("entity", e), zap.Error(err))
			return
		}

		em.LastEmission = now
		ecs.Send(w, event.SoundCueKind, event.SoundCue{Name: event.CueShot})
	})
}
