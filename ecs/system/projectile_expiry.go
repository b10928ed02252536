package system

import (
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/timing"
)

// ProjectileExpirySystem despawns projectiles once they have lived for their
// duration. A non-positive duration never expires.
type ProjectileExpirySystem struct {
	clock timing.Clock
}

func NewProjectileExpirySystem(clock timing.Clock) *ProjectileExpirySystem {
	return &ProjectileExpirySystem{clock: clock}
}

func (s *ProjectileExpirySystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.clock == nil {
		return
	}
	now := s.clock.Now()
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		if p.Duration <= 0 {
			return
		}
		if now.Sub(p.StartTime) >= p.Duration {
			ecs.DestroyEntity(w, e)
		}
	})
}
