package component

import "time"

type Projectile struct {
	HitDamage int
	Duration  time.Duration
	StartTime time.Time
	// Source is the emitting entity; a projectile never damages it.
	Source   uint64
	Friendly bool
}

var ProjectileComponent = NewComponent[Projectile]()
