package component

import "time"

// ProjectileEmitter fires projectiles along the owner's heading while
// IntendsToFire is set, at most once per Cooldown. A zero LastEmission means
// the emitter has never fired.
type ProjectileEmitter struct {
	ProjectileSpeed    float64
	Cooldown           time.Duration
	ProjectileDuration time.Duration
	HitDamage          int
	Friendly           bool
	IntendsToFire      bool
	LastEmission       time.Time
}

var ProjectileEmitterComponent = NewComponent[ProjectileEmitter]()
