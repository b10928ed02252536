package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
	"github.com/protofarer/aion/timing"
)

func spawnGunner(t *testing.T, w *ecs.World, last time.Time) ecs.Entity {
	t.Helper()
	return spawn(t, w,
		transformAt(100, 100),
		disc(15),
		ecs.Bind(component.ProjectileEmitterComponent.Kind(), &component.ProjectileEmitter{
			ProjectileSpeed:    300,
			Cooldown:           250 * time.Millisecond,
			ProjectileDuration: 3 * time.Second,
			HitDamage:          10,
			Friendly:           true,
			IntendsToFire:      true,
			LastEmission:       last,
		}),
	)
}

func projectiles(w *ecs.World) []ecs.Entity {
	return ecs.NewQuery(w, component.ProjectileComponent.Kind()).Entities()
}

func TestEmissionCooldown(t *testing.T) {
	tests := []struct {
		name    string
		since   time.Duration
		emitted int
	}{
		{"within_cooldown", 100 * time.Millisecond, 0},
		{"exactly_cooldown", 250 * time.Millisecond, 1},
		{"past_cooldown", 260 * time.Millisecond, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			clock := timing.NewManualClock(testStart)
			spawnGunner(t, w, testStart.Add(-tc.since))
			sys := NewProjectileEmissionSystem(clock)

			sys.Update(w, 0)
			sys.Update(w, 0)
			assert.Len(t, projectiles(w), tc.emitted)
		})
	}
}

func TestEmissionSpawnsFromRim(t *testing.T) {
	w := ecs.NewWorld()
	clock := timing.NewManualClock(testStart)
	gunner := spawnGunner(t, w, time.Time{})
	NewProjectileEmissionSystem(clock).Update(w, 0)

	shots := projectiles(w)
	require.Len(t, shots, 1)
	shot := shots[0]

	assert.Equal(t, cp.Vector{X: 115, Y: 100}, transformOf(t, w, shot).Position)
	body, ok := ecs.Get(w, shot, component.RigidBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 300, Y: 0}, body.Velocity)
	assert.True(t, ecs.Has(w, shot, component.ParticleColliderComponent.Kind()))

	p, _ := ecs.Get(w, shot, component.ProjectileComponent.Kind())
	assert.Equal(t, 10, p.HitDamage)
	assert.Equal(t, 3*time.Second, p.Duration)
	assert.Equal(t, testStart, p.StartTime)
	assert.Equal(t, gunner.Ref(), p.Source)

	em, _ := ecs.Get(w, gunner, component.ProjectileEmitterComponent.Kind())
	assert.Equal(t, testStart, em.LastEmission)
	assert.Equal(t, []event.SoundCue{{Name: event.CueShot}}, ecs.Drain(w, event.SoundCueKind))
}

func TestEmissionFollowsClock(t *testing.T) {
	w := ecs.NewWorld()
	clock := timing.NewManualClock(testStart)
	spawnGunner(t, w, time.Time{})
	sys := NewProjectileEmissionSystem(clock)

	for i := 0; i < 10; i++ {
		sys.Update(w, 0)
		clock.Advance(100 * time.Millisecond)
	}
	// fires at 0, 300ms, 600ms, 900ms
	assert.Len(t, projectiles(w), 4)
}

func TestEmissionRequiresIntent(t *testing.T) {
	w := ecs.NewWorld()
	g := spawnGunner(t, w, time.Time{})
	em, _ := ecs.Get(w, g, component.ProjectileEmitterComponent.Kind())
	em.IntendsToFire = false

	NewProjectileEmissionSystem(timing.NewManualClock(testStart)).Update(w, 0)
	assert.Empty(t, projectiles(w))
}

func TestProjectileExpiry(t *testing.T) {
	w := ecs.NewWorld()
	clock := timing.NewManualClock(testStart)
	live := spawn(t, w, transformAt(0, 0), point(), ecs.Bind(component.ProjectileComponent.Kind(), &component.Projectile{Duration: time.Second, StartTime: testStart}))
	forever := spawn(t, w, transformAt(0, 0), point(), ecs.Bind(component.ProjectileComponent.Kind(), &component.Projectile{StartTime: testStart}))
	sys := NewProjectileExpirySystem(clock)

	clock.Advance(999 * time.Millisecond)
	sys.Update(w, 0)
	assert.True(t, ecs.IsAlive(w, live))

	clock.Advance(time.Millisecond)
	sys.Update(w, 0)
	assert.False(t, ecs.IsAlive(w, live))
	assert.True(t, ecs.IsAlive(w, forever))
}
