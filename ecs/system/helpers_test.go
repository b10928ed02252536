package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(name string) {
	p.played = append(p.played, name)
}

func spawn(t *testing.T, w *ecs.World, values ...ecs.Value) ecs.Entity {
	t.Helper()
	e, err := ecs.Spawn(w, values...)
	require.NoError(t, err)
	return e
}

func transformAt(x, y float64) ecs.Value {
	return ecs.Bind(component.TransformComponent.Kind(), &component.Transform{Position: cp.Vector{X: x, Y: y}, Scale: 1})
}

func velocity(x, y float64) ecs.Value {
	return ecs.Bind(component.RigidBodyComponent.Kind(), &component.RigidBody{Velocity: cp.Vector{X: x, Y: y}})
}

func disc(r float64) ecs.Value {
	return ecs.Bind(component.CircleColliderComponent.Kind(), &component.CircleCollider{Radius: r})
}

func point() ecs.Value {
	return ecs.Bind(component.ParticleColliderComponent.Kind(), &component.ParticleCollider{})
}

func health(hp int) ecs.Value {
	return ecs.Bind(component.HealthComponent.Kind(), &component.Health{HP: hp, Max: hp})
}

func projectile(damage int, source ecs.Entity) ecs.Value {
	return ecs.Bind(component.ProjectileComponent.Kind(), &component.Projectile{HitDamage: damage, Source: source.Ref(), StartTime: testStart})
}

func humanControl() ecs.Value {
	return ecs.Bind(component.HumanControlComponent.Kind(), &component.HumanControl{})
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok, "entity %s has no transform", e)
	return tr
}

func hpOf(t *testing.T, w *ecs.World, e ecs.Entity) int {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok, "entity %s has no health", e)
	return h.HP
}

// runSystems runs the given systems as one tick.
func runSystems(w *ecs.World, dt float64, systems ...ecs.System) {
	ecs.NewScheduler(systems...).Update(w, dt)
}
