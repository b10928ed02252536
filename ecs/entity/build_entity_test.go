package entity

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/prefabs"
)

// usePrefabDir points prefab disk lookups at dir, writing the given files.
func usePrefabDir(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
}

func TestBuildShip(t *testing.T) {
	usePrefabDir(t, nil)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "ship")
	require.NoError(t, err)

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 480.0, tr.Position.X)
	assert.Equal(t, 1.0, tr.Scale)

	mv, ok := ecs.Get(w, e, component.MoveAttributesComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 500.0, mv.Speed)
	assert.Equal(t, 12.0, mv.TurnRate)

	em, ok := ecs.Get(w, e, component.ProjectileEmitterComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, em.Cooldown)
	assert.True(t, em.Friendly)
	assert.True(t, em.LastEmission.IsZero())

	hp, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, hp.HP, hp.Max)

	db, ok := ecs.Get(w, e, component.DrawBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.ShapeShip, db.Shape)
	assert.Equal(t, 15.0, db.Radius, "radius falls back to the collider")

	assert.True(t, ecs.Has(w, e, component.HumanControlComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.RotationalInputComponent.Kind()))
}

func TestBuildEntityWithOverrides(t *testing.T) {
	usePrefabDir(t, nil)
	w := ecs.NewWorld()

	e, err := BuildEntityWith(w, "circloid.yaml", map[string]any{
		"transform":       map[string]any{"x": 10.0, "y": 20.0},
		"circle_collider": map[string]any{"radius": 40.0},
	})
	require.NoError(t, err)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 10.0, tr.Position.X)
	assert.Equal(t, 20.0, tr.Position.Y)
	cc, _ := ecs.Get(w, e, component.CircleColliderComponent.Kind())
	assert.Equal(t, 40.0, cc.Radius)
}

func TestBuildEntityErrors(t *testing.T) {
	usePrefabDir(t, map[string]string{
		"bad_component.yaml": "name: x\ncomponents:\n  teleporter: {}\n",
		"bad_radius.yaml":    "name: x\ncomponents:\n  transform: {}\n  circle_collider:\n    radius: 0\n",
		"bad_shape.yaml":     "name: x\ncomponents:\n  draw_body:\n    shape: hexagon\n",
		"empty.yaml":         "name: x\n",
		"zero_hp.yaml":       "name: x\ncomponents:\n  health:\n    hp: 0\n",
		"both.yaml":          "name: x\ncomponents:\n  transform: {}\n  circle_collider:\n    radius: 5\n  particle_collider: {}\n",
	})

	cases := []struct {
		name   string
		prefab string
	}{
		{"missing", "nope"},
		{"unknown_component", "bad_component"},
		{"bad_radius", "bad_radius"},
		{"bad_shape", "bad_shape"},
		{"empty", "empty"},
		{"zero_hp", "zero_hp"},
		{"both_colliders", "both"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntity(w, c.prefab)
			assert.Error(t, err)
			assert.Zero(t, ecs.Count(w), "failed builds leave nothing behind")
		})
	}

	_, err := BuildEntity(ecs.NewWorld(), "bad_component")
	assert.ErrorIs(t, err, ErrUnknownComponent)
	_, err = BuildEntity(ecs.NewWorld(), "both")
	assert.ErrorIs(t, err, ErrConflictingCollider)
}

func TestBuildEntityOverrideCannotAddSecondCollider(t *testing.T) {
	usePrefabDir(t, nil)
	w := ecs.NewWorld()

	_, err := BuildEntityWith(w, "particle", map[string]any{
		"circle_collider": map[string]any{"radius": 4.0},
	})
	assert.ErrorIs(t, err, ErrConflictingCollider)
	assert.Zero(t, ecs.Count(w))
}

func TestEveryRegisteredComponentHasABuildSlot(t *testing.T) {
	inOrder := map[string]bool{}
	for _, name := range componentBuildOrder {
		inOrder[name] = true
	}
	for name := range componentRegistry {
		assert.True(t, inOrder[name], "%s missing from build order", name)
	}
	assert.Len(t, componentBuildOrder, len(componentRegistry))
}

func TestPlayerAbsent(t *testing.T) {
	_, ok := Player(ecs.NewWorld())
	assert.False(t, ok)
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)

	require.NoError(t, SetEntityTransform(w, e, 3, 4, 1))
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 3.0, tr.Position.X)
	assert.Equal(t, 4.0, tr.Position.Y)
	assert.Equal(t, 1.0, tr.Heading)
	assert.Equal(t, 1.0, tr.Scale)
}

func TestLoadShootingGallery(t *testing.T) {
	usePrefabDir(t, nil)
	w := ecs.NewWorld()

	sc, err := LoadScenario(w, "shootingallery", common.ArenaBounds(960, 540), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Len(t, sc.Entities, ecs.Count(w))

	player, ok := sc.IDs["player"]
	require.True(t, ok)
	assert.True(t, ecs.Has(w, player, component.HumanControlComponent.Kind()))
	found, ok := Player(w)
	require.True(t, ok)
	assert.Equal(t, player, found)

	hub := sc.IDs["hub"]
	cc, _ := ecs.Get(w, hub, component.CircleColliderComponent.Kind())
	assert.Equal(t, 35.0, cc.Radius)
	hubTr, _ := ecs.Get(w, hub, component.TransformComponent.Kind())

	var orbiters int
	ecs.ForEach2(w, component.OrbitParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, o *component.OrbitParticle, tr *component.Transform) {
		orbiters++
		assert.Equal(t, hub.Ref(), o.Parent)
		assert.InDelta(t, 70.0, tr.Position.Distance(hubTr.Position), 1e-6)
	})
	assert.Equal(t, 2, orbiters)

	var scripted int
	ecs.ForEach(w, component.ScriptControlComponent.Kind(), func(_ ecs.Entity, ctl *component.ScriptControl) {
		scripted++
		assert.Equal(t, "drone.tengo", ctl.Script)
	})
	assert.Equal(t, 2, scripted)
}

func TestLoadSandboxRandomStaysInBounds(t *testing.T) {
	usePrefabDir(t, nil)
	w := ecs.NewWorld()
	bounds := common.ArenaBounds(960, 540)

	sc, err := LoadScenario(w, "sandbox", bounds, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	var discs, points int
	ecs.ForEach2(w, component.CircleColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.CircleCollider, tr *component.Transform) {
		if ecs.Has(w, e, component.HumanControlComponent.Kind()) {
			return
		}
		discs++
		assert.GreaterOrEqual(t, tr.Position.X, 40.0)
		assert.LessOrEqual(t, tr.Position.X, 920.0)
		assert.GreaterOrEqual(t, tr.Position.Y, 40.0)
		assert.LessOrEqual(t, tr.Position.Y, 500.0)

		rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		require.True(t, ok)
		speed := rb.Velocity.Length()
		assert.GreaterOrEqual(t, speed, 20.0-1e-9)
		assert.LessOrEqual(t, speed, 80.0+1e-9)
	})
	ecs.ForEach(w, component.ParticleColliderComponent.Kind(), func(_ ecs.Entity, _ *component.ParticleCollider) {
		points++
	})
	assert.Equal(t, 6, discs)
	assert.Equal(t, 8, points)
	assert.Len(t, sc.Entities, 15)
}

func TestLoadScenarioErrors(t *testing.T) {
	usePrefabDir(t, map[string]string{
		"scenarios/dup.yaml":    "entities:\n  - {id: a, prefab: circloid}\n  - {id: a, prefab: circloid}\n",
		"scenarios/orphan.yaml": "entities:\n  - {prefab: orbiter, attach_to: ghost}\n",
		"scenarios/notorb.yaml": "entities:\n  - {id: a, prefab: circloid}\n  - {prefab: circloid, attach_to: a}\n",
		"scenarios/badfab.yaml": "entities:\n  - {prefab: circloid}\n  - {prefab: nope}\n",
	})

	cases := []struct {
		name     string
		scenario string
		target   error
	}{
		{"duplicate_id", "dup", ErrDuplicatePlacement},
		{"unknown_parent", "orphan", ErrUnknownPlacement},
		{"not_an_orbiter", "notorb", ErrNotOrbiter},
		{"missing_prefab", "badfab", nil},
		{"missing_scenario", "nowhere", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := LoadScenario(w, c.scenario, common.ArenaBounds(960, 540), nil)
			require.Error(t, err)
			if c.target != nil {
				assert.ErrorIs(t, err, c.target)
			}
			assert.Zero(t, ecs.Count(w))
		})
	}
}
