package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/prefabs"
)

var (
	ErrUnknownComponent    = errors.New("entity: unknown component")
	ErrConflictingCollider = errors.New("entity: circle_collider and particle_collider are exclusive")
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":          addTransform,
	"rigid_body":         addRigidBody,
	"rotatable_body":     addRotatableBody,
	"rotational_input":   addRotationalInput,
	"move_attributes":    addMoveAttributes,
	"human_control":      addHumanControl,
	"script_control":     addScriptControl,
	"circle_collider":    addCircleCollider,
	"particle_collider":  addParticleCollider,
	"health":             addHealth,
	"projectile_emitter": addProjectileEmitter,
	"orbit_particle":     addOrbitParticle,
	"animation":          addAnimation,
	"draw_body":          addDrawBody,
}

// draw_body reads circle_collider for its default radius, so colliders go
// first.
var componentBuildOrder = []string{
	"transform",
	"rigid_body",
	"rotatable_body",
	"rotational_input",
	"move_attributes",
	"human_control",
	"script_control",
	"circle_collider",
	"particle_collider",
	"health",
	"projectile_emitter",
	"orbit_particle",
	"animation",
	"draw_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, nil)
}

// BuildEntityWith builds a prefab with component blocks from overrides merged
// over the prefab's own.
func BuildEntityWith(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabFile(prefabPath))
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	components := prefabs.MergeComponents(spec.Components, overrides)
	if len(components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: %w %q", prefabPath, ErrUnknownComponent, name)
		}
	}
	_, disc := components["circle_collider"]
	_, point := components["particle_collider"]
	if disc && point {
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, ErrConflictingCollider)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	// componentBuildOrder names every registry entry.
	for _, name := range componentBuildOrder {
		raw, ok := components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform places e, adding a unit-scale Transform when it has none.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, heading float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{Scale: 1}
	}
	t.Position = cp.Vector{X: x, Y: y}
	t.Heading = heading
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func prefabFile(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale == 0 {
		spec.Scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: cp.Vector{X: spec.X, Y: spec.Y},
		Heading:  spec.Heading,
		Scale:    spec.Scale,
	})
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Velocity: cp.Vector{X: spec.VX, Y: spec.VY},
	})
}

type rotatableBodySpec = prefabs.RotatableBodyComponentSpec

func addRotatableBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rotatableBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rotatable_body spec: %w", err)
	}
	return ecs.Add(w, e, component.RotatableBodyComponent.Kind(), &component.RotatableBody{RotationRate: spec.RotationRate})
}

func addRotationalInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RotationalInputComponent.Kind(), &component.RotationalInput{})
}

type moveAttributesSpec = prefabs.MoveAttributesComponentSpec

func addMoveAttributes(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[moveAttributesSpec](raw)
	if err != nil {
		return fmt.Errorf("decode move_attributes spec: %w", err)
	}
	if spec.Speed < 0 || spec.TurnRate < 0 {
		return fmt.Errorf("move_attributes must be non-negative")
	}
	return ecs.Add(w, e, component.MoveAttributesComponent.Kind(), &component.MoveAttributes{
		Speed:    spec.Speed,
		TurnRate: spec.TurnRate,
	})
}

func addHumanControl(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HumanControlComponent.Kind(), &component.HumanControl{})
}

type scriptControlSpec = prefabs.ScriptControlComponentSpec

func addScriptControl(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptControlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script_control spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("script_control requires a script")
	}
	return ecs.Add(w, e, component.ScriptControlComponent.Kind(), &component.ScriptControl{Script: spec.Script})
}

type circleColliderSpec = prefabs.CircleColliderComponentSpec

func addCircleCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[circleColliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode circle_collider spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("circle_collider radius must be positive, got %g", spec.Radius)
	}
	return ecs.Add(w, e, component.CircleColliderComponent.Kind(), &component.CircleCollider{Radius: spec.Radius})
}

func addParticleCollider(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ParticleColliderComponent.Kind(), &component.ParticleCollider{})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.HP <= 0 {
		return fmt.Errorf("health hp must be positive, got %d", spec.HP)
	}
	if spec.Max == 0 {
		spec.Max = spec.HP
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{HP: spec.HP, Max: spec.Max})
}

type projectileEmitterSpec = prefabs.ProjectileEmitterComponentSpec

func addProjectileEmitter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[projectileEmitterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile_emitter spec: %w", err)
	}
	return ecs.Add(w, e, component.ProjectileEmitterComponent.Kind(), &component.ProjectileEmitter{
		ProjectileSpeed:    spec.ProjectileSpeed,
		Cooldown:           spec.Cooldown,
		ProjectileDuration: spec.ProjectileDuration,
		HitDamage:          spec.HitDamage,
		Friendly:           spec.Friendly,
	})
}

type orbitSpec = prefabs.OrbitComponentSpec

func addOrbitParticle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[orbitSpec](raw)
	if err != nil {
		return fmt.Errorf("decode orbit_particle spec: %w", err)
	}
	return ecs.Add(w, e, component.OrbitParticleComponent.Kind(), &component.OrbitParticle{
		Radius: spec.Radius,
		Speed:  spec.Speed,
		Angle:  spec.Angle,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.FrameCount <= 0 || spec.FrameDuration <= 0 {
		return fmt.Errorf("animation needs frame_count and frame_duration")
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		FrameCount:    spec.FrameCount,
		FrameDuration: spec.FrameDuration,
		Loop:          spec.Loop,
		Repeats:       spec.Repeats,
	})
}

var shapeNames = map[string]component.Shape{
	"disc":  component.ShapeDisc,
	"ship":  component.ShapeShip,
	"point": component.ShapePoint,
	"ping":  component.ShapePing,
}

type drawBodySpec = prefabs.DrawBodyComponentSpec

func addDrawBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[drawBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode draw_body spec: %w", err)
	}
	shape, ok := shapeNames[strings.ToLower(spec.Shape)]
	if !ok {
		return fmt.Errorf("unknown draw_body shape %q", spec.Shape)
	}
	radius := spec.Radius
	if radius == 0 {
		if cc, ok := ecs.Get(w, e, component.CircleColliderComponent.Kind()); ok {
			radius = cc.Radius
		}
	}
	col := spec.Color.RGBA
	if col.A == 0 {
		col.R, col.G, col.B, col.A = 0xff, 0xff, 0xff, 0xff
	}
	return ecs.Add(w, e, component.DrawBodyComponent.Kind(), &component.DrawBody{
		Shape:  shape,
		Color:  col,
		Radius: radius,
	})
}
