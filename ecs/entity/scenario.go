package entity

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/prefabs"
)

var (
	ErrDuplicatePlacement = errors.New("entity: duplicate placement id")
	ErrUnknownPlacement   = errors.New("entity: unknown placement id")
	ErrNotOrbiter         = errors.New("entity: placement has no orbit_particle")
)

// Scenario is what LoadScenario put into the world.
type Scenario struct {
	Name     string
	Entities []ecs.Entity
	IDs      map[string]ecs.Entity
}

// LoadScenario builds every placement of the named scenario into w. Random
// blocks scatter inside bounds using rng. On error nothing stays spawned.
func LoadScenario(w *ecs.World, name string, bounds cp.BB, rng *rand.Rand) (*Scenario, error) {
	spec, err := prefabs.LoadScenarioSpec(name)
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", name, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	sc := &Scenario{Name: spec.Name, IDs: map[string]ecs.Entity{}}
	fail := func(err error) (*Scenario, error) {
		for _, e := range sc.Entities {
			ecs.DestroyEntity(w, e)
		}
		return nil, fmt.Errorf("load scenario %q: %w", name, err)
	}

	for i, p := range spec.Entities {
		if p.ID != "" {
			if _, dup := sc.IDs[p.ID]; dup {
				return fail(fmt.Errorf("%w %q", ErrDuplicatePlacement, p.ID))
			}
		}

		count := 1
		var dx, dy float64
		if p.Repeat != nil && p.Repeat.Count > 0 {
			count, dx, dy = p.Repeat.Count, p.Repeat.DX, p.Repeat.DY
		}

		for n := 0; n < count; n++ {
			x := p.X + float64(n)*dx
			y := p.Y + float64(n)*dy
			e, err := BuildEntityWith(w, p.Prefab, placementOverrides(p, x, y))
			if err != nil {
				return fail(fmt.Errorf("placement %d: %w", i, err))
			}
			sc.Entities = append(sc.Entities, e)
			if n == 0 && p.ID != "" {
				sc.IDs[p.ID] = e
			}
			if p.AttachTo != "" {
				if err := attach(w, e, sc.IDs, p.AttachTo); err != nil {
					return fail(fmt.Errorf("placement %d: %w", i, err))
				}
			}
		}
	}

	for i, r := range spec.Random {
		for n := 0; n < r.Count; n++ {
			e, err := BuildEntityWith(w, r.Prefab, randomOverrides(r, bounds, rng))
			if err != nil {
				return fail(fmt.Errorf("random %d: %w", i, err))
			}
			sc.Entities = append(sc.Entities, e)
		}
	}

	w.Logger().Info("scenario: loaded", zap.String("scenario", sc.Name), zap.Int("entities", len(sc.Entities)))
	return sc, nil
}

// Player returns the human-controlled entity, if one is alive.
func Player(w *ecs.World) (ecs.Entity, bool) {
	e, _, ok := ecs.First(w, component.HumanControlComponent.Kind())
	return e, ok
}

func placementOverrides(p prefabs.PlacementSpec, x, y float64) map[string]any {
	pose := map[string]any{
		"transform": map[string]any{"x": x, "y": y, "heading": p.Heading},
	}
	if p.VX != 0 || p.VY != 0 {
		pose["rigid_body"] = map[string]any{"vx": p.VX, "vy": p.VY}
	}
	return prefabs.MergeComponents(p.Components, pose)
}

func randomOverrides(r prefabs.RandomSpec, bounds cp.BB, rng *rand.Rand) map[string]any {
	minX, maxX := bounds.L+r.Margin, bounds.R-r.Margin
	minY, maxY := bounds.B+r.Margin, bounds.T-r.Margin
	if maxX < minX {
		minX, maxX = bounds.Center().X, bounds.Center().X
	}
	if maxY < minY {
		minY, maxY = bounds.Center().Y, bounds.Center().Y
	}

	heading := rng.Float64() * 2 * math.Pi
	speed := r.MinSpeed
	if r.MaxSpeed > r.MinSpeed {
		speed += rng.Float64() * (r.MaxSpeed - r.MinSpeed)
	}
	v := cp.ForAngle(heading).Mult(speed)

	return map[string]any{
		"transform": map[string]any{
			"x":       minX + rng.Float64()*(maxX-minX),
			"y":       minY + rng.Float64()*(maxY-minY),
			"heading": heading,
		},
		"rigid_body": map[string]any{"vx": v.X, "vy": v.Y},
	}
}

// attach points an orbiter at a placement built earlier and moves it onto
// its orbit so the first frame is already in place.
func attach(w *ecs.World, e ecs.Entity, ids map[string]ecs.Entity, target string) error {
	parent, ok := ids[target]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownPlacement, target)
	}
	orbit, ok := ecs.Get(w, e, component.OrbitParticleComponent.Kind())
	if !ok {
		return ErrNotOrbiter
	}
	orbit.Parent = parent.Ref()

	ptr, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	heading := 0.0
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		heading = tr.Heading
	}
	at := ptr.Position.Add(cp.ForAngle(orbit.Angle).Mult(orbit.Radius))
	return SetEntityTransform(w, e, at.X, at.Y, heading)
}
