package system

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/timing"
)

// ScriptLoader returns the source of a named script.
type ScriptLoader func(name string) ([]byte, error)

// scriptDispatch is appended to every pilot script. A script defines
// update(engine, state); state is a map that persists across ticks.
const scriptDispatch = `
update(__engine, __state)
`

type pilotRuntime struct {
	script    string
	compiled  *tengo.Compiled
	stateData *tengo.Map
}

type pilotIntent struct {
	turn   component.TurnSign
	thrust bool
	fire   bool
}

// ScriptControlSystem lets tengo scripts steer non-human pilots. Scripts see
// their own pose and the nearest human-controlled entity and answer with the
// same turn, thrust and fire intents the keyboard produces.
type ScriptControlSystem struct {
	load     ScriptLoader
	clock    timing.Clock
	runtimes map[ecs.Entity]*pilotRuntime
}

func NewScriptControlSystem(load ScriptLoader, clock timing.Clock) *ScriptControlSystem {
	return &ScriptControlSystem{load: load, clock: clock, runtimes: map[ecs.Entity]*pilotRuntime{}}
}

// Reset drops compiled scripts so edited sources are picked up.
func (s *ScriptControlSystem) Reset() {
	s.runtimes = map[ecs.Entity]*pilotRuntime{}
}

func (s *ScriptControlSystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.load == nil {
		return
	}

	var targets []component.Transform
	ecs.ForEach2(w, component.HumanControlComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.HumanControl, tr *component.Transform) {
		targets = append(targets, *tr)
	})
	now := 0.0
	if s.clock != nil {
		now = s.clock.Now().Sub(timing.Origin).Seconds()
	}

	ecs.ForEach3(w, component.ScriptControlComponent.Kind(), component.RotationalInputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.ScriptControl, ri *component.RotationalInput, tr *component.Transform) {
		if sc.Disabled {
			return
		}
		rt, err := s.runtime(e, sc.Script)
		if err != nil {
			sc.Disabled = true
			w.Logger().Warn("script: load failed", zap.Stringer("entity", e), zap.String("script", sc.Script), zap.Error(err))
			return
		}

		intent := pilotIntent{turn: ri.Turn, thrust: ri.Thrusting}
		engine := buildPilotEngine(tr, nearest(tr, targets), now, &intent)
		if err := rt.run(engine); err != nil {
			sc.Disabled = true
			w.Logger().Warn("script: run failed", zap.Stringer("entity", e), zap.String("script", sc.Script), zap.Error(err))
			return
		}

		ri.Turn = intent.turn
		ri.Thrusting = intent.thrust
		if em, ok := ecs.Get(w, e, component.ProjectileEmitterComponent.Kind()); ok {
			em.IntendsToFire = intent.fire
		}
	})

	for e := range s.runtimes {
		if !ecs.IsAlive(w, e) {
			delete(s.runtimes, e)
		}
	}
}

func (s *ScriptControlSystem) runtime(e ecs.Entity, name string) (*pilotRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.script == name {
		return rt, nil
	}
	src, err := s.load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte(nil), src...), scriptDispatch...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	rt := &pilotRuntime{
		script:    name,
		compiled:  compiled,
		stateData: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *pilotRuntime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func nearest(from *component.Transform, targets []component.Transform) *component.Transform {
	var best *component.Transform
	bestDist := math.Inf(1)
	for i := range targets {
		if d := from.Position.Distance(targets[i].Position); d < bestDist {
			best, bestDist = &targets[i], d
		}
	}
	return best
}

func buildPilotEngine(self, target *component.Transform, now float64, intent *pilotIntent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["self"] = &tengo.UserFunction{Name: "self", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return poseObject(self), nil
	}}

	values["target"] = &tengo.UserFunction{Name: "target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if target == nil {
			return tengo.UndefinedValue, nil
		}
		return poseObject(target), nil
	}}

	values["now"] = &tengo.UserFunction{Name: "now", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: now}, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		sign, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "sign", Expected: "int", Found: args[0].TypeName()}
		}
		switch {
		case sign > 0:
			intent.turn = component.TurnRight
		case sign < 0:
			intent.turn = component.TurnLeft
		default:
			intent.turn = component.TurnNone
		}
		return tengo.UndefinedValue, nil
	}}

	values["thrust"] = &tengo.UserFunction{Name: "thrust", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		intent.thrust = !args[0].IsFalsy()
		return tengo.UndefinedValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		intent.fire = !args[0].IsFalsy()
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func poseObject(tr *component.Transform) tengo.Object {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":       &tengo.Float{Value: tr.Position.X},
		"y":       &tengo.Float{Value: tr.Position.Y},
		"heading": &tengo.Float{Value: tr.Heading},
	}}
}
