package system

import (
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

// AnimationSystem steps frame timers and retires finished one-shot
// animations together with their entity.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		if stepAnimation(a, dt) {
			ecs.DestroyEntity(w, e)
		}
	})
}

// stepAnimation advances a by dt and reports whether it is exhausted.
func stepAnimation(a *component.Animation, dt float64) bool {
	if a.FrameCount <= 0 || a.FrameDuration <= 0 {
		return false
	}
	a.Elapsed += dt
	if a.Elapsed < a.FrameDuration {
		return false
	}
	a.Elapsed = 0
	a.Current = (a.Current + 1) % a.FrameCount
	if a.Loop || a.Current != 0 {
		return false
	}
	a.Repeats--
	return a.Repeats <= 0
}
