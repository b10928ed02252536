package system

import (
	"github.com/jakecoffman/cp"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/input"
	"github.com/protofarer/aion/timing"
)

// Deps are the collaborators the simulation pipeline reads from.
type Deps struct {
	Input      input.Snapshot
	Gate       RunGate
	Clock      timing.Clock
	Bounds     cp.BB
	SpawnPings bool
	Audio      CuePlayer
	Scripts    ScriptLoader
}

// Pipeline is the scheduler plus handles to the systems that keep caches.
type Pipeline struct {
	*ecs.Scheduler
	Scripts *ScriptControlSystem
}

// NewPipeline assembles the systems in tick order.
func NewPipeline(d Deps) *Pipeline {
	scripts := NewScriptControlSystem(d.Scripts, d.Clock)
	return &Pipeline{
		Scheduler: ecs.NewScheduler(
			NewHumanInputSystem(d.Input, d.Gate),
			scripts,
			NewMovementSystem(),
			NewProjectileEmissionSystem(d.Clock),
			NewRotationIntegrationSystem(),
			NewTranslationIntegrationSystem(),
			NewOrbitIntegrationSystem(),
			NewDiscBoundarySystem(d.Bounds),
			NewPointBoundarySystem(d.Bounds, d.SpawnPings),
			NewProjectileExpirySystem(d.Clock),
			NewCollisionDetectionSystem(),
			NewCollisionResolutionSystem(),
			NewDamageResolutionSystem(),
			NewAnimationSystem(),
			NewAudioDispatchSystem(d.Audio),
		),
		Scripts: scripts,
	}
}
