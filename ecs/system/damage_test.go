package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
)

func cueNames(w *ecs.World) []event.Cue {
	var out []event.Cue
	for _, c := range ecs.Drain(w, event.SoundCueKind) {
		out = append(out, c.Name)
	}
	return out
}

func TestDamageIsAdditiveWithinATick(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(0, 0), health(20))

	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 4})
	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 7})
	NewDamageResolutionSystem().Update(w, 0)

	assert.Equal(t, 9, hpOf(t, w, e))
	assert.Equal(t, []event.Cue{event.CueHit, event.CueHit}, cueNames(w))
}

func TestSimultaneousHitsSumBeforeDeath(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(0, 0), health(10))

	for _, amount := range []int{6, 6, 6} {
		ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: amount})
	}
	NewDamageResolutionSystem().Update(w, 0)

	assert.False(t, ecs.IsAlive(w, e))
	assert.Equal(t, []event.Cue{event.CueHit, event.CueDeath}, cueNames(w))
}

func TestDeathIsTerminal(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(0, 0), health(5))
	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 5})

	runSystems(w, 1.0/60, NewDamageResolutionSystem())

	assert.False(t, ecs.IsAlive(w, e))
	assert.Zero(t, ecs.NewQuery(w, component.HealthComponent.Kind()).Count())
	assert.Zero(t, ecs.NewQuery(w, component.TransformComponent.Kind()).Count())

	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 5})
	NewDamageResolutionSystem().Update(w, 0)
	assert.Empty(t, cueNames(w), "damage against a dead entity is ignored")
}

func TestPlayerDeathCue(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(0, 0), health(1), humanControl())
	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 3})

	NewDamageResolutionSystem().Update(w, 0)
	assert.Equal(t, []event.Cue{event.CuePlayerDeath}, cueNames(w))
}

func TestDamageWithoutHealthIsIgnored(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(0, 0))
	ecs.Send(w, event.DamageKind, event.Damage{Receiver: e, Amount: 3})

	NewDamageResolutionSystem().Update(w, 0)
	assert.True(t, ecs.IsAlive(w, e))
	assert.Empty(t, cueNames(w))
}
