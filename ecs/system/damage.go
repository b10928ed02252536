package system

import (
	"go.uber.org/zap"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
	"github.com/protofarer/aion/ecs/event"
)

// DamageResolutionSystem applies every damage request of the tick before
// removing anyone, so simultaneous hits add up.
type DamageResolutionSystem struct {
	dying map[ecs.Entity]struct{}
	order []ecs.Entity
}

func NewDamageResolutionSystem() *DamageResolutionSystem {
	return &DamageResolutionSystem{dying: make(map[ecs.Entity]struct{})}
}

func (s *DamageResolutionSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	events := ecs.Drain(w, event.DamageKind)
	if len(events) == 0 {
		return
	}

	for _, d := range events {
		hp, ok := ecs.Get(w, d.Receiver, component.HealthComponent.Kind())
		if !ok {
			continue
		}
		hp.HP -= d.Amount
		if _, dead := s.dying[d.Receiver]; dead {
			continue
		}
		if hp.HP > 0 {
			ecs.Send(w, event.SoundCueKind, event.SoundCue{Name: event.CueHit})
			continue
		}

		s.dying[d.Receiver] = struct{}{}
		s.order = append(s.order, d.Receiver)
		cue := event.CueDeath
		if ecs.Has(w, d.Receiver, component.HumanControlComponent.Kind()) {
			cue = event.CuePlayerDeath
		}
		ecs.Send(w, event.SoundCueKind, event.SoundCue{Name: cue})
	}

	for _, e := range s.order {
		w.Logger().Info("entity destroyed", zap.Stringer("entity", e))
		ecs.DestroyEntity(w, e)
		delete(s.dying, e)
	}
	s.order = s.order[:0]
}
