package system

import (
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/event"
)

// CuePlayer is the audio collaborator. Play must not block the tick.
type CuePlayer interface {
	Play(name string)
}

// AudioDispatchSystem forwards every sound cue of the tick to the player.
type AudioDispatchSystem struct {
	player CuePlayer
}

func NewAudioDispatchSystem(player CuePlayer) *AudioDispatchSystem {
	return &AudioDispatchSystem{player: player}
}

func (s *AudioDispatchSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	for _, cue := range ecs.Drain(w, event.SoundCueKind) {
		if s.player != nil {
			s.player.Play(cue.Name.String())
		}
	}
}
