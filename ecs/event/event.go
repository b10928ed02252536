// Package event defines the per-tick messages exchanged between systems.
package event

import "github.com/protofarer/aion/ecs"

// Collision reports an overlapping pair. For disc-point pairs A is the disc.
type Collision struct {
	A ecs.Entity
	B ecs.Entity
}

var CollisionKind = ecs.NewMessageKind[Collision]("collision")

// Damage asks the damage system to subtract Amount from Receiver's health.
type Damage struct {
	Receiver ecs.Entity
	Amount   int
}

var DamageKind = ecs.NewMessageKind[Damage]("damage")

// SoundCue asks the audio collaborator to play a named cue.
type SoundCue struct {
	Name Cue
}

var SoundCueKind = ecs.NewMessageKind[SoundCue]("sound_cue")
