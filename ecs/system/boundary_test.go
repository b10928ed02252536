package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

var arena = common.ArenaBounds(960, 540)

func TestDiscBoundaryReflectsAndClamps(t *testing.T) {
	tests := []struct {
		name           string
		pos, vel       cp.Vector
		wantPos, wantV cp.Vector
	}{
		{"right_wall", cp.Vector{X: 955, Y: 100}, cp.Vector{X: 50, Y: 0}, cp.Vector{X: 950, Y: 100}, cp.Vector{X: -50, Y: 0}},
		{"left_wall", cp.Vector{X: 3, Y: 100}, cp.Vector{X: -20, Y: 5}, cp.Vector{X: 10, Y: 100}, cp.Vector{X: 20, Y: 5}},
		{"bottom_wall", cp.Vector{X: 100, Y: 539}, cp.Vector{X: 1, Y: 30}, cp.Vector{X: 100, Y: 530}, cp.Vector{X: 1, Y: -30}},
		{"corner", cp.Vector{X: -5, Y: -5}, cp.Vector{X: -1, Y: -1}, cp.Vector{X: 10, Y: 10}, cp.Vector{X: 1, Y: 1}},
		{"inside", cp.Vector{X: 400, Y: 300}, cp.Vector{X: 50, Y: 50}, cp.Vector{X: 400, Y: 300}, cp.Vector{X: 50, Y: 50}},
		{"already_heading_inward", cp.Vector{X: 958, Y: 100}, cp.Vector{X: -50, Y: 0}, cp.Vector{X: 950, Y: 100}, cp.Vector{X: -50, Y: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawn(t, w, transformAt(tc.pos.X, tc.pos.Y), velocity(tc.vel.X, tc.vel.Y), disc(10))
			NewDiscBoundarySystem(arena).Update(w, 0)

			body, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
			assert.Equal(t, tc.wantPos, transformOf(t, w, e).Position)
			assert.Equal(t, tc.wantV, body.Velocity)
		})
	}
}

func TestDiscBoundaryIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(955, 100), velocity(50, 0), disc(10))
	sys := NewDiscBoundarySystem(arena)

	sys.Update(w, 0)
	first := *transformOf(t, w, e)
	sys.Update(w, 0)
	assert.Equal(t, first.Position, transformOf(t, w, e).Position)
	body, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	assert.Equal(t, -50.0, body.Velocity.X)
}

func TestPointBoundaryClampsIntoHalfOpenArena(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(960, -2), velocity(10, -10), point())
	NewPointBoundarySystem(arena, false).Update(w, 0)

	pos := transformOf(t, w, e).Position
	assert.Less(t, pos.X, 960.0)
	assert.InDelta(t, 960.0, pos.X, 1e-9)
	assert.Equal(t, 0.0, pos.Y)
	body, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	assert.Equal(t, cp.Vector{X: -10, Y: 10}, body.Velocity)

	NewPointBoundarySystem(arena, false).Update(w, 0)
	assert.Equal(t, pos, transformOf(t, w, e).Position)
}

func TestPointBoundarySpawnsPing(t *testing.T) {
	w := ecs.NewWorld()
	spawn(t, w, transformAt(-1, 50), velocity(-10, 0), point())
	spawn(t, w, transformAt(50, 50), velocity(-10, 0), point())
	NewPointBoundarySystem(arena, true).Update(w, 0)

	pings := ecs.NewQuery(w, component.AnimationComponent.Kind(), component.DrawBodyComponent.Kind()).Entities()
	if assert.Len(t, pings, 1) {
		assert.Equal(t, cp.Vector{X: 0, Y: 50}, transformOf(t, w, pings[0]).Position)
		db, _ := ecs.Get(w, pings[0], component.DrawBodyComponent.Kind())
		assert.Equal(t, component.ShapePing, db.Shape)
	}
}

func TestPointBoundarySkipsDiscs(t *testing.T) {
	w := ecs.NewWorld()
	e := spawn(t, w, transformAt(-5, 50), velocity(-10, 0), point(), disc(3))
	NewPointBoundarySystem(arena, true).Update(w, 0)
	assert.Equal(t, -5.0, transformOf(t, w, e).Position.X)
}
