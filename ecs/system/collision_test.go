package system

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/event"
)

func detect(w *ecs.World) []event.Collision {
	NewCollisionDetectionSystem().Update(w, 0)
	return ecs.Drain(w, event.CollisionKind)
}

func TestDiscDiscOverlapIsStrict(t *testing.T) {
	tests := []struct {
		name   string
		bx     float64
		rb     float64
		expect bool
	}{
		{"overlapping", 19, 10, true},
		{"tangent", 20, 10, false},
		{"apart", 25, 10, false},
		{"concentric", 0, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			spawn(t, w, transformAt(0, 0), disc(10))
			spawn(t, w, transformAt(tc.bx, 0), disc(tc.rb))

			assert.Equal(t, tc.expect, len(detect(w)) == 1)
		})
	}
}

func TestDiscPointContainmentIsClosed(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		expect bool
	}{
		{"center", 100, 100, true},
		{"inside", 104, 103, true},
		{"on_rim", 100, 115, true},
		{"just_outside", 100, 115.001, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			d := spawn(t, w, transformAt(100, 100), disc(15))
			p := spawn(t, w, transformAt(tc.px, tc.py), point())

			got := detect(w)
			if !tc.expect {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, []event.Collision{{A: d, B: p}}, got)
		})
	}
}

func TestPointsNeverCollideWithPoints(t *testing.T) {
	w := ecs.NewWorld()
	spawn(t, w, transformAt(5, 5), point())
	spawn(t, w, transformAt(5, 5), point())
	assert.Empty(t, detect(w))
}

func TestEachDiscPairReportedOnce(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 3; i++ {
		spawn(t, w, transformAt(float64(i), 0), disc(10))
	}
	assert.Len(t, detect(w), 3)
}

func TestDetectionMatchesPairwiseFormula(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := ecs.NewWorld()
	type body struct {
		e   ecs.Entity
		pos cp.Vector
		r   float64
	}
	var discs, points []body
	for i := 0; i < 25; i++ {
		pos := cp.Vector{X: float64(rng.Intn(200)), Y: float64(rng.Intn(200))}
		if i%3 == 0 {
			points = append(points, body{e: spawn(t, w, transformAt(pos.X, pos.Y), point()), pos: pos})
			continue
		}
		r := float64(5 + rng.Intn(20))
		discs = append(discs, body{e: spawn(t, w, transformAt(pos.X, pos.Y), disc(r)), pos: pos, r: r})
	}

	want := 0
	for i := range discs {
		for j := i + 1; j < len(discs); j++ {
			if discs[i].pos.Distance(discs[j].pos) < discs[i].r+discs[j].r {
				want++
			}
		}
		for _, p := range points {
			if discs[i].pos.Distance(p.pos) <= discs[i].r {
				want++
			}
		}
	}
	assert.Len(t, detect(w), want)
}
