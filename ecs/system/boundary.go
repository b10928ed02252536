package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/protofarer/aion/common"
	"github.com/protofarer/aion/ecs"
	"github.com/protofarer/aion/ecs/component"
)

// DiscBoundarySystem keeps discs inside the arena, tangent to the wall they
// hit, bouncing the offending velocity axis back inward.
type DiscBoundarySystem struct {
	bounds cp.BB
}

func NewDiscBoundarySystem(bounds cp.BB) *DiscBoundarySystem {
	return &DiscBoundarySystem{bounds: bounds}
}

func (s *DiscBoundarySystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.RigidBodyComponent.Kind(), component.CircleColliderComponent.Kind(), func(_ ecs.Entity, tr *component.Transform, body *component.RigidBody, col *component.CircleCollider) {
		restrictDisc(&tr.Position, &body.Velocity, col.Radius, s.bounds)
	})
}

// restrictDisc reports whether the disc touched a wall.
func restrictDisc(pos, vel *cp.Vector, r float64, bb cp.BB) bool {
	hitX := restrictAxis(&pos.X, &vel.X, bb.L+r, bb.R-r)
	hitY := restrictAxis(&pos.Y, &vel.Y, bb.B+r, bb.T-r)
	return hitX || hitY
}

func restrictAxis(p, v *float64, lo, hi float64) bool {
	switch {
	case *p < lo:
		*p = lo
		*v = math.Abs(*v)
		return true
	case *p > hi:
		*p = hi
		*v = -math.Abs(*v)
		return true
	}
	return false
}

// PointBoundarySystem keeps points inside the half-open arena [0,w)x[0,h) and
// can leave a ping where a point struck the wall.
type PointBoundarySystem struct {
	bounds cp.BB
	pings  bool
}

func NewPointBoundarySystem(bounds cp.BB, pings bool) *PointBoundarySystem {
	return &PointBoundarySystem{bounds: bounds, pings: pings}
}

func (s *PointBoundarySystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	q := ecs.NewQuery(w,
		component.TransformComponent.Kind(),
		component.RigidBodyComponent.Kind(),
		component.ParticleColliderComponent.Kind(),
	).Without(component.CircleColliderComponent.Kind())

	q.Each(func(e ecs.Entity) {
		tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		if !restrictPoint(&tr.Position, &body.Velocity, s.bounds) || !s.pings {
			return
		}
		if err := spawnPing(w, tr.Position); err != nil {
			w.Logger().Warn("boundary: spawn ping", zap.Error(err))
		}
	})
}

func restrictPoint(pos, vel *cp.Vector, bb cp.BB) bool {
	hitX := restrictAxis(&pos.X, &vel.X, bb.L, math.Nextafter(bb.R, math.Inf(-1)))
	hitY := restrictAxis(&pos.Y, &vel.Y, bb.B, math.Nextafter(bb.T, math.Inf(-1)))
	return hitX || hitY
}

const (
	pingFrames        = 4
	pingFrameDuration = 0.05
	pingRadius        = 8
)

func spawnPing(w *ecs.World, at cp.Vector) error {
	_, err := ecs.Spawn(w,
		ecs.Bind(component.TransformComponent.Kind(), &component.Transform{Position: at, Scale: 1}),
		ecs.Bind(component.DrawBodyComponent.Kind(), &component.DrawBody{Shape: component.ShapePing, Color: common.ColorPing, Radius: pingRadius}),
		ecs.Bind(component.AnimationComponent.Kind(), &component.Animation{FrameCount: pingFrames, FrameDuration: pingFrameDuration, Repeats: 1}),
	)
	return err
}
