package component

import "github.com/jakecoffman/cp"

// RigidBody carries linear velocity in pixels per second.
type RigidBody struct {
	Velocity cp.Vector
}

var RigidBodyComponent = NewComponent[RigidBody]()

// RotatableBody carries angular velocity in radians per second.
type RotatableBody struct {
	RotationRate float64
}

var RotatableBodyComponent = NewComponent[RotatableBody]()
