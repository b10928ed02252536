package component

import "github.com/jakecoffman/cp"

// Transform places an entity in the arena. Heading is in radians, measured
// from +x toward +y (screen down), and is kept in [0, 2π).
type Transform struct {
	Position cp.Vector
	Heading  float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
