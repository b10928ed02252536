package component

// OrbitParticle circles Parent at Radius. Parent is a weak reference
// (0 when unattached) checked against the world every tick.
type OrbitParticle struct {
	Radius float64
	Speed  float64
	Angle  float64
	Parent uint64
}

var OrbitParticleComponent = NewComponent[OrbitParticle]()
