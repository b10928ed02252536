package component

// CircleCollider tags a disc of the given radius.
type CircleCollider struct {
	Radius float64
}

var CircleColliderComponent = NewComponent[CircleCollider]()

// ParticleCollider tags a zero-radius point.
type ParticleCollider struct{}

var ParticleColliderComponent = NewComponent[ParticleCollider]()
