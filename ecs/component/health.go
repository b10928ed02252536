package component

// Health is alive while HP > 0.
type Health struct {
	HP  int
	Max int
}

var HealthComponent = NewComponent[Health]()
