package ecs

// SystemFunc adapts a function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) {
	f(w, dt)
}

// Scheduler runs systems in a fixed order, once each per tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs one tick. Deferred commands are applied after every system so
// later systems observe the spawns and despawns of earlier ones; messages
// nobody drained are discarded at the end.
func (s *Scheduler) Update(w *World, dt float64) {
	if w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w, dt)
		w.Flush()
	}
	w.EndTick()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
