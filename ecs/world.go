package ecs

import (
	"go.uber.org/zap"

	"github.com/protofarer/aion/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World, dt float64)
}

// World owns entities, their component stores and the per-tick message
// queues. It is not safe for concurrent use; the update loop is the only
// writer.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	messages map[messageID]messageQueue

	commands       CommandBuffer
	pendingDespawn map[Entity]struct{}
	iterating      int

	logger *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger systems use through World.Logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates an empty ECS world.
func NewWorld(opts ...Option) *World {
	w := &World{
		stores:         make(map[component.ComponentID]*SparseSet),
		messages:       make(map[messageID]messageQueue),
		pendingDespawn: make(map[Entity]struct{}),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Logger never returns nil.
func (w *World) Logger() *zap.Logger {
	if w == nil || w.logger == nil {
		return zap.NewNop()
	}
	return w.logger
}

// Iterating reports whether a ForEach or Query.Each is in progress.
func (w *World) Iterating() bool {
	return w.iterating > 0
}

// Flush applies deferred structural commands. It is a no-op while an
// iteration is open; the outermost iteration flushes when it ends.
func (w *World) Flush() {
	if w == nil || w.Iterating() {
		return
	}
	w.applyCommands()
}

func (w *World) beginIteration() {
	w.iterating++
}

func (w *World) endIteration() {
	w.iterating--
	if w.iterating == 0 {
		w.applyCommands()
	}
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = newSparseSet()
		w.stores[id] = s
	}
	return s
}

// CreateEntity allocates a new entity with no components. Allocation is
// immediate even during iteration: an entity without components matches no
// query until its components land.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// Spawn creates an entity carrying the given components. During iteration
// the components are attached when the iteration ends.
func Spawn(w *World, values ...Value) (Entity, error) {
	for _, v := range values {
		if err := v.validate(); err != nil {
			return NoEntity, err
		}
	}
	e := CreateEntity(w)
	for _, v := range values {
		w.attach(e, v.id, v.value)
	}
	return e, nil
}

// DestroyEntity despawns e and drops all of its components. It returns false
// when e is already dead or already scheduled for despawn; that case is a
// no-op. During iteration the despawn is deferred.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	if _, pending := w.pendingDespawn[e]; pending {
		return false
	}
	if w.Iterating() {
		w.pendingDespawn[e] = struct{}{}
		w.commands.push(command{op: opDespawn, entity: e})
		return true
	}
	return w.destroyNow(e)
}

// Despawn is DestroyEntity.
func Despawn(w *World, e Entity) bool {
	return DestroyEntity(w, e)
}

func (w *World) destroyNow(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether e names a live entity. An entity scheduled for
// despawn stays alive until the command lands.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Count returns the number of live entities.
func Count(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// attach sets a component, deferring the insert when it would change the
// shape of a store under iteration. Replacing an existing value is immediate
// unless an add or remove of the same component is already queued, in which
// case the replacement queues behind it.
func (w *World) attach(e Entity, id component.ComponentID, value any) {
	s := w.store(id)
	if w.Iterating() && (!s.Has(e.id()) || w.commands.touches(e, id)) {
		w.commands.push(command{op: opAdd, entity: e, kind: id, value: value})
		return
	}
	s.Set(e.id(), value)
}

// detach removes a component. A component that is only queued for adding
// still counts as present while iterating.
func (w *World) detach(e Entity, id component.ComponentID) bool {
	s, ok := w.stores[id]
	present := ok && s.Has(e.id())
	if w.Iterating() {
		if !present && !w.commands.touches(e, id) {
			return false
		}
		w.commands.push(command{op: opRemove, entity: e, kind: id})
		return true
	}
	if !present {
		return false
	}
	return s.Remove(e.id())
}
