package ecs

import "github.com/protofarer/aion/ecs/component"

// Query selects entities by component presence. Unlike ForEach it does not
// yield component values, which makes it the tool for negative filters.
type Query struct {
	w       *World
	with    []component.ComponentID
	without []component.ComponentID
}

// NewQuery matches entities carrying every kind given.
func NewQuery(w *World, kinds ...component.Kind) *Query {
	return (&Query{w: w}).With(kinds...)
}

// With adds required kinds.
func (q *Query) With(kinds ...component.Kind) *Query {
	for _, k := range kinds {
		q.with = append(q.with, k.ID())
	}
	return q
}

// Without adds excluded kinds.
func (q *Query) Without(kinds ...component.Kind) *Query {
	for _, k := range kinds {
		q.without = append(q.without, k.ID())
	}
	return q
}

// Entities returns a snapshot of the matching entities.
func (q *Query) Entities() []Entity {
	var out []Entity
	q.scan(func(e Entity) { out = append(out, e) })
	return out
}

// Count returns the number of matching entities.
func (q *Query) Count() int {
	n := 0
	q.scan(func(Entity) { n++ })
	return n
}

// Each calls fn for every match. Structural changes made from fn are
// deferred like in ForEach.
func (q *Query) Each(fn func(Entity)) {
	q.w.beginIteration()
	defer q.w.endIteration()
	q.scan(fn)
}

func (q *Query) scan(fn func(Entity)) {
	if q.w == nil || len(q.with) == 0 {
		return
	}
	sets := make([]*SparseSet, 0, len(q.with))
	for _, id := range q.with {
		s, ok := q.w.stores[id]
		if !ok || s.Len() == 0 {
			return
		}
		sets = append(sets, s)
	}
	for _, id := range smallest(sets...).ids() {
		if !q.matches(sets, id) {
			continue
		}
		if e, alive := q.w.entities.handle(id); alive {
			fn(e)
		}
	}
}

func (q *Query) matches(sets []*SparseSet, id entityID) bool {
	for _, s := range sets {
		if !s.Has(id) {
			return false
		}
	}
	for _, cid := range q.without {
		if s, ok := q.w.stores[cid]; ok && s.Has(id) {
			return false
		}
	}
	return true
}
