package ecs

import (
	"fmt"

	"github.com/protofarer/aion/ecs/component"
)

// Value is a component bound to its kind, used by Spawn.
type Value struct {
	id    component.ComponentID
	value any
}

// Bind pairs a component value with its kind.
func Bind[T any](kind component.ComponentKind[T], v *T) Value {
	if v == nil {
		return Value{id: kind.ID()}
	}
	return Value{id: kind.ID(), value: v}
}

func (v Value) validate() error {
	if v.id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v.value == nil {
		return fmt.Errorf("kind %s: %w", v.id, component.ErrNilComponent)
	}
	return nil
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("entity %s: %w", e, component.ErrEntityNotAlive)
	}
	w.attach(e, kind.ID(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.detach(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s, ok := w.stores[kind.ID()]
	return ok && s.Has(e.id())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return nil, false
	}
	v, ok := s.Get(e.id()).(*T)
	return v, ok && v != nil
}

// First returns any one entity carrying kind, with its component.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s, ok := w.stores[kind.ID()]
	if !ok || s.Len() == 0 {
		return NoEntity, nil, false
	}
	for _, id := range s.denseIDs {
		e, alive := w.entities.handle(id)
		if !alive {
			continue
		}
		if v, ok := s.Get(id).(*T); ok {
			return e, v, true
		}
	}
	return NoEntity, nil, false
}

// ForEach calls fn for every entity carrying kind. Structural changes made
// from fn are deferred until the outermost iteration returns.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s, ok := w.stores[kind.ID()]
	if !ok {
		return
	}
	w.beginIteration()
	defer w.endIteration()
	for _, id := range s.ids() {
		e, alive := w.entities.handle(id)
		if !alive {
			continue
		}
		a, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.stores[ka.ID()], w.stores[kb.ID()]
	if sa == nil || sb == nil {
		return
	}
	w.beginIteration()
	defer w.endIteration()
	for _, id := range smallest(sa, sb).ids() {
		e, alive := w.entities.handle(id)
		if !alive {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := w.stores[ka.ID()], w.stores[kb.ID()], w.stores[kc.ID()]
	if sa == nil || sb == nil || sc == nil {
		return
	}
	w.beginIteration()
	defer w.endIteration()
	for _, id := range smallest(sa, sb, sc).ids() {
		e, alive := w.entities.handle(id)
		if !alive {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := w.stores[ka.ID()], w.stores[kb.ID()], w.stores[kc.ID()], w.stores[kd.ID()]
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	w.beginIteration()
	defer w.endIteration()
	for _, id := range smallest(sa, sb, sc, sd).ids() {
		e, alive := w.entities.handle(id)
		if !alive {
			continue
		}
		a, okA := sa.Get(id).(*A)
		b, okB := sb.Get(id).(*B)
		c, okC := sc.Get(id).(*C)
		d, okD := sd.Get(id).(*D)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// smallest picks the store to drive an intersection.
func smallest(sets ...*SparseSet) *SparseSet {
	best := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < best.Len() {
			best = s
		}
	}
	return best
}
