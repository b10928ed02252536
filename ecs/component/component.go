package component

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component store. Zero is never handed out.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	componentNames  sync.Map
)

// String returns the Go type name the ID was created for.
func (id ComponentID) String() string {
	if name, ok := componentNames.Load(id); ok {
		return name.(string)
	}
	return fmt.Sprintf("component(%d)", uint32(id))
}

// Kind is satisfied by every ComponentKind and is what untyped queries take.
type Kind interface {
	ID() ComponentID
}

// ComponentKind ties a store ID to the Go type kept in it.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	componentNames.Store(id, fmt.Sprintf("%T", zero))
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level declaration of a component, e.g.
// TransformComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
