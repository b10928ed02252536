package ecs

import (
	"github.com/protofarer/aion/ecs/component"
	"go.uber.org/zap"
)

type commandOp uint8

const (
	opAdd commandOp = iota
	opRemove
	opDespawn
)

type command struct {
	op     commandOp
	entity Entity
	kind   component.ComponentID
	value  any
}

// CommandBuffer collects structural changes requested while a store is being
// iterated. Commands apply in the order they were issued.
type CommandBuffer struct {
	commands []command
}

// Len returns the number of pending commands.
func (b *CommandBuffer) Len() int {
	return len(b.commands)
}

func (b *CommandBuffer) push(c command) {
	b.commands = append(b.commands, c)
}

// touches reports whether an add or remove of kind on e is queued.
func (b *CommandBuffer) touches(e Entity, kind component.ComponentID) bool {
	for _, c := range b.commands {
		if c.entity == e && c.kind == kind && c.op != opDespawn {
			return true
		}
	}
	return false
}

func (b *CommandBuffer) take() []command {
	out := b.commands
	b.commands = nil
	return out
}

// PendingCommands returns the number of deferred structural changes.
func (w *World) PendingCommands() int {
	return w.commands.Len()
}

func (w *World) applyCommands() {
	for w.commands.Len() > 0 {
		for _, c := range w.commands.take() {
			switch c.op {
			case opAdd:
				if !w.entities.isAlive(c.entity) {
					w.Logger().Debug("ecs: dropped component for dead entity",
						zap.Stringer("entity", c.entity), zap.Stringer("kind", c.kind))
					continue
				}
				w.store(c.kind).Set(c.entity.id(), c.value)
			case opRemove:
				if s, ok := w.stores[c.kind]; ok && w.entities.isAlive(c.entity) {
					s.Remove(c.entity.id())
				}
			case opDespawn:
				delete(w.pendingDespawn, c.entity)
				w.destroyNow(c.entity)
			}
		}
	}
}
