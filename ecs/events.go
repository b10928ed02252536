package ecs

import (
	"sync/atomic"

	"go.uber.org/zap"
)

type messageID uint32

var nextMessageID atomic.Uint32

// MessageKind names a typed per-tick message queue. Messages sent during a
// tick are handed out once by Drain and never survive the end of the tick.
type MessageKind[T any] struct {
	id   messageID
	name string
}

func NewMessageKind[T any](name string) MessageKind[T] {
	return MessageKind[T]{id: messageID(nextMessageID.Add(1)), name: name}
}

func (k MessageKind[T]) Name() string {
	return k.name
}

type messageQueue interface {
	kind() string
	len() int
	reset()
}

// EventQueue is a FIFO of one message type.
type EventQueue[T any] struct {
	name  string
	items []T
}

// Push adds an event.
func (q *EventQueue[T]) Push(evt T) {
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue[T]) Drain() []T {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue[T]) kind() string {
	return q.name
}

func (q *EventQueue[T]) len() int {
	return len(q.items)
}

func (q *EventQueue[T]) reset() {
	q.items = nil
}

func queueFor[T any](w *World, kind MessageKind[T]) *EventQueue[T] {
	if q, ok := w.messages[kind.id].(*EventQueue[T]); ok {
		return q
	}
	q := &EventQueue[T]{name: kind.Name()}
	w.messages[kind.id] = q
	return q
}

// Send queues msg for the consumer of kind.
func Send[T any](w *World, kind MessageKind[T], msg T) {
	queueFor(w, kind).Push(msg)
}

// Drain hands out every queued message of kind, oldest first, and empties the
// queue.
func Drain[T any](w *World, kind MessageKind[T]) []T {
	q, ok := w.messages[kind.id].(*EventQueue[T])
	if !ok {
		return nil
	}
	return q.Drain()
}

// Pending returns how many messages of kind wait to be drained.
func Pending[T any](w *World, kind MessageKind[T]) int {
	q, ok := w.messages[kind.id].(*EventQueue[T])
	if !ok {
		return 0
	}
	return q.len()
}

// EndTick discards undrained messages and applies outstanding commands. It
// returns the number of discarded messages.
func (w *World) EndTick() int {
	w.Flush()
	dropped := 0
	for _, q := range w.messages {
		n := q.len()
		if n == 0 {
			continue
		}
		dropped += n
		q.reset()
		w.Logger().Warn("ecs: discarded undrained messages", zap.String("kind", q.kind()), zap.Int("count", n))
	}
	return dropped
}
