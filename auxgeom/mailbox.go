package auxgeom

import "sync/atomic"

// Mailbox is a single slot hand off between one producer and one consumer.
// Every operation is a single atomic exchange, so the consumer sees either a
// complete value or none.
type Mailbox[T any] struct {
	slot atomic.Pointer[T]
}

// Swap stores v and returns what the consumer had not yet taken.
func (m *Mailbox[T]) Swap(v *T) *T { return m.slot.Swap(v) }

// Take empties the slot.
func (m *Mailbox[T]) Take() *T { return m.slot.Swap(nil) }

func (m *Mailbox[T]) Peek() *T { return m.slot.Load() }
