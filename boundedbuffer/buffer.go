// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package boundedbuffer implements the producer/consumer protocol over a fixed-capacity buffer.

Three semaphores gate the buffer.  Spaces counts the free slots and starts at the capacity, Items
counts the filled slots and starts at zero, and Mutex admits one producer or consumer at a time to
the slots themselves.  A producer waits for a space, a consumer waits for an item, so the buffer
can neither overflow nor be read before it is written.
*/
package boundedbuffer

import (
	"context"
	"sync/atomic"

	"github.com/xmidt-org/synclab/semaphore"
)

const (
	// Capacity is the number of slots in the buffer.
	Capacity = 5

	// Producers is the number of producer participants.
	Producers = 3

	// Consumers is the number of consumer participants.
	Consumers = 3

	// Protocol is the name of this protocol
	Protocol = "producer-consumer"
)

// Observer is notified from inside the critical section each time an item enters or leaves the buffer.
type Observer interface {
	Produced(item uint64)
	Consumed(item uint64)
}

// Option is a configuration option for a Buffer
type Option func(*Buffer)

// WithFactory sets the factory for the buffer's semaphores.  If nil, semaphore.Default is used.
func WithFactory(f semaphore.Factory) Option {
	return func(b *Buffer) {
		if f != nil {
			b.factory = f
		} else {
			b.factory = semaphore.Default
		}
	}
}

// WithObserver sets an Observer for the buffer.  If nil, no observer is notified.
func WithObserver(o Observer) Option {
	return func(b *Buffer) {
		b.observer = o
	}
}

// Buffer is a bounded FIFO of items guarded by the Spaces, Items and Mutex semaphores.
// The slots are only ever touched while Mutex is held.
type Buffer struct {
	factory  semaphore.Factory
	observer Observer

	spaces semaphore.Interface
	items  semaphore.Interface
	mutex  semaphore.Interface

	slots []uint64
	head  int
	size  int

	sequence atomic.Uint64
}

// New creates a Buffer with the given number of slots.  A nonpositive capacity results in a panic.
func New(capacity int, options ...Option) *Buffer {
	if capacity < 1 {
		panic("The capacity must be positive")
	}

	b := &Buffer{
		factory: semaphore.Default,
		slots:   make([]uint64, capacity),
	}

	for _, o := range options {
		o(b)
	}

	b.spaces = b.factory("spaces", capacity)
	b.items = b.factory("items", 0)
	b.mutex = b.factory("mutex", 1)
	return b
}

// Capacity returns the number of slots in this buffer.
func (b *Buffer) Capacity() int {
	return len(b.slots)
}

// Next returns a new item value, unique within this buffer.
func (b *Buffer) Next() uint64 {
	return b.sequence.Add(1)
}

// Produce inserts an item, blocking while the buffer is full.  If during is not nil, it is invoked
// inside the critical section after the item has been inserted.
//
// If ctx is canceled before the item is inserted, Produce returns ctx.Err() and the buffer is unchanged.
func (b *Buffer) Produce(ctx context.Context, item uint64, during func()) error {
	if err := b.spaces.AcquireCtx(ctx); err != nil {
		return err
	}

	if err := b.mutex.AcquireCtx(ctx); err != nil {
		b.spaces.Release()
		return err
	}

	b.insert(item)
	if b.observer != nil {
		b.observer.Produced(item)
	}

	if during != nil {
		during()
	}

	b.mutex.Release()
	return b.items.Release()
}

// Consume removes the oldest item, blocking while the buffer is empty.  If during is not nil, it is
// invoked with the item inside the critical section after the item has been removed.
//
// If ctx is canceled before an item is removed, Consume returns ctx.Err() and the buffer is unchanged.
func (b *Buffer) Consume(ctx context.Context, during func(uint64)) (uint64, error) {
	if err := b.items.AcquireCtx(ctx); err != nil {
		return 0, err
	}

	if err := b.mutex.AcquireCtx(ctx); err != nil {
		b.items.Release()
		return 0, err
	}

	item := b.remove()
	if b.observer != nil {
		b.observer.Consumed(item)
	}

	if during != nil {
		during(item)
	}

	b.mutex.Release()
	return item, b.spaces.Release()
}

// insert must be called with mutex held and a space acquired.
func (b *Buffer) insert(item uint64) {
	if b.size == len(b.slots) {
		panic("boundedbuffer: insert into a full buffer")
	}

	b.slots[(b.head+b.size)%len(b.slots)] = item
	b.size++
}

// remove must be called with mutex held and an item acquired.
func (b *Buffer) remove() uint64 {
	if b.size == 0 {
		panic("boundedbuffer: remove from an empty buffer")
	}

	item := b.slots[b.head]
	b.head = (b.head + 1) % len(b.slots)
	b.size--
	return item
}
