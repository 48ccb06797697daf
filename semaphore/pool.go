// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"sync"

	"go.uber.org/multierr"
)

// Factory creates a named semaphore with an initial count.  The name identifies the semaphore's
// role within a protocol, e.g. "spaces" or "roomEmpty".
type Factory func(name string, count int) Interface

// Default is the Factory that simply delegates to New.
func Default(_ string, count int) Interface {
	return New(count)
}

// Decorator wraps a named semaphore, e.g. with Instrument.
type Decorator func(name string, s Interface) Interface

// Pool is a Factory that remembers every semaphore it creates so that they can be torn down together.
// Every semaphore from a Pool is Closeable underneath any decoration.
type Pool struct {
	decorators []Decorator

	lock       sync.Mutex
	closeables []Closeable
}

// NewPool creates an empty Pool.  Each decorator is applied, in order, to every semaphore the Pool creates.
func NewPool(decorators ...Decorator) *Pool {
	return &Pool{
		decorators: append([]Decorator{}, decorators...),
	}
}

// New is a Factory that creates a closeable semaphore owned by this Pool.
func (p *Pool) New(name string, count int) Interface {
	cs := NewCloseable(count)

	p.lock.Lock()
	p.closeables = append(p.closeables, cs)
	p.lock.Unlock()

	var s Interface = cs
	for _, d := range p.decorators {
		s = d(name, s)
	}

	return s
}

// Len returns the number of semaphores created by this Pool.
func (p *Pool) Len() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.closeables)
}

// Close closes every semaphore in this Pool.  This must only happen after every goroutine using
// the Pool's semaphores has stopped.
func (p *Pool) Close() (err error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	for _, cs := range p.closeables {
		err = multierr.Append(err, cs.Close())
	}

	return
}
