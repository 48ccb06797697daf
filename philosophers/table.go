// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package philosophers implements two deadlock-free solutions to the dining philosophers problem.

Philosophers sit around a Table with one fork between each pair of neighbors.  Seats and forks
are numbered from zero, and the philosopher at seat i needs fork Left(i) == i and fork
Right(i) == (i+1) % n to eat.  A Strategy decides the order in which forks are picked up.
*/
package philosophers

import (
	"context"
	"strconv"

	"github.com/xmidt-org/synclab/semaphore"
)

// Seats is the number of philosophers at the table.
const Seats = 5

// Observer is notified of fork handling and meals.  audit.Exclusive satisfies this interface.
type Observer interface {
	Took(fork, seat int)
	Gave(fork, seat int)
	Using(seat int, forks ...int)
	Done(seat int)
}

type nopObserver struct{}

func (nopObserver) Took(int, int)     {}
func (nopObserver) Gave(int, int)     {}
func (nopObserver) Using(int, ...int) {}
func (nopObserver) Done(int)          {}

// Option is a configuration option for a Table
type Option func(*Table)

// WithFactory sets the factory for the table's semaphores.  If nil, semaphore.Default is used.
func WithFactory(f semaphore.Factory) Option {
	return func(t *Table) {
		if f != nil {
			t.factory = f
		} else {
			t.factory = semaphore.Default
		}
	}
}

// WithObserver sets an Observer for the table.  If nil, no observer is notified.
func WithObserver(o Observer) Option {
	return func(t *Table) {
		if o != nil {
			t.observer = o
		} else {
			t.observer = nopObserver{}
		}
	}
}

// Table is a fixed ring of forks, each a binary semaphore.
type Table struct {
	factory  semaphore.Factory
	observer Observer
	forks    []semaphore.Interface
}

// NewTable sets a table for n philosophers.  There must be at least two seats.
func NewTable(n int, o ...Option) *Table {
	if n < 2 {
		panic("A table must have at least two seats")
	}

	t := &Table{
		factory:  semaphore.Default,
		observer: nopObserver{},
		forks:    make([]semaphore.Interface, n),
	}

	for _, f := range o {
		f(t)
	}

	for i := range t.forks {
		t.forks[i] = t.factory("fork"+strconv.Itoa(i), 1)
	}

	return t
}

// Seats returns the number of philosophers at this table.
func (t *Table) Seats() int {
	return len(t.forks)
}

// Left returns the fork on the left of a seat.
func (t *Table) Left(seat int) int {
	return seat
}

// Right returns the fork on the right of a seat.
func (t *Table) Right(seat int) int {
	return (seat + 1) % len(t.forks)
}

// take picks up a fork on behalf of a seat
func (t *Table) take(ctx context.Context, fork, seat int) error {
	if err := t.forks[fork].AcquireCtx(ctx); err != nil {
		return err
	}

	t.observer.Took(fork, seat)
	return nil
}

// give puts down a fork held by a seat
func (t *Table) give(fork, seat int) error {
	t.observer.Gave(fork, seat)
	return t.forks[fork].Release()
}

// Eat executes a meal for the given seat, which must hold both of its forks.
func (t *Table) Eat(seat int, meal func()) {
	t.observer.Using(seat, t.Left(seat), t.Right(seat))
	defer t.observer.Done(seat)
	if meal != nil {
		meal()
	}
}
