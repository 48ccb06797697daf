// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package readerswriters implements two solutions to the readers-writers problem.

Both admit any number of readers into the room together and a writer only into an empty room.
They differ in fairness.  NewNoStarve lines everyone up at a turnstile, so a waiting writer holds
back readers that arrive after it.  NewWriterPriority lets writers jump ahead: once any writer is
waiting, no new reader may enter until every queued writer has finished.
*/
package readerswriters

import (
	"context"

	"github.com/xmidt-org/synclab/lightswitch"
	"github.com/xmidt-org/synclab/semaphore"
)

const (
	// Readers is the number of reader participants.
	Readers = 5

	// Writers is the number of writer participants.
	Writers = 5
)

// Room is shared data guarded by a readers-writers protocol.  The given function is executed
// inside the room with the appropriate access.  If ctx is canceled while waiting to enter, the
// function is not executed, ctx.Err() is returned, and nothing is left held.
type Room interface {
	Read(ctx context.Context, read func()) error
	Write(ctx context.Context, write func()) error

	// Protocol is the name of the protocol guarding this room
	Protocol() string
}

// Observer is notified from inside the room as participants enter and leave.
type Observer interface {
	EnterRead()
	ExitRead()
	EnterWrite()
	ExitWrite()
}

type nopObserver struct{}

func (nopObserver) EnterRead()  {}
func (nopObserver) ExitRead()   {}
func (nopObserver) EnterWrite() {}
func (nopObserver) ExitWrite()  {}

type options struct {
	factory  semaphore.Factory
	observer Observer
}

// Option is a configuration option for a Room
type Option func(*options)

// WithFactory sets the factory for the room's semaphores.  If nil, semaphore.Default is used.
func WithFactory(f semaphore.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		} else {
			o.factory = semaphore.Default
		}
	}
}

// WithObserver sets an Observer for the room.  If nil, no observer is notified.
func WithObserver(ob Observer) Option {
	return func(o *options) {
		if ob != nil {
			o.observer = ob
		} else {
			o.observer = nopObserver{}
		}
	}
}

func newOptions(o []Option) options {
	opts := options{
		factory:  semaphore.Default,
		observer: nopObserver{},
	}

	for _, f := range o {
		f(&opts)
	}

	return opts
}

func (o options) newSwitch(name string) *lightswitch.Lightswitch {
	return lightswitch.NewWith(o.factory(name, 1))
}

func (o options) read(read func()) {
	o.observer.EnterRead()
	defer o.observer.ExitRead()
	if read != nil {
		read()
	}
}

func (o options) write(write func()) {
	o.observer.EnterWrite()
	defer o.observer.ExitWrite()
	if write != nil {
		write()
	}
}
