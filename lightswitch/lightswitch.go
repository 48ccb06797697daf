// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package lightswitch lets a group of goroutines collectively hold a single gate semaphore.

The first member of the group to arrive turns the light on, acquiring the gate.  The last member
to leave turns it off, releasing the gate.  Members in between pass straight through, so any
number of same-role goroutines share the gate at the cost of one acquisition.
*/
package lightswitch

import (
	"context"

	"github.com/xmidt-org/synclab/semaphore"
)

// Lightswitch is a group membership counter guarding an external gate.  The counter is private and
// only ever read or written while the internal mutex is held.  A Lightswitch must be used with the
// same gate for every Lock and Unlock.
type Lightswitch struct {
	mutex   semaphore.Interface
	members int
}

// New creates a Lightswitch with no members.
func New() *Lightswitch {
	return NewWith(semaphore.Mutex())
}

// NewWith creates a Lightswitch that guards its member count with the given binary semaphore,
// which must be available.  This lets a caller supply an instrumented semaphore.
func NewWith(mutex semaphore.Interface) *Lightswitch {
	return &Lightswitch{
		mutex: mutex,
	}
}

// Lock joins the group.  The member that moves the group from empty to occupied acquires the gate
// before any other member can get past Lock, which may block.
func (ls *Lightswitch) Lock(gate semaphore.Interface) error {
	return ls.LockCtx(context.Background(), gate)
}

// LockCtx is Lock with cancellation.  If the context is canceled while waiting, the caller has not
// joined the group and the gate has not been acquired on its behalf.
func (ls *Lightswitch) LockCtx(ctx context.Context, gate semaphore.Interface) error {
	if err := ls.mutex.AcquireCtx(ctx); err != nil {
		return err
	}

	defer ls.mutex.Release()
	ls.members++
	if ls.members == 1 {
		if err := gate.AcquireCtx(ctx); err != nil {
			ls.members--
			return err
		}
	}

	return nil
}

// Unlock leaves the group.  The last member out releases the gate.
func (ls *Lightswitch) Unlock(gate semaphore.Interface) error {
	if err := ls.mutex.Acquire(); err != nil {
		return err
	}

	defer ls.mutex.Release()
	ls.members--
	if ls.members == 0 {
		return gate.Release()
	}

	return nil
}
