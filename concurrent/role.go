// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDone is returned by a Worker that has no more work to do.  The worker's loop exits cleanly.
var ErrDone = errors.New("the worker has no more work")

// Worker is a single iteration of a participant's loop.  An iteration must not return while
// holding any shared resource.  Any non-nil error ends the loop.
type Worker func(ctx context.Context) error

// Factory creates the Worker for the participant with the given id.
type Factory func(id int) (Worker, error)

// SpawnError reports a participant that could not be created.
type SpawnError struct {
	Role string
	ID   int
	Err  error
}

func (se *SpawnError) Error() string {
	return fmt.Sprintf("could not create %s %d: %s", se.Role, se.ID, se.Err)
}

func (se *SpawnError) Unwrap() error {
	return se.Err
}

// Role is a Runnable that spawns Count participants numbered 1 through Count, each looping over
// the Worker that Factory produced for it until the context is canceled or the Worker fails.
type Role struct {
	// Name identifies the role, e.g. "producer".  It is used in errors only.
	Name string

	// Count is the number of participants.  It must be positive.
	Count int

	// Factory produces each participant's Worker.
	Factory Factory

	// OnExit is optional.  If set, it is invoked with the error that ended a participant's loop.
	// A loop ended by cancellation reports ctx.Err(), and a loop ended by ErrDone reports ErrDone.
	OnExit func(id int, err error)
}

// Run creates every participant before starting any of them.  If a participant cannot be created,
// nothing from this role is started.
func (r Role) Run(ctx context.Context, waitGroup *sync.WaitGroup) error {
	if r.Count < 1 {
		return &SpawnError{Role: r.Name, ID: r.Count, Err: errors.New("the count must be positive")}
	}

	workers := make([]Worker, r.Count)
	for i := range workers {
		w, err := r.Factory(i + 1)
		if err == nil && w == nil {
			err = errors.New("no worker was created")
		}

		if err != nil {
			return &SpawnError{Role: r.Name, ID: i + 1, Err: err}
		}

		workers[i] = w
	}

	waitGroup.Add(len(workers))
	for i, w := range workers {
		go r.loop(ctx, waitGroup, i+1, w)
	}

	return nil
}

func (r Role) loop(ctx context.Context, waitGroup *sync.WaitGroup, id int, w Worker) {
	defer waitGroup.Done()

	var err error
	for err == nil {
		if err = ctx.Err(); err == nil {
			err = w(ctx)
		}
	}

	if r.OnExit != nil {
		r.OnExit(id, err)
	}
}
