// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"os"
	"sync"
)

// Runnable represents any operation that can spawn zero or more goroutines.
type Runnable interface {
	// Run spawns this operation's goroutines, possibly returning an error if the operation
	// could not be started.  This method is responsible for calling WaitGroup.Add() and
	// WaitGroup.Done() appropriately, and every spawned goroutine must exit once ctx is done.
	Run(ctx context.Context, waitGroup *sync.WaitGroup) error
}

// RunnableFunc is a function type that implements Runnable
type RunnableFunc func(context.Context, *sync.WaitGroup) error

func (r RunnableFunc) Run(ctx context.Context, waitGroup *sync.WaitGroup) error {
	return r(ctx, waitGroup)
}

// RunnableSet is a slice type that allows grouping of operations.  Operations are run in order,
// and the first error stops the set.  Callers are expected to cancel the context in that case
// so that the operations already started wind down.
type RunnableSet []Runnable

func (set RunnableSet) Run(ctx context.Context, waitGroup *sync.WaitGroup) error {
	for _, operation := range set {
		if err := operation.Run(ctx, waitGroup); err != nil {
			return err
		}
	}

	return nil
}

// Await uses Execute() to invoke a runnable, then waits for any traffic on a signal channel or
// for the fleet to finish on its own, whichever is first, before shutting down gracefully.
func Await(runnable Runnable, signals <-chan os.Signal) error {
	fleet, err := Execute(context.Background(), runnable)
	if err != nil {
		return err
	}

	select {
	case <-signals:
	case <-fleet.Done():
	}

	fleet.Stop()
	<-fleet.Done()
	return nil
}
