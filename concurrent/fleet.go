// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"sync"
	"time"
)

// Fleet is a managed collection of goroutines started by a Runnable.  A Fleet is always joinable:
// Stop cancels the context given to every goroutine, and Done is closed once all of them have exited.
type Fleet struct {
	waitGroup *sync.WaitGroup
	cancel    context.CancelFunc
	done      chan struct{}
}

// Execute starts a runnable under a context derived from parent.  If the runnable fails to start,
// anything it did start is stopped and joined before the error is returned, so there is never a
// partially started fleet.
func Execute(parent context.Context, runnable Runnable) (*Fleet, error) {
	ctx, cancel := context.WithCancel(parent)
	f := &Fleet{
		waitGroup: new(sync.WaitGroup),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	err := runnable.Run(ctx, f.waitGroup)
	go func() {
		defer close(f.done)
		f.waitGroup.Wait()
	}()

	if err != nil {
		f.Stop()
		<-f.done
		return nil, err
	}

	return f, nil
}

// Stop signals every goroutine in this fleet to exit.  This method is idempotent and does not wait.
func (f *Fleet) Stop() {
	f.cancel()
}

// Done returns a channel that is closed when every goroutine in this fleet has exited.
func (f *Fleet) Done() <-chan struct{} {
	return f.done
}

// Wait waits up to the given timeout for the fleet to exit, returning true if it did.
func (f *Fleet) Wait(timeout time.Duration) bool {
	return WaitTimeout(f.waitGroup, timeout)
}
