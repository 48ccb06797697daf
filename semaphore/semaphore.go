// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned when a timeout occurs while waiting to acquire a semaphore resource.
	// This error does not apply when using a context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("the semaphore could not be acquired within the timeout")

	// ErrClosed is returned when a closeable semaphore has been closed
	ErrClosed = errors.New("the semaphore has been closed")
)

// Interface represents a semaphore, either binary or counting.  When any acquire method is successful,
// Release *must* be called to return the resource to the semaphore.
type Interface interface {
	// Acquire acquires a resource.  Typically, this method will block forever.  Some semaphore implementations,
	// e.g. closeable semaphores, can immediately return an error from this method.
	Acquire() error

	// AcquireWait attempts to acquire a resource before the given time channel becomes signaled.
	// If the resource was acquired, this method returns nil.  If the time channel gets signaled
	// before a resource is available, ErrTimeout is returned.
	AcquireWait(<-chan time.Time) error

	// AcquireCtx attempts to acquire a resource before the given context is canceled.  If the resource
	// was acquired, this method returns nil.  Otherwise, this method returns ctx.Err().
	AcquireCtx(context.Context) error

	// TryAcquire attempts to acquire a resource, returning false immediately if a resource was unavailable.
	// This method returns true if the resource was acquired.
	TryAcquire() bool

	// Release adds a resource to this semaphore, waking the oldest blocked acquirer if there is one.
	// This method never blocks.  Callers are responsible for never releasing more than they acquired,
	// as no upper bound is enforced.
	//
	// Typically, this method returns a nil error.  It can return a non-nil error, as with a closeable semaphore
	// that has been closed.
	Release() error
}

// New constructs a semaphore with the given initial count.  A zero count is legal and produces a
// semaphore whose first acquire blocks until some other goroutine releases.  A negative count
// results in a panic.
func New(count int) Interface {
	return newSemaphore(count)
}

// Mutex is just syntactic sugar for New(1).  The returned object is a binary semaphore.
func Mutex() Interface {
	return New(1)
}

func newSemaphore(count int) *semaphore {
	if count < 0 {
		panic("The count cannot be negative")
	}

	return &semaphore{
		count:  count,
		closed: make(chan struct{}),
	}
}

// waiter is a single blocked acquirer.  ready is closed when a resource has been handed to it.
type waiter struct {
	ready chan struct{}
}

// semaphore is the internal Interface implementation.  The count and the waiter queue are
// only ever touched while lock is held.
type semaphore struct {
	lock     sync.Mutex
	count    int
	waiters  list.List
	isClosed bool
	closed   chan struct{}
}

// take attempts the fast path.  If no resource is available, a waiter is enqueued and returned.
func (s *semaphore) take() (*list.Element, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.isClosed {
		return nil, ErrClosed
	}

	if s.count > 0 && s.waiters.Len() == 0 {
		s.count--
		return nil, nil
	}

	return s.waiters.PushBack(&waiter{ready: make(chan struct{})}), nil
}

// abandon removes a waiter that gave up.  If a resource was already handed to the waiter,
// the resource is passed along so it is not lost.
func (s *semaphore) abandon(e *list.Element) {
	s.lock.Lock()
	defer s.lock.Unlock()

	w := e.Value.(*waiter)
	select {
	case <-w.ready:
		s.releaseLocked()
	default:
		s.waiters.Remove(e)
	}
}

// wait blocks on an enqueued waiter until it is handed a resource or one of the cancellation
// channels is signaled.
func (s *semaphore) wait(e *list.Element, done <-chan struct{}, expired <-chan time.Time, cause func() error) error {
	w := e.Value.(*waiter)
	select {
	case <-w.ready:
		return nil

	case <-done:
		s.abandon(e)
		return cause()

	case <-expired:
		s.abandon(e)
		return ErrTimeout

	case <-s.closed:
		s.abandon(e)
		return ErrClosed
	}
}

func (s *semaphore) Acquire() error {
	e, err := s.take()
	if err != nil || e == nil {
		return err
	}

	return s.wait(e, nil, nil, nil)
}

func (s *semaphore) AcquireWait(t <-chan time.Time) error {
	e, err := s.take()
	if err != nil || e == nil {
		return err
	}

	return s.wait(e, nil, t, nil)
}

func (s *semaphore) AcquireCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e, err := s.take()
	if err != nil || e == nil {
		return err
	}

	return s.wait(e, ctx.Done(), nil, ctx.Err)
}

func (s *semaphore) TryAcquire() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.isClosed || s.count == 0 || s.waiters.Len() > 0 {
		return false
	}

	s.count--
	return true
}

func (s *semaphore) Release() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.isClosed {
		return ErrClosed
	}

	s.releaseLocked()
	return nil
}

// releaseLocked hands a resource to the oldest waiter, or banks it when nobody is waiting.
// The lock must be held.
func (s *semaphore) releaseLocked() {
	if front := s.waiters.Front(); front != nil {
		s.waiters.Remove(front)
		close(front.Value.(*waiter).ready)
		return
	}

	s.count++
}

// Close marks this semaphore closed.  Every blocked acquirer, and every subsequent acquire
// or release, receives ErrClosed.
func (s *semaphore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.isClosed {
		return ErrClosed
	}

	s.isClosed = true
	close(s.closed)
	return nil
}

func (s *semaphore) Closed() <-chan struct{} {
	return s.closed
}
