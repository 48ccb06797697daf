// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lightswitch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/synclab/semaphore"
)

func TestFirstInLastOut(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ls      = New()
		gate    = semaphore.Mutex()
	)

	require.NoError(ls.Lock(gate))
	assert.False(gate.TryAcquire(), "the first member should hold the gate")

	require.NoError(ls.Lock(gate))
	require.NoError(ls.Lock(gate))

	require.NoError(ls.Unlock(gate))
	require.NoError(ls.Unlock(gate))
	assert.False(gate.TryAcquire(), "the gate is released only by the last member")

	require.NoError(ls.Unlock(gate))
	assert.True(gate.TryAcquire(), "the last member should release the gate")
}

func TestLockBlocksOnHeldGate(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ls      = New()
		gate    = semaphore.Mutex()
	)

	require.True(gate.TryAcquire())

	first := make(chan error)
	go func() {
		first <- ls.Lock(gate)
	}()

	select {
	case <-first:
		require.FailNow("Lock should block while the gate is held")
	case <-time.After(50 * time.Millisecond):
	}

	// a second member queues behind the first rather than slipping past the gate
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Equal(context.DeadlineExceeded, ls.LockCtx(ctx, gate))

	require.NoError(gate.Release())

	select {
	case err := <-first:
		assert.NoError(err)
	case <-time.After(time.Second):
		require.FailNow("Lock did not acquire the released gate")
	}

	require.NoError(ls.Unlock(gate))
	assert.True(gate.TryAcquire())
}

func TestLockCtxRollback(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ls      = New()
		gate    = semaphore.Mutex()
	)

	require.True(gate.TryAcquire())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Equal(context.DeadlineExceeded, ls.LockCtx(ctx, gate))

	require.NoError(gate.Release())

	// the canceled member never joined, so the next member is again first in
	require.NoError(ls.Lock(gate))
	assert.False(gate.TryAcquire())
	require.NoError(ls.Unlock(gate))
	assert.True(gate.TryAcquire())
}

func TestGroupExclusion(t *testing.T) {
	const (
		members    = 6
		outsiders  = 3
		iterations = 200
	)

	var (
		ls   = New()
		gate = semaphore.Mutex()
		wg   = new(sync.WaitGroup)

		inside     int32
		outside    int32
		violations int32
		overlap    int32
	)

	wg.Add(members + outsiders)
	for i := 0; i < members; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				ls.Lock(gate)
				n := atomic.AddInt32(&inside, 1)
				if atomic.LoadInt32(&outside) != 0 {
					atomic.AddInt32(&violations, 1)
				}

				if n > 1 {
					atomic.StoreInt32(&overlap, 1)
				}

				time.Sleep(10 * time.Microsecond)
				atomic.AddInt32(&inside, -1)
				ls.Unlock(gate)
			}
		}()
	}

	for i := 0; i < outsiders; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				gate.Acquire()
				atomic.AddInt32(&outside, 1)
				if atomic.LoadInt32(&inside) != 0 {
					atomic.AddInt32(&violations, 1)
				}

				atomic.AddInt32(&outside, -1)
				gate.Release()
			}
		}()
	}

	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&violations))
	assert.Equal(t, int32(1), atomic.LoadInt32(&overlap), "members should share the gate")
	assert.True(t, gate.TryAcquire())
}

func TestNewWith(t *testing.T) {
	var (
		assert = assert.New(t)
		pool   = semaphore.NewPool()
		ls     = NewWith(pool.New("readSwitch", 1))
		gate   = pool.New("roomEmpty", 1)
	)

	assert.Equal(2, pool.Len())
	assert.NoError(ls.Lock(gate))
	assert.NoError(ls.Unlock(gate))
	assert.NoError(pool.Close())

	// a closed mutex fails the lightswitch rather than blocking forever
	assert.Equal(semaphore.ErrClosed, ls.Lock(gate))
}
