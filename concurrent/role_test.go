// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idle returns a factory whose workers block until canceled
func idle(created *int32) Factory {
	return func(id int) (Worker, error) {
		atomic.AddInt32(created, 1)
		return func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}, nil
	}
}

func TestRoleRun(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		created int32
		lock    sync.Mutex
		exits   = make(map[int]error)

		r = Role{
			Name:    "reader",
			Count:   5,
			Factory: idle(&created),
			OnExit: func(id int, err error) {
				lock.Lock()
				exits[id] = err
				lock.Unlock()
			},
		}

		waitGroup   = new(sync.WaitGroup)
		ctx, cancel = context.WithCancel(context.Background())
	)

	require.NoError(r.Run(ctx, waitGroup))
	assert.Equal(int32(5), atomic.LoadInt32(&created))

	cancel()
	require.True(WaitTimeout(waitGroup, 2*time.Second))

	assert.Len(exits, 5)
	for id := 1; id <= 5; id++ {
		assert.Equal(context.Canceled, exits[id])
	}
}

func TestRoleRunFactoryFailure(t *testing.T) {
	var (
		assert    = assert.New(t)
		expected  = errors.New("expected")
		started   int32
		waitGroup = new(sync.WaitGroup)

		r = Role{
			Name:  "writer",
			Count: 5,
			Factory: func(id int) (Worker, error) {
				if id == 3 {
					return nil, expected
				}

				return func(ctx context.Context) error {
					atomic.AddInt32(&started, 1)
					return ErrDone
				}, nil
			},
		}
	)

	err := r.Run(context.Background(), waitGroup)
	var spawnErr *SpawnError
	assert.True(errors.As(err, &spawnErr))
	assert.Equal("writer", spawnErr.Role)
	assert.Equal(3, spawnErr.ID)
	assert.ErrorIs(err, expected)
	assert.Contains(err.Error(), "writer 3")

	assert.True(WaitTimeout(waitGroup, time.Second))
	assert.Zero(atomic.LoadInt32(&started), "no participant should start when any cannot be created")
}

func TestRoleRunInvalid(t *testing.T) {
	t.Run("NoCount", func(t *testing.T) {
		r := Role{Name: "philosopher", Factory: idle(new(int32))}
		assert.Error(t, r.Run(context.Background(), new(sync.WaitGroup)))
	})

	t.Run("NilWorker", func(t *testing.T) {
		r := Role{
			Name:    "philosopher",
			Count:   1,
			Factory: func(int) (Worker, error) { return nil, nil },
		}

		assert.Error(t, r.Run(context.Background(), new(sync.WaitGroup)))
	})
}

func TestRoleWorkerDone(t *testing.T) {
	var (
		assert     = assert.New(t)
		iterations int32
		exitErr    = make(chan error, 1)
		waitGroup  = new(sync.WaitGroup)

		r = Role{
			Name:  "producer",
			Count: 1,
			Factory: func(int) (Worker, error) {
				return func(context.Context) error {
					if atomic.AddInt32(&iterations, 1) == 3 {
						return ErrDone
					}

					return nil
				}, nil
			},
			OnExit: func(_ int, err error) {
				exitErr <- err
			},
		}
	)

	assert.NoError(r.Run(context.Background(), waitGroup))
	assert.True(WaitTimeout(waitGroup, time.Second))
	assert.Equal(int32(3), atomic.LoadInt32(&iterations))
	assert.Equal(ErrDone, <-exitErr)
}
