// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package philosophers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/synclab/audit"
	"github.com/xmidt-org/synclab/semaphore"
	"go.uber.org/zap/zaptest"
)

var strategies = []struct {
	name string
	new  func(*Table) Strategy
}{
	{FootmanProtocol, NewFootman},
	{AsymmetricProtocol, NewAsymmetric},
}

func TestNewTable(t *testing.T) {
	var (
		assert = assert.New(t)
		pool   = semaphore.NewPool()
		table  = NewTable(Seats, WithFactory(pool.New), WithObserver(nil))
	)

	assert.Panics(func() { NewTable(1) })
	assert.Equal(Seats, table.Seats())
	assert.Equal(Seats, pool.Len())

	for seat := 0; seat < Seats; seat++ {
		assert.Equal(seat, table.Left(seat))
	}

	assert.Equal(1, table.Right(0))
	assert.Equal(0, table.Right(Seats-1))
	assert.NoError(pool.Close())
}

func TestFootmanSeatsAllButOne(t *testing.T) {
	var (
		assert   = assert.New(t)
		require  = require.New(t)
		table    = NewTable(Seats)
		strategy = NewFootman(table)
		ctx      = context.Background()
	)

	require.NoError(strategy.PickUp(ctx, 0))
	require.NoError(strategy.PickUp(ctx, 2))

	// seats 1 and 3 are blocked on forks, which still consumes the footman
	blocked := make(chan error, 2)
	for _, seat := range []int{1, 3} {
		seat := seat
		go func() { blocked <- strategy.PickUp(ctx, seat) }()
	}

	time.Sleep(100 * time.Millisecond)
	shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	assert.Equal(context.DeadlineExceeded, strategy.PickUp(shortCtx, 4), "the footman should turn away the last philosopher")

	require.NoError(strategy.PutDown(0))
	require.NoError(strategy.PutDown(2))
	for i := 0; i < 2; i++ {
		select {
		case err := <-blocked:
			assert.NoError(err)
		case <-time.After(5 * time.Second):
			require.Fail("a blocked philosopher never ate")
		}
	}

	require.NoError(strategy.PutDown(1))
	require.NoError(strategy.PutDown(3))
	assert.NoError(strategy.PickUp(ctx, 4))
	assert.NoError(strategy.PutDown(4))
}

func TestAsymmetricOrder(t *testing.T) {
	var (
		assert   = assert.New(t)
		monitor  = audit.New(audit.WithLogger(zaptest.NewLogger(t)))
		forks    = monitor.Exclusive("philosopher", Seats)
		table    = NewTable(Seats, WithObserver(forks))
		strategy = NewAsymmetric(table)
	)

	// an odd seat takes its right fork first and then blocks on the left one
	assert.True(table.forks[table.Left(1)].TryAcquire())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Equal(context.DeadlineExceeded, strategy.PickUp(ctx, 1))
	assert.Equal(-1, forks.Owner(table.Right(1)), "a canceled pick up must put the first fork back")
	assert.NoError(table.forks[table.Left(1)].Release())

	assert.NoError(strategy.PickUp(context.Background(), 1))
	assert.Equal(1, forks.Owner(table.Left(1)))
	assert.Equal(1, forks.Owner(table.Right(1)))
	assert.NoError(strategy.PutDown(1))
	assert.NoError(monitor.Err())
}

func testStrategyExclusion(t *testing.T, newStrategy func(*Table) Strategy) {
	const meals = 100

	var (
		assert   = assert.New(t)
		monitor  = audit.New(audit.WithLogger(zaptest.NewLogger(t)))
		forks    = monitor.Exclusive("philosopher", Seats)
		strategy = newStrategy(NewTable(Seats, WithObserver(forks)))
		ctx      = context.Background()

		waitGroup sync.WaitGroup
	)

	waitGroup.Add(Seats)
	for seat := 0; seat < Seats; seat++ {
		seat := seat
		go func() {
			defer waitGroup.Done()
			for i := 0; i < meals; i++ {
				if !assert.NoError(strategy.PickUp(ctx, seat)) {
					return
				}

				strategy.Table().Eat(seat, nil)
				assert.NoError(strategy.PutDown(seat))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		waitGroup.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		assert.Fail("the philosophers deadlocked")
		return
	}

	assert.NoError(monitor.Err())
	assert.Equal(Seats*meals, forks.Uses())
	for fork := 0; fork < Seats; fork++ {
		assert.Equal(-1, forks.Owner(fork))
	}
}

func TestStrategy(t *testing.T) {
	for _, s := range strategies {
		s := s
		t.Run(s.name, func(t *testing.T) {
			assert.Equal(t, s.name, s.new(NewTable(Seats)).Name())
			t.Run("Exclusion", func(t *testing.T) { testStrategyExclusion(t, s.new) })
		})
	}
}
