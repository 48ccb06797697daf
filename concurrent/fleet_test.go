// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// success returns a runnable that simulates a successfully started long-running task
func success(runCount *uint32) Runnable {
	return RunnableFunc(func(ctx context.Context, waitGroup *sync.WaitGroup) error {
		atomic.AddUint32(runCount, 1)
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			<-ctx.Done()
		}()

		return nil
	})
}

// fail returns a runnable that simulates a task that failed to start
func fail(runCount *uint32) Runnable {
	return RunnableFunc(func(context.Context, *sync.WaitGroup) error {
		atomic.AddUint32(runCount, 1)
		return errors.New("expected error")
	})
}

func TestRunnableSetRun(t *testing.T) {
	var actualRunCount uint32
	success := success(&actualRunCount)
	fail := fail(&actualRunCount)

	testData := []struct {
		runnable         RunnableSet
		expectedRunCount uint32
		expectErr        bool
	}{
		{nil, 0, false},
		{RunnableSet{}, 0, false},
		{RunnableSet{success}, 1, false},
		{RunnableSet{fail}, 1, true},
		{RunnableSet{success, success}, 2, false},
		{RunnableSet{success, fail, success}, 2, true},
		{RunnableSet{success, success, fail, success, success, fail}, 3, true},
		{RunnableSet{success, success, success, success, success}, 5, false},
	}

	for _, record := range testData {
		actualRunCount = 0
		waitGroup := new(sync.WaitGroup)
		ctx, cancel := context.WithCancel(context.Background())

		err := record.runnable.Run(ctx, waitGroup)
		assert.Equal(t, record.expectErr, err != nil)

		cancel()
		assert.True(t, WaitTimeout(waitGroup, 2*time.Second), "Blocked on WaitGroup longer than the timeout")
		assert.Equal(t, record.expectedRunCount, actualRunCount)
	}
}

func TestExecuteSuccess(t *testing.T) {
	var (
		assert         = assert.New(t)
		require        = require.New(t)
		actualRunCount uint32
	)

	fleet, err := Execute(context.Background(), success(&actualRunCount))
	require.NoError(err)
	require.NotNil(fleet)
	assert.Equal(uint32(1), actualRunCount)

	select {
	case <-fleet.Done():
		assert.Fail("the fleet should still be running")
	default:
	}

	fleet.Stop()
	fleet.Stop()
	assert.True(fleet.Wait(2 * time.Second))

	select {
	case <-fleet.Done():
	case <-time.After(time.Second):
		assert.Fail("Done was not closed after the fleet stopped")
	}
}

func TestExecuteFail(t *testing.T) {
	var (
		assert         = assert.New(t)
		actualRunCount uint32
		stopped        = make(chan struct{})
	)

	started := RunnableFunc(func(ctx context.Context, waitGroup *sync.WaitGroup) error {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			defer close(stopped)
			<-ctx.Done()
		}()

		return nil
	})

	fleet, err := Execute(context.Background(), RunnableSet{started, fail(&actualRunCount)})
	assert.Error(err)
	assert.Nil(fleet)

	select {
	case <-stopped:
		// the partial fleet was joined before Execute returned
	default:
		assert.Fail("Execute returned with a partially started fleet")
	}
}

func TestAwait(t *testing.T) {
	t.Run("Signal", func(t *testing.T) {
		var (
			actualRunCount uint32
			signals        = make(chan os.Signal, 1)
			result         = make(chan error)
		)

		go func() {
			result <- Await(success(&actualRunCount), signals)
		}()

		signals <- syscall.SIGTERM
		select {
		case err := <-result:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			assert.Fail(t, "Await did not return after a signal")
		}
	})

	t.Run("Finished", func(t *testing.T) {
		finished := Role{
			Name:  "consumer",
			Count: 2,
			Factory: func(int) (Worker, error) {
				return func(context.Context) error { return ErrDone }, nil
			},
		}

		assert.NoError(t, Await(finished, make(chan os.Signal)))
	})

	t.Run("Fail", func(t *testing.T) {
		var actualRunCount uint32
		assert.Error(t, Await(fail(&actualRunCount), make(chan os.Signal)))
	})
}

func TestBudget(t *testing.T) {
	t.Run("Unlimited", func(t *testing.T) {
		var b *Budget
		assert.Nil(t, NewBudget(0))
		assert.Nil(t, NewBudget(-3))
		for i := 0; i < 100; i++ {
			assert.True(t, b.Take())
		}

		assert.Equal(t, -1, b.Remaining())
	})

	t.Run("Concurrent", func(t *testing.T) {
		var (
			b         = NewBudget(100)
			taken     int64
			waitGroup = new(sync.WaitGroup)
		)

		waitGroup.Add(8)
		for i := 0; i < 8; i++ {
			go func() {
				defer waitGroup.Done()
				for b.Take() {
					atomic.AddInt64(&taken, 1)
				}
			}()
		}

		waitGroup.Wait()
		assert.Equal(t, int64(100), taken)
		assert.Zero(t, b.Remaining())
		assert.False(t, b.Take())
	})
}
