// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/synclab/clock"
	"github.com/xmidt-org/synclab/clock/clocktest"
)

func TestSystem(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = clock.System()
		before = time.Now()
	)

	c.Sleep(time.Millisecond)
	assert.False(c.Now().Before(before))

	timer := c.NewTimer(time.Millisecond)
	select {
	case <-timer.C():
	case <-time.After(time.Second):
		assert.Fail("the system timer never fired")
	}

	assert.False(timer.Stop())
}

func TestPauseElapsed(t *testing.T) {
	var (
		assert = assert.New(t)
		c      = new(clocktest.Mock)
		timer  = new(clocktest.MockTimer)
		fired  = make(chan time.Time, 1)
	)

	fired <- time.Now()
	c.OnNewTimer(2*time.Second, timer).Once()
	timer.OnC(fired).Once()
	timer.OnStop(false).Once()

	assert.NoError(clock.Pause(context.Background(), c, 2*time.Second))

	c.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func TestPauseCanceled(t *testing.T) {
	var (
		assert      = assert.New(t)
		c           = new(clocktest.Mock)
		timer       = new(clocktest.MockTimer)
		ctx, cancel = context.WithCancel(context.Background())
	)

	cancel()
	c.OnNewTimer(time.Minute, timer).Once()
	timer.OnC(make(chan time.Time)).Once()
	timer.OnStop(true).Once()

	assert.Equal(context.Canceled, clock.Pause(ctx, c, time.Minute))

	c.AssertExpectations(t)
	timer.AssertExpectations(t)
}

func TestPauseZero(t *testing.T) {
	var (
		assert      = assert.New(t)
		c           = new(clocktest.Mock)
		ctx, cancel = context.WithCancel(context.Background())
	)

	assert.NoError(clock.Pause(ctx, c, 0))
	cancel()
	assert.Equal(context.Canceled, clock.Pause(ctx, c, -time.Second))

	c.AssertExpectations(t)
}
