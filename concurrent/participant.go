// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"time"

	"github.com/xmidt-org/sallust"
	"github.com/xmidt-org/synclab/clock"
	"go.uber.org/zap"
)

// Pace holds the deliberate pauses of one worker iteration.  Before and After are spent outside of
// any synchronization, During is spent inside the critical section.
type Pace struct {
	Before time.Duration `json:"before"`
	During time.Duration `json:"during"`
	After  time.Duration `json:"after"`
}

// Participant is everything a worker needs besides the protocol it participates in.
type Participant struct {
	// ID is the participant's number within its role.  It is used for attribution only.
	ID int

	// Logger narrates phase transitions.  If nil, sallust.Default() is used.
	Logger *zap.Logger

	// Clock drives pauses.  If nil, the system clock is used.
	Clock clock.Interface

	Pace Pace

	// Budget limits the total iterations of every participant sharing it.  Nil is unlimited.
	Budget *Budget
}

// Pause waits for d unless ctx is canceled first.
func (p Participant) Pause(ctx context.Context, d time.Duration) error {
	c := p.Clock
	if c == nil {
		c = clock.System()
	}

	return clock.Pause(ctx, c, d)
}

// Narrate logs a phase transition at info level.
func (p Participant) Narrate(phase string, fields ...zap.Field) {
	l := p.Logger
	if l == nil {
		l = sallust.Default()
	}

	l.Info(phase, fields...)
}
