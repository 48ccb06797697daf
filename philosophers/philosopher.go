// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package philosophers

import (
	"context"

	"github.com/xmidt-org/synclab/concurrent"
)

// Philosopher returns one iteration of a philosopher's life: think, get hungry, eat, and put the
// forks down.  The participant's ID is its 1-based seat number.  Pace.Before is the thinking time
// and Pace.During the eating time.
func Philosopher(s Strategy, p concurrent.Participant) concurrent.Worker {
	seat := p.ID - 1
	return func(ctx context.Context) error {
		p.Narrate("thinking")
		if err := p.Pause(ctx, p.Pace.Before); err != nil {
			return err
		}

		if !p.Budget.Take() {
			return concurrent.ErrDone
		}

		p.Narrate("hungry")
		if err := s.PickUp(ctx, seat); err != nil {
			return err
		}

		s.Table().Eat(seat, func() {
			p.Narrate("eating")
			p.Pause(ctx, p.Pace.During)
		})

		if err := s.PutDown(seat); err != nil {
			return err
		}

		p.Narrate("finished eating")
		return p.Pause(ctx, p.Pace.After)
	}
}
