// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package readerswriters

import (
	"context"

	"github.com/xmidt-org/synclab/concurrent"
)

// Reader returns one iteration of a reader's loop: pause, read the room, pause.
func Reader(room Room, p concurrent.Participant) concurrent.Worker {
	return participate(room.Read, "reading", p)
}

// Writer returns one iteration of a writer's loop: pause, write the room, pause.
func Writer(room Room, p concurrent.Participant) concurrent.Worker {
	return participate(room.Write, "writing", p)
}

func participate(enter func(context.Context, func()) error, phase string, p concurrent.Participant) concurrent.Worker {
	return func(ctx context.Context) error {
		if err := p.Pause(ctx, p.Pace.Before); err != nil {
			return err
		}

		if !p.Budget.Take() {
			return concurrent.ErrDone
		}

		err := enter(ctx, func() {
			p.Narrate(phase)
			p.Pause(ctx, p.Pace.During)
		})

		if err != nil {
			return err
		}

		return p.Pause(ctx, p.Pace.After)
	}
}
