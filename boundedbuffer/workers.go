// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package boundedbuffer

import (
	"context"

	"github.com/xmidt-org/synclab/concurrent"
	"go.uber.org/zap"
)

// Producer returns one iteration of a producer's loop: pause, then add a new item to the buffer.
// When the participant's budget is exhausted the worker reports concurrent.ErrDone.
func Producer(b *Buffer, p concurrent.Participant) concurrent.Worker {
	return func(ctx context.Context) error {
		if err := p.Pause(ctx, p.Pace.Before); err != nil {
			return err
		}

		if !p.Budget.Take() {
			return concurrent.ErrDone
		}

		item := b.Next()
		err := b.Produce(ctx, item, func() {
			p.Narrate("adding item to buffer", zap.Uint64("item", item))
			p.Pause(ctx, p.Pace.During)
		})

		if err != nil {
			return err
		}

		return p.Pause(ctx, p.Pace.After)
	}
}

// Consumer returns one iteration of a consumer's loop: remove the oldest item from the buffer, then pause.
// When the participant's budget is exhausted the worker reports concurrent.ErrDone.
func Consumer(b *Buffer, p concurrent.Participant) concurrent.Worker {
	return func(ctx context.Context) error {
		if err := p.Pause(ctx, p.Pace.Before); err != nil {
			return err
		}

		if !p.Budget.Take() {
			return concurrent.ErrDone
		}

		_, err := b.Consume(ctx, func(item uint64) {
			p.Narrate("removing item from buffer", zap.Uint64("item", item))
			p.Pause(ctx, p.Pace.During)
		})

		if err != nil {
			return err
		}

		return p.Pause(ctx, p.Pace.After)
	}
}
