// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package readerswriters

import (
	"context"

	"github.com/xmidt-org/synclab/lightswitch"
	"github.com/xmidt-org/synclab/semaphore"
)

// NoStarveProtocol is the name of the no-starve protocol
const NoStarveProtocol = "no-starve"

type noStarve struct {
	options

	turnstile  semaphore.Interface
	roomEmpty  semaphore.Interface
	readSwitch *lightswitch.Lightswitch
}

// NewNoStarve creates a Room in which neither readers nor writers starve.  Every participant passes
// through a shared turnstile, and a writer keeps the turnstile while it waits for the room to empty.
func NewNoStarve(o ...Option) Room {
	ns := &noStarve{
		options: newOptions(o),
	}

	ns.turnstile = ns.factory("turnstile", 1)
	ns.roomEmpty = ns.factory("roomEmpty", 1)
	ns.readSwitch = ns.newSwitch("readSwitch")
	return ns
}

func (ns *noStarve) Protocol() string {
	return NoStarveProtocol
}

func (ns *noStarve) Read(ctx context.Context, read func()) error {
	if err := ns.turnstile.AcquireCtx(ctx); err != nil {
		return err
	}

	ns.turnstile.Release()
	if err := ns.readSwitch.LockCtx(ctx, ns.roomEmpty); err != nil {
		return err
	}

	ns.read(read)
	return ns.readSwitch.Unlock(ns.roomEmpty)
}

func (ns *noStarve) Write(ctx context.Context, write func()) error {
	if err := ns.turnstile.AcquireCtx(ctx); err != nil {
		return err
	}

	if err := ns.roomEmpty.AcquireCtx(ctx); err != nil {
		ns.turnstile.Release()
		return err
	}

	ns.write(write)
	ns.turnstile.Release()
	return ns.roomEmpty.Release()
}
