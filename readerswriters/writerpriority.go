// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package readerswriters

import (
	"context"

	"github.com/xmidt-org/synclab/lightswitch"
	"github.com/xmidt-org/synclab/semaphore"
)

// WriterPriorityProtocol is the name of the writer-priority protocol
const WriterPriorityProtocol = "writer-priority"

type writerPriority struct {
	options

	noReaders   semaphore.Interface
	noWriters   semaphore.Interface
	readSwitch  *lightswitch.Lightswitch
	writeSwitch *lightswitch.Lightswitch
}

// NewWriterPriority creates a Room that favors writers.  The first waiting writer closes noReaders
// through the write switch and the last writer out opens it again.  Readers may starve.
func NewWriterPriority(o ...Option) Room {
	wp := &writerPriority{
		options: newOptions(o),
	}

	wp.noReaders = wp.factory("noReaders", 1)
	wp.noWriters = wp.factory("noWriters", 1)
	wp.readSwitch = wp.newSwitch("readSwitch")
	wp.writeSwitch = wp.newSwitch("writeSwitch")
	return wp
}

func (wp *writerPriority) Protocol() string {
	return WriterPriorityProtocol
}

func (wp *writerPriority) Read(ctx context.Context, read func()) error {
	if err := wp.noReaders.AcquireCtx(ctx); err != nil {
		return err
	}

	if err := wp.readSwitch.LockCtx(ctx, wp.noWriters); err != nil {
		wp.noReaders.Release()
		return err
	}

	wp.noReaders.Release()
	wp.read(read)
	return wp.readSwitch.Unlock(wp.noWriters)
}

func (wp *writerPriority) Write(ctx context.Context, write func()) error {
	if err := wp.writeSwitch.LockCtx(ctx, wp.noReaders); err != nil {
		return err
	}

	if err := wp.noWriters.AcquireCtx(ctx); err != nil {
		wp.writeSwitch.Unlock(wp.noReaders)
		return err
	}

	wp.write(write)
	wp.noWriters.Release()
	return wp.writeSwitch.Unlock(wp.noReaders)
}
