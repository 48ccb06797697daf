// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/synclab/xmetrics"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a gauge that tracks the net resources taken from the semaphore, i.e. successful
// acquisitions minus releases.  If a nil gauge is supplied, resource counts are discarded.
func WithResources(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.resources = a
		} else {
			i.resources = discard.NewGauge()
		}
	}
}

// WithErrors establishes a metric that tracks how many errors, or failed resource acquisitions,
// happen when attempting to acquire resources.  If a nil counter is supplied, error counts
// are discarded.
func WithErrors(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.errors = a
		} else {
			i.errors = discard.NewCounter()
		}
	}
}

// WithWaits establishes a metric that counts the acquisitions which could not be satisfied
// immediately and had to block.  If a nil counter is supplied, wait counts are discarded.
func WithWaits(a xmetrics.Adder) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if a != nil {
			i.waits = a
		} else {
			i.waits = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewGauge(),
		errors:    discard.NewCounter(),
		waits:     discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources xmetrics.Adder
	errors    xmetrics.Adder
	waits     xmetrics.Adder
}

func (is *instrumentedSemaphore) record(err error) error {
	if err != nil {
		is.errors.Add(1.0)
	} else {
		is.resources.Add(1.0)
	}

	return err
}

func (is *instrumentedSemaphore) Acquire() error {
	if is.Interface.TryAcquire() {
		return is.record(nil)
	}

	is.waits.Add(1.0)
	return is.record(is.Interface.Acquire())
}

func (is *instrumentedSemaphore) AcquireWait(t <-chan time.Time) error {
	if is.Interface.TryAcquire() {
		return is.record(nil)
	}

	is.waits.Add(1.0)
	return is.record(is.Interface.AcquireWait(t))
}

func (is *instrumentedSemaphore) AcquireCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return is.record(err)
	}

	if is.Interface.TryAcquire() {
		return is.record(nil)
	}

	is.waits.Add(1.0)
	return is.record(is.Interface.AcquireCtx(ctx))
}

func (is *instrumentedSemaphore) TryAcquire() bool {
	if is.Interface.TryAcquire() {
		is.resources.Add(1.0)
		return true
	}

	return false
}

func (is *instrumentedSemaphore) Release() error {
	err := is.Interface.Release()
	if err == nil {
		is.resources.Add(-1.0)
	}

	return err
}
