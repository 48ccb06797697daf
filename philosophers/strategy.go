// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package philosophers

import (
	"context"

	"github.com/xmidt-org/synclab/semaphore"
	"go.uber.org/multierr"
)

const (
	// FootmanProtocol is the name of the footman strategy
	FootmanProtocol = "footman"

	// AsymmetricProtocol is the name of the asymmetric strategy
	AsymmetricProtocol = "asymmetric"
)

// Strategy is a fork acquisition order for a Table.  PickUp either returns nil holding both forks
// of the seat, or returns an error holding nothing.
type Strategy interface {
	PickUp(ctx context.Context, seat int) error
	PutDown(seat int) error
	Table() *Table
	Name() string
}

type footman struct {
	table   *Table
	footman semaphore.Interface
}

// NewFootman creates a Strategy in which a footman seats at most n-1 philosophers at a time, so at
// least one of them can always get both forks.
func NewFootman(t *Table) Strategy {
	return &footman{
		table:   t,
		footman: t.factory("footman", t.Seats()-1),
	}
}

func (f *footman) Table() *Table { return f.table }
func (f *footman) Name() string  { return FootmanProtocol }

func (f *footman) PickUp(ctx context.Context, seat int) error {
	if err := f.footman.AcquireCtx(ctx); err != nil {
		return err
	}

	right, left := f.table.Right(seat), f.table.Left(seat)
	if err := f.table.take(ctx, right, seat); err != nil {
		f.footman.Release()
		return err
	}

	if err := f.table.take(ctx, left, seat); err != nil {
		f.table.give(right, seat)
		f.footman.Release()
		return err
	}

	return nil
}

func (f *footman) PutDown(seat int) error {
	return multierr.Combine(
		f.table.give(f.table.Right(seat), seat),
		f.table.give(f.table.Left(seat), seat),
		f.footman.Release(),
	)
}

type asymmetric struct {
	table *Table
}

// NewAsymmetric creates a Strategy in which even seats reach left first and odd seats reach right
// first, which rules out a cycle of philosophers each holding one fork.
func NewAsymmetric(t *Table) Strategy {
	return &asymmetric{table: t}
}

func (a *asymmetric) Table() *Table { return a.table }
func (a *asymmetric) Name() string  { return AsymmetricProtocol }

// order returns the forks of a seat in pick up order
func (a *asymmetric) order(seat int) (first, second int) {
	if seat%2 == 0 {
		return a.table.Left(seat), a.table.Right(seat)
	}

	return a.table.Right(seat), a.table.Left(seat)
}

func (a *asymmetric) PickUp(ctx context.Context, seat int) error {
	first, second := a.order(seat)
	if err := a.table.take(ctx, first, seat); err != nil {
		return err
	}

	if err := a.table.take(ctx, second, seat); err != nil {
		a.table.give(first, seat)
		return err
	}

	return nil
}

func (a *asymmetric) PutDown(seat int) error {
	return multierr.Combine(
		a.table.give(a.table.Left(seat), seat),
		a.table.give(a.table.Right(seat), seat),
	)
}
