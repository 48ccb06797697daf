// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import "sync/atomic"

// Budget is a shared, fixed supply of tickets.  Workers that should run a bounded number of
// iterations in total take a ticket before each iteration.  A nil Budget is unlimited.
type Budget struct {
	remaining atomic.Int64
}

// NewBudget returns a Budget holding n tickets.  A nonpositive n returns nil, i.e. an unlimited budget.
func NewBudget(n int) *Budget {
	if n <= 0 {
		return nil
	}

	b := new(Budget)
	b.remaining.Store(int64(n))
	return b
}

// Take claims a ticket, returning false once the supply is exhausted.
func (b *Budget) Take() bool {
	if b == nil {
		return true
	}

	return b.remaining.Add(-1) >= 0
}

// Remaining returns the number of unclaimed tickets, or -1 for an unlimited budget.
func (b *Budget) Remaining() int {
	if b == nil {
		return -1
	}

	if r := b.remaining.Load(); r > 0 {
		return int(r)
	}

	return 0
}
