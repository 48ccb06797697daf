// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package audit

import "sync"

// ExclusiveCheck is the check name for single-owner resource violations
const ExclusiveCheck = "exclusive"

const nobody = -1

// Exclusive checks a fixed set of resources, e.g. forks, each of which may have at most one owner.
type Exclusive struct {
	monitor *Monitor
	role    string

	lock   sync.Mutex
	owners []int
	held   []int
	uses   int
}

// Exclusive creates a checker for n single-owner resources held by participants of the given role.
func (m *Monitor) Exclusive(role string, n int) *Exclusive {
	e := &Exclusive{
		monitor: m,
		role:    role,
		owners:  make([]int, n),
		held:    make([]int, n),
	}

	for i := range e.owners {
		e.owners[i] = nobody
	}

	return e
}

// Took records that owner acquired the resource.
func (e *Exclusive) Took(resource, owner int) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if current := e.owners[resource]; current != nobody {
		e.monitor.report(ExclusiveCheck, "%s %d took resource %d held by %d", e.role, owner, resource, current)
	}

	e.owners[resource] = owner
	e.held[owner]++
}

// Gave records that owner released the resource.
func (e *Exclusive) Gave(resource, owner int) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if current := e.owners[resource]; current != owner {
		e.monitor.report(ExclusiveCheck, "%s %d gave back resource %d held by %d", e.role, owner, resource, current)
	}

	e.owners[resource] = nobody
	e.held[owner]--
}

// Using records the start of a critical section that requires the owner to hold the given resources.
func (e *Exclusive) Using(owner int, resources ...int) {
	e.monitor.enter(e.role)

	e.lock.Lock()
	defer e.lock.Unlock()

	for _, r := range resources {
		if e.owners[r] != owner {
			e.monitor.report(ExclusiveCheck, "%s %d is using resource %d held by %d", e.role, owner, r, e.owners[r])
		}
	}

	e.uses++
}

// Done records the end of a critical section started with Using.
func (e *Exclusive) Done(int) {
	e.monitor.exit(e.role)
}

// Owner returns the current owner of a resource, or -1 if it is free.
func (e *Exclusive) Owner(resource int) int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.owners[resource]
}

// Stalled reports whether every participant holds exactly one resource, the configuration in which
// a naive protocol deadlocks.  Owners are assumed to be numbered 0 through n-1.
func (e *Exclusive) Stalled() bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	for _, h := range e.held {
		if h != 1 {
			return false
		}
	}

	return true
}

// Uses returns the number of critical sections recorded.
func (e *Exclusive) Uses() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.uses
}
