// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package audit

import "sync"

const (
	// OccupancyCheck is the check name for bounded buffer violations
	OccupancyCheck = "occupancy"

	producerRole = "producer"
	consumerRole = "consumer"
)

// Occupancy checks a bounded buffer: the items produced but not yet consumed never exceed the
// capacity, and no item is consumed that was not first produced.
type Occupancy struct {
	monitor  *Monitor
	capacity int

	lock     sync.Mutex
	pending  map[uint64]bool
	produced int
	consumed int
	high     int
}

// Occupancy creates a bounded buffer checker reporting to this Monitor.
func (m *Monitor) Occupancy(capacity int) *Occupancy {
	return &Occupancy{
		monitor:  m,
		capacity: capacity,
		pending:  make(map[uint64]bool, capacity),
	}
}

// Produced records that an item was inserted into the buffer.
func (o *Occupancy) Produced(item uint64) {
	o.monitor.enter(producerRole)
	defer o.monitor.exit(producerRole)

	o.lock.Lock()
	defer o.lock.Unlock()

	if o.pending[item] {
		o.monitor.report(OccupancyCheck, "item %d produced twice", item)
	}

	o.pending[item] = true
	o.produced++
	if level := len(o.pending); level > o.capacity {
		o.monitor.report(OccupancyCheck, "occupancy %d exceeds capacity %d", level, o.capacity)
	} else if level > o.high {
		o.high = level
	}
}

// Consumed records that an item was removed from the buffer.
func (o *Occupancy) Consumed(item uint64) {
	o.monitor.enter(consumerRole)
	defer o.monitor.exit(consumerRole)

	o.lock.Lock()
	defer o.lock.Unlock()

	if !o.pending[item] {
		o.monitor.report(OccupancyCheck, "item %d consumed before it was produced", item)
		return
	}

	delete(o.pending, item)
	o.consumed++
}

// Level returns the number of items produced but not yet consumed.
func (o *Occupancy) Level() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return len(o.pending)
}

// High returns the highest level observed.
func (o *Occupancy) High() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.high
}

// Totals returns the number of produce and consume events recorded.
func (o *Occupancy) Totals() (produced, consumed int) {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.produced, o.consumed
}
