// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package audit

import "sync"

const (
	// RoomCheck is the check name for readers-writers violations
	RoomCheck = "room"

	readerRole = "reader"
	writerRole = "writer"
)

// Room checks a readers-writers protocol: a writer is never inside together with anyone else.
// Any number of readers may be inside together.
type Room struct {
	monitor *Monitor

	lock       sync.Mutex
	readers    int
	writers    int
	maxReaders int
	reads      int
	writes     int
}

// Room creates a readers-writers checker reporting to this Monitor.
func (m *Monitor) Room() *Room {
	return &Room{monitor: m}
}

func (r *Room) EnterRead() {
	r.monitor.enter(readerRole)

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.writers > 0 {
		r.monitor.report(RoomCheck, "reader entered with %d writer(s) inside", r.writers)
	}

	r.readers++
	r.reads++
	if r.readers > r.maxReaders {
		r.maxReaders = r.readers
	}
}

func (r *Room) ExitRead() {
	r.lock.Lock()
	r.readers--
	r.lock.Unlock()

	r.monitor.exit(readerRole)
}

func (r *Room) EnterWrite() {
	r.monitor.enter(writerRole)

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.writers > 0 || r.readers > 0 {
		r.monitor.report(RoomCheck, "writer entered with %d reader(s) and %d writer(s) inside", r.readers, r.writers)
	}

	r.writers++
	r.writes++
}

func (r *Room) ExitWrite() {
	r.lock.Lock()
	r.writers--
	r.lock.Unlock()

	r.monitor.exit(writerRole)
}

// MaxReaders returns the largest number of readers observed inside at once.
func (r *Room) MaxReaders() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.maxReaders
}

// Totals returns the number of reads and writes recorded.
func (r *Room) Totals() (reads, writes int) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.reads, r.writes
}
