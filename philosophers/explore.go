// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package philosophers

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Kind identifies a fork acquisition order for Explore.
type Kind int

const (
	// Naive has every philosopher pick up the left fork, then the right.  It can deadlock.
	Naive Kind = iota

	// Footman is the order used by NewFootman.
	Footman

	// Asymmetric is the order used by NewAsymmetric.
	Asymmetric
)

func (k Kind) String() string {
	switch k {
	case Naive:
		return "naive"
	case Footman:
		return FootmanProtocol
	case Asymmetric:
		return AsymmetricProtocol
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrTooFewSeats is returned by Explore for a table with fewer than two seats.
var ErrTooFewSeats = errors.New("a table must have at least two seats")

// footmanResource stands for the footman in an acquisition sequence
const footmanResource = -1

// Report is the result of exploring every interleaving of a dining philosophers system.
type Report struct {
	Kind  Kind
	Seats int

	// States is the number of distinct reachable states.
	States int

	// MaxEating is the largest number of philosophers found eating at the same time.
	MaxEating int

	// Deadlock is the first deadlocked state found, or nil if there is none.  Element i is the
	// number of resources the philosopher at seat i holds.
	Deadlock []int
}

// Deadlocked tests if any reachable state has no possible move.
func (r Report) Deadlocked() bool {
	return r.Deadlock != nil
}

// model is the acquisition sequence of each seat under one Kind.  A philosopher whose program
// counter equals the length of its sequence is eating, and its only move is to put everything down.
type model struct {
	seats int
	steps [][]int
}

func newModel(n int, k Kind) model {
	m := model{
		seats: n,
		steps: make([][]int, n),
	}

	for seat := range m.steps {
		left, right := seat, (seat+1)%n
		switch {
		case k == Footman:
			m.steps[seat] = []int{footmanResource, right, left}
		case k == Asymmetric && seat%2 == 1:
			m.steps[seat] = []int{right, left}
		default:
			m.steps[seat] = []int{left, right}
		}
	}

	return m
}

// available tests if a resource can be acquired in the given state
func (m model) available(state []int, resource int) bool {
	if resource == footmanResource {
		seated := 0
		for _, pc := range state {
			if pc > 0 {
				seated++
			}
		}

		return seated < m.seats-1
	}

	for seat, pc := range state {
		if slices.Contains(m.steps[seat][:pc], resource) {
			return false
		}
	}

	return true
}

// successors returns every state reachable in one move, plus the number of philosophers eating
func (m model) successors(state []int) (next [][]int, eating int) {
	for seat, pc := range state {
		if pc == len(m.steps[seat]) {
			eating++
			s := slices.Clone(state)
			s[seat] = 0
			next = append(next, s)
		} else if m.available(state, m.steps[seat][pc]) {
			s := slices.Clone(state)
			s[seat]++
			next = append(next, s)
		}
	}

	return
}

func key(state []int) string {
	b := make([]byte, len(state))
	for i, pc := range state {
		b[i] = byte(pc)
	}

	return string(b)
}

// Explore visits every reachable state of n philosophers sharing n forks under the given Kind,
// starting with everyone thinking.  Fork handling is modeled as atomic, which is exactly what the
// semaphores provide.
func Explore(n int, k Kind) (Report, error) {
	if n < 2 {
		return Report{}, ErrTooFewSeats
	}

	var (
		m      = newModel(n, k)
		report = Report{Kind: k, Seats: n}
		start  = make([]int, n)
		seen   = map[string]bool{key(start): true}
		queue  = [][]int{start}
	)

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		next, eating := m.successors(state)
		if eating > report.MaxEating {
			report.MaxEating = eating
		}

		if len(next) == 0 && report.Deadlock == nil {
			report.Deadlock = state
		}

		for _, s := range next {
			if id := key(s); !seen[id] {
				seen[id] = true
				queue = append(queue, s)
			}
		}
	}

	report.States = len(seen)
	return report, nil
}
