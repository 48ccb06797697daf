// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/xmidt-org/synclab/audit"
	"github.com/xmidt-org/synclab/boundedbuffer"
	"github.com/xmidt-org/synclab/concurrent"
	"github.com/xmidt-org/synclab/philosophers"
	"github.com/xmidt-org/synclab/readerswriters"
	"github.com/xmidt-org/synclab/semaphore"
	"go.uber.org/zap"
)

const (
	producerRole    = "producer"
	consumerRole    = "consumer"
	readerRole      = "reader"
	writerRole      = "writer"
	philosopherRole = "philosopher"
)

// setup is everything needed to build the participants of a problem
type setup struct {
	config  Config
	logger  *zap.Logger
	factory semaphore.Factory

	// monitor is nil when auditing is off
	monitor *audit.Monitor
}

// role builds a concurrent.Role whose participants share one budget of the configured iterations
func (s setup) role(protocol, name string, count int, newWorker func(concurrent.Participant) (concurrent.Worker, error)) concurrent.Role {
	var (
		pace   = s.config.pace(protocol, name)
		budget = concurrent.NewBudget(s.config.Iterations)
		logger = s.logger.With(zap.String("protocol", protocol), zap.String("role", name))
	)

	return concurrent.Role{
		Name:  name,
		Count: count,
		Factory: func(id int) (concurrent.Worker, error) {
			return newWorker(concurrent.Participant{
				ID:     id,
				Logger: logger.With(zap.Int("id", id)),
				Pace:   pace,
				Budget: budget,
			})
		},
		OnExit: func(id int, err error) {
			switch {
			case errors.Is(err, concurrent.ErrDone):
				logger.Debug("participant finished", zap.Int("id", id))
			case errors.Is(err, context.Canceled):
				logger.Debug("participant stopped", zap.Int("id", id))
			default:
				logger.Error("participant failed", zap.Int("id", id), zap.Error(err))
			}
		},
	}
}

// problem is one of the selectable demonstrations
type problem struct {
	Selector int
	Protocol string
	Title    string
	Roles    []string

	// Kind is the strategy explored before a philosophers run.  It is ignored for other problems.
	Kind philosophers.Kind

	New func(setup) (concurrent.Runnable, error)
}

// explorable tests if this problem can be verified with philosophers.Explore
func (p problem) explorable() bool {
	return p.Protocol == philosophers.FootmanProtocol || p.Protocol == philosophers.AsymmetricProtocol
}

var problems = []problem{
	{
		Selector: 1,
		Protocol: boundedbuffer.Protocol,
		Title:    fmt.Sprintf("producer-consumer (%d producers, %d consumers, buffer of %d)", boundedbuffer.Producers, boundedbuffer.Consumers, boundedbuffer.Capacity),
		Roles:    []string{producerRole, consumerRole},
		New:      newProducerConsumer,
	},
	{
		Selector: 2,
		Protocol: readerswriters.NoStarveProtocol,
		Title:    fmt.Sprintf("no-starve readers-writers (%d readers, %d writers)", readerswriters.Readers, readerswriters.Writers),
		Roles:    []string{readerRole, writerRole},
		New:      newRoom(readerswriters.NewNoStarve),
	},
	{
		Selector: 3,
		Protocol: readerswriters.WriterPriorityProtocol,
		Title:    fmt.Sprintf("writer-priority readers-writers (%d readers, %d writers)", readerswriters.Readers, readerswriters.Writers),
		Roles:    []string{readerRole, writerRole},
		New:      newRoom(readerswriters.NewWriterPriority),
	},
	{
		Selector: 4,
		Protocol: philosophers.FootmanProtocol,
		Title:    fmt.Sprintf("dining philosophers with a footman (%d philosophers)", philosophers.Seats),
		Roles:    []string{philosopherRole},
		Kind:     philosophers.Footman,
		New:      newTable(philosophers.FootmanProtocol, philosophers.NewFootman),
	},
	{
		Selector: 5,
		Protocol: philosophers.AsymmetricProtocol,
		Title:    fmt.Sprintf("asymmetric dining philosophers (%d philosophers)", philosophers.Seats),
		Roles:    []string{philosopherRole},
		Kind:     philosophers.Asymmetric,
		New:      newTable(philosophers.AsymmetricProtocol, philosophers.NewAsymmetric),
	},
}

// findProblem returns the problem with the given selector
func findProblem(selector int) (problem, bool) {
	for _, p := range problems {
		if p.Selector == selector {
			return p, true
		}
	}

	return problem{}, false
}

func newProducerConsumer(s setup) (concurrent.Runnable, error) {
	options := []boundedbuffer.Option{boundedbuffer.WithFactory(s.factory)}
	if s.monitor != nil {
		options = append(options, boundedbuffer.WithObserver(s.monitor.Occupancy(boundedbuffer.Capacity)))
	}

	b := boundedbuffer.New(boundedbuffer.Capacity, options...)
	return concurrent.RunnableSet{
		s.role(boundedbuffer.Protocol, producerRole, boundedbuffer.Producers, func(p concurrent.Participant) (concurrent.Worker, error) {
			return boundedbuffer.Producer(b, p), nil
		}),
		s.role(boundedbuffer.Protocol, consumerRole, boundedbuffer.Consumers, func(p concurrent.Participant) (concurrent.Worker, error) {
			return boundedbuffer.Consumer(b, p), nil
		}),
	}, nil
}

func newRoom(construct func(...readerswriters.Option) readerswriters.Room) func(setup) (concurrent.Runnable, error) {
	return func(s setup) (concurrent.Runnable, error) {
		options := []readerswriters.Option{readerswriters.WithFactory(s.factory)}
		if s.monitor != nil {
			options = append(options, readerswriters.WithObserver(s.monitor.Room()))
		}

		room := construct(options...)
		return concurrent.RunnableSet{
			s.role(room.Protocol(), readerRole, readerswriters.Readers, func(p concurrent.Participant) (concurrent.Worker, error) {
				return readerswriters.Reader(room, p), nil
			}),
			s.role(room.Protocol(), writerRole, readerswriters.Writers, func(p concurrent.Participant) (concurrent.Worker, error) {
				return readerswriters.Writer(room, p), nil
			}),
		}, nil
	}
}

func newTable(protocol string, newStrategy func(*philosophers.Table) philosophers.Strategy) func(setup) (concurrent.Runnable, error) {
	return func(s setup) (concurrent.Runnable, error) {
		options := []philosophers.Option{philosophers.WithFactory(s.factory)}
		if s.monitor != nil {
			options = append(options, philosophers.WithObserver(s.monitor.Exclusive(philosopherRole, philosophers.Seats)))
		}

		strategy := newStrategy(philosophers.NewTable(philosophers.Seats, options...))
		return s.role(protocol, philosopherRole, philosophers.Seats, func(p concurrent.Participant) (concurrent.Worker, error) {
			if p.ID < 1 || p.ID > strategy.Table().Seats() {
				return nil, fmt.Errorf("no seat %d at a table of %d", p.ID, strategy.Table().Seats())
			}

			return philosophers.Philosopher(strategy, p), nil
		}), nil
	}
}
