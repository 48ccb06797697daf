// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/sallust"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Violation describes one observed breach of a protocol invariant.
type Violation struct {
	Check  string
	Detail string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s violated: %s", v.Check, v.Detail)
}

// Option is a configuration option for a Monitor
type Option func(*Monitor)

// WithLogger sets the logger used to report violations.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		} else {
			m.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for critical sections and violations.  A nil Measures discards them.
func WithMeasures(protocol string, ms *Measures) Option {
	return func(m *Monitor) {
		if ms == nil {
			m.violations = discard.NewCounter()
			m.sections = discard.NewCounter()
			m.occupants = discard.NewGauge()
			return
		}

		m.violations = ms.Violations.With(ProtocolLabel, protocol)
		m.sections = ms.CriticalSections.With(ProtocolLabel, protocol)
		m.occupants = ms.InCriticalSection.With(ProtocolLabel, protocol)
	}
}

// Monitor is the shared sink for every checker of one protocol run.
type Monitor struct {
	logger     *zap.Logger
	violations metrics.Counter
	sections   metrics.Counter
	occupants  metrics.Gauge

	lock  sync.Mutex
	found []error
}

// New creates a Monitor.  By default, violations are logged with sallust.Default() and metrics are discarded.
func New(options ...Option) *Monitor {
	m := &Monitor{
		logger:     sallust.Default(),
		violations: discard.NewCounter(),
		sections:   discard.NewCounter(),
		occupants:  discard.NewGauge(),
	}

	for _, o := range options {
		o(m)
	}

	return m
}

func (m *Monitor) report(check, format string, args ...interface{}) {
	v := &Violation{
		Check:  check,
		Detail: fmt.Sprintf(format, args...),
	}

	m.lock.Lock()
	m.found = append(m.found, v)
	m.lock.Unlock()

	m.violations.With(CheckLabel, check).Add(1.0)
	m.logger.Error("invariant violated", zap.String("check", check), zap.String("detail", v.Detail))
}

func (m *Monitor) enter(role string) {
	m.sections.With(RoleLabel, role).Add(1.0)
	m.occupants.With(RoleLabel, role).Add(1.0)
}

func (m *Monitor) exit(role string) {
	m.occupants.With(RoleLabel, role).Add(-1.0)
}

// Violations returns a copy of every violation recorded so far.
func (m *Monitor) Violations() []error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]error{}, m.found...)
}

// Err returns nil if no violations were recorded, or all of them combined.
func (m *Monitor) Err() error {
	return multierr.Combine(m.Violations()...)
}
