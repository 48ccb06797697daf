// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/synclab/xmetrics"
)

// Names for our metrics
const (
	CriticalSectionsCounter = "critical_sections_total"
	InCriticalSectionGauge  = "in_critical_section"
	ViolationsCounter       = "invariant_violations_total"
)

// labels
const (
	ProtocolLabel = "protocol"
	RoleLabel     = "role"
	CheckLabel    = "check"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       CriticalSectionsCounter,
			Type:       xmetrics.CounterType,
			Help:       "Critical sections entered, by role",
			LabelNames: []string{ProtocolLabel, RoleLabel},
		},
		{
			Name:       InCriticalSectionGauge,
			Type:       xmetrics.GaugeType,
			Help:       "Participants currently inside a critical section, by role",
			LabelNames: []string{ProtocolLabel, RoleLabel},
		},
		{
			Name:       ViolationsCounter,
			Type:       xmetrics.CounterType,
			Help:       "Observed breaches of protocol invariants",
			LabelNames: []string{ProtocolLabel, CheckLabel},
		},
	}
}

// Measures describes the defined metrics that will be used by clients
type Measures struct {
	CriticalSections  metrics.Counter
	InCriticalSection metrics.Gauge
	Violations        metrics.Counter
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		CriticalSections:  p.NewCounter(CriticalSectionsCounter),
		InCriticalSection: p.NewGauge(InCriticalSectionGauge),
		Violations:        p.NewCounter(ViolationsCounter),
	}
}
