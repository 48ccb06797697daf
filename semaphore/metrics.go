// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/synclab/xmetrics"
)

// Names for our metrics
const (
	ResourcesGauge = "semaphore_resources"
	WaitsCounter   = "semaphore_waits_total"
	ErrorsCounter  = "semaphore_errors_total"
)

// labels
const (
	ProtocolLabel  = "protocol"
	SemaphoreLabel = "semaphore"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       ResourcesGauge,
			Type:       xmetrics.GaugeType,
			Help:       "Net resources taken from each semaphore (acquisitions minus releases)",
			LabelNames: []string{ProtocolLabel, SemaphoreLabel},
		},
		{
			Name:       WaitsCounter,
			Type:       xmetrics.CounterType,
			Help:       "Acquisitions that had to block",
			LabelNames: []string{ProtocolLabel, SemaphoreLabel},
		},
		{
			Name:       ErrorsCounter,
			Type:       xmetrics.CounterType,
			Help:       "Acquisitions that failed due to cancellation, timeout, or close",
			LabelNames: []string{ProtocolLabel, SemaphoreLabel},
		},
	}
}

// Measures describes the defined metrics that will be used by clients
type Measures struct {
	Resources metrics.Gauge
	Waits     metrics.Counter
	Errors    metrics.Counter
}

// NewMeasures realizes desired metrics
func NewMeasures(p provider.Provider) *Measures {
	return &Measures{
		Resources: p.NewGauge(ResourcesGauge),
		Waits:     p.NewCounter(WaitsCounter),
		Errors:    p.NewCounter(ErrorsCounter),
	}
}

// Decorator returns a Pool Decorator that instruments each semaphore, labeled by protocol and semaphore name.
func (m *Measures) Decorator(protocol string) Decorator {
	return func(name string, s Interface) Interface {
		labels := []string{ProtocolLabel, protocol, SemaphoreLabel, name}
		return Instrument(
			s,
			WithResources(m.Resources.With(labels...)),
			WithWaits(m.Waits.With(labels...)),
			WithErrors(m.Errors.With(labels...)),
		)
	}
}
