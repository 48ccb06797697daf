// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// logSummary logs the final value of every protocol metric.  Runtime metrics such as the go
// collector's are skipped.
func logSummary(logger *zap.Logger, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		if strings.HasPrefix(family.GetName(), "go_") {
			continue
		}

		for _, m := range family.GetMetric() {
			fields := make([]zap.Field, 0, len(m.GetLabel())+2)
			fields = append(fields, zap.String("metric", family.GetName()))
			for _, label := range m.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}

			switch {
			case m.GetCounter() != nil:
				fields = append(fields, zap.Float64("value", m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				fields = append(fields, zap.Float64("value", m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				fields = append(fields, zap.Uint64("count", m.GetHistogram().GetSampleCount()))
			}

			logger.Info("metric", fields...)
		}
	}

	return nil
}
