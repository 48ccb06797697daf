// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/xmidt-org/synclab/boundedbuffer"
	"github.com/xmidt-org/synclab/concurrent"
	"github.com/xmidt-org/synclab/philosophers"
	"github.com/xmidt-org/synclab/readerswriters"
	"github.com/xmidt-org/synclab/xmetrics"
	"github.com/xmidt-org/synclab/xviper"
)

const (
	IterationsKey = "iterations"
	AuditKey      = "audit"
	ExploreKey    = "explore"
	PaceKey       = "pace"
	MetricsKey    = "metrics"
	ShutdownKey   = "shutdown"

	// DefaultShutdownTimeout is used when no positive shutdown timeout is configured
	DefaultShutdownTimeout = 15 * time.Second
)

// Shutdown is the configuration for stopping a run
type Shutdown struct {
	// Timeout bounds the time spent joining participants and tearing down
	Timeout time.Duration
}

// Paces holds the pace of each role of each protocol, e.g. Paces["no-starve"]["reader"]
type Paces map[string]map[string]concurrent.Pace

// Config is the runtime configuration of a single protocol run.
type Config struct {
	// Iterations bounds the run.  Each role gets this many iterations in total, shared among its
	// participants.  Nonpositive means run until signaled.
	Iterations int

	// Audit turns on the invariant checkers.
	Audit bool

	// Explore verifies a philosophers strategy against every interleaving before starting.
	Explore bool

	Pace     Paces
	Metrics  xmetrics.Options
	Shutdown Shutdown
}

// pace returns the pace of a role, which is zero if not configured
func (c Config) pace(protocol, role string) concurrent.Pace {
	return c.Pace[protocol][role]
}

// defaults reproduce the pacing of the classic demonstration
var defaults = xviper.Defaults{
	IterationsKey: 0,
	AuditKey:      false,
	ExploreKey:    false,

	paceKey(boundedbuffer.Protocol, producerRole, "before"): "3s",
	paceKey(boundedbuffer.Protocol, consumerRole, "after"):  "5s",

	paceKey(readerswriters.NoStarveProtocol, readerRole, "before"): "1s",
	paceKey(readerswriters.NoStarveProtocol, readerRole, "during"): "1s",
	paceKey(readerswriters.NoStarveProtocol, readerRole, "after"):  "2s",
	paceKey(readerswriters.NoStarveProtocol, writerRole, "before"): "3s",
	paceKey(readerswriters.NoStarveProtocol, writerRole, "during"): "1s",
	paceKey(readerswriters.NoStarveProtocol, writerRole, "after"):  "2s",

	paceKey(philosophers.FootmanProtocol, philosopherRole, "before"):    "2s",
	paceKey(philosophers.FootmanProtocol, philosopherRole, "during"):    "2s",
	paceKey(philosophers.AsymmetricProtocol, philosopherRole, "before"): "2s",
	paceKey(philosophers.AsymmetricProtocol, philosopherRole, "during"): "2s",

	MetricsKey + ".namespace": xmetrics.DefaultNamespace,
	MetricsKey + ".subsystem": xmetrics.DefaultSubsystem,
	ShutdownKey + ".timeout":  DefaultShutdownTimeout.String(),
}

func paceKey(protocol, role, phase string) string {
	return fmt.Sprintf("%s.%s.%s.%s", PaceKey, protocol, role, phase)
}

// newConfig reads the Config out of a fully configured Viper.  Paces are read key by key for every
// role of every known problem so that defaults and overrides merge at the level of a single phase.
func newConfig(v *viper.Viper) (Config, error) {
	c := Config{
		Iterations: v.GetInt(IterationsKey),
		Audit:      v.GetBool(AuditKey),
		Explore:    v.GetBool(ExploreKey),
		Pace:       make(Paces, len(problems)),
	}

	for _, p := range problems {
		roles := make(map[string]concurrent.Pace, len(p.Roles))
		for _, role := range p.Roles {
			var (
				pace concurrent.Pace
				err  error
			)

			phases := []struct {
				name   string
				target *time.Duration
			}{
				{"before", &pace.Before},
				{"during", &pace.During},
				{"after", &pace.After},
			}

			for _, phase := range phases {
				key := paceKey(p.Protocol, role, phase.name)
				raw := v.Get(key)
				if raw == nil {
					continue
				}

				if *phase.target, err = cast.ToDurationE(raw); err != nil {
					return Config{}, fmt.Errorf("invalid %s: %w", key, err)
				} else if *phase.target < 0 {
					return Config{}, fmt.Errorf("invalid %s: negative duration %s", key, *phase.target)
				}
			}

			roles[role] = pace
		}

		c.Pace[p.Protocol] = roles
	}

	if err := xviper.UnmarshalKey(v, MetricsKey, &c.Metrics); err != nil {
		return Config{}, fmt.Errorf("invalid %s configuration: %w", MetricsKey, err)
	}

	if err := xviper.UnmarshalKey(v, ShutdownKey, &c.Shutdown); err != nil {
		return Config{}, fmt.Errorf("invalid %s configuration: %w", ShutdownKey, err)
	}

	if c.Shutdown.Timeout <= 0 {
		c.Shutdown.Timeout = DefaultShutdownTimeout
	}

	return c, nil
}
