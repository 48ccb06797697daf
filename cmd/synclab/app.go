// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"

	"github.com/xmidt-org/synclab/audit"
	"github.com/xmidt-org/synclab/concurrent"
	"github.com/xmidt-org/synclab/philosophers"
	"github.com/xmidt-org/synclab/semaphore"
	"github.com/xmidt-org/synclab/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrDeadlock is returned when exploration finds a reachable deadlock
var ErrDeadlock = errors.New("the strategy can deadlock")

func provideRegistry(c Config) (xmetrics.Registry, error) {
	return xmetrics.NewRegistry(&c.Metrics, semaphore.Metrics, audit.Metrics)
}

// providePool creates the pool every semaphore of the run comes from, instrumented for the registry
func providePool(r xmetrics.Registry, p problem) *semaphore.Pool {
	return semaphore.NewPool(
		semaphore.NewMeasures(r).Decorator(p.Protocol),
	)
}

// provideMonitor returns nil unless auditing is configured
func provideMonitor(c Config, r xmetrics.Registry, p problem, logger *zap.Logger) *audit.Monitor {
	if !c.Audit {
		return nil
	}

	return audit.New(
		audit.WithLogger(logger),
		audit.WithMeasures(p.Protocol, audit.NewMeasures(r)),
	)
}

type runnableIn struct {
	fx.In

	Config  Config
	Logger  *zap.Logger
	Problem problem
	Pool    *semaphore.Pool
	Monitor *audit.Monitor
}

func provideRunnable(in runnableIn) (concurrent.Runnable, error) {
	return in.Problem.New(setup{
		config:  in.Config,
		logger:  in.Logger,
		factory: in.Pool.New,
		monitor: in.Monitor,
	})
}

// explore verifies the selected philosophers strategy, if so configured, before anything starts
func explore(c Config, p problem, logger *zap.Logger) error {
	if !c.Explore || !p.explorable() {
		return nil
	}

	report, err := philosophers.Explore(philosophers.Seats, p.Kind)
	if err != nil {
		return err
	}

	logger.Info(
		"explored every interleaving",
		zap.Stringer("kind", report.Kind),
		zap.Int("seats", report.Seats),
		zap.Int("states", report.States),
		zap.Int("maxEating", report.MaxEating),
	)

	if report.Deadlocked() {
		logger.Error("deadlock found", zap.Ints("held", report.Deadlock))
		return ErrDeadlock
	}

	return nil
}

type runIn struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Problem    problem
	Runnable   concurrent.Runnable
	Pool       *semaphore.Pool
	Monitor    *audit.Monitor
	Registry   xmetrics.Registry
}

// run starts the participants with the application and joins them, then tears down their
// semaphores, when the application stops.  A fleet that finishes on its own shuts the application down.
func run(in runIn) {
	var fleet *concurrent.Fleet
	in.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) (err error) {
			in.Logger.Info("starting", zap.String("protocol", in.Problem.Protocol))
			fleet, err = concurrent.Execute(context.Background(), in.Runnable)
			if err != nil {
				return err
			}

			go func() {
				<-fleet.Done()
				in.Logger.Info("all participants have finished")
				in.Shutdowner.Shutdown()
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			fleet.Stop()
			select {
			case <-fleet.Done():
			case <-ctx.Done():
				// semaphores must outlive every participant, so they are not closed here
				in.Logger.Error("participants did not stop in time", zap.Error(ctx.Err()))
				return ctx.Err()
			}

			err := in.Pool.Close()
			if in.Monitor != nil {
				err = multierr.Append(err, in.Monitor.Err())
			}

			err = multierr.Append(err, logSummary(in.Logger, in.Registry))
			in.Logger.Info("stopped", zap.String("protocol", in.Problem.Protocol))
			return err
		},
	})
}

// newApp assembles a run of the given problem
func newApp(c Config, logger *zap.Logger, p problem) *fx.App {
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		fx.Supply(c, logger, p),
		fx.StopTimeout(c.Shutdown.Timeout),
		fx.Provide(
			provideRegistry,
			providePool,
			provideMonitor,
			provideRunnable,
		),
		fx.Invoke(
			explore,
			run,
		),
	)
}
