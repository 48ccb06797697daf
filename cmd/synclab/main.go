// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Command synclab runs one of the classic semaphore synchronization problems until it is signaled,
or until a bounded number of iterations completes.

	synclab [flags] <problem>

The problem is selected by number.  Run with no arguments for the list.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/xmidt-org/synclab/concurrent"
	"github.com/xmidt-org/synclab/logging"
	"github.com/xmidt-org/synclab/xviper"
	"go.uber.org/zap"
)

const applicationName = "synclab"

// UsageError indicates a command line that does not select exactly one known problem
type UsageError struct {
	Reason string
}

func (ue *UsageError) Error() string {
	return ue.Reason
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringP(xviper.DefaultFileFlag, "f", "", "the fully qualified path to the configuration file")
	fs.StringP(xviper.DefaultNameFlag, "n", "", "the name of the configuration file to search for")
	fs.IntP(IterationsKey, "i", 0, "the total iterations of each role, after which the run ends (0 runs until signaled)")
	fs.Bool(AuditKey, false, "check the invariants of the protocol while it runs")
	fs.Bool(ExploreKey, false, "verify a philosophers strategy against every interleaving before running it")
	return fs
}

func printUsage(output io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(output, "Usage: %s [flags] <problem>\n\nProblems:\n", applicationName)
	for _, p := range problems {
		fmt.Fprintf(output, "  %d  %s\n", p.Selector, p.Title)
	}

	fmt.Fprintf(output, "\nFlags:\n%s", fs.FlagUsages())
}

// parse parses the command line and selects the problem to run
func parse(fs *pflag.FlagSet, arguments []string) (problem, error) {
	if err := fs.Parse(arguments); err != nil {
		return problem{}, err
	}

	if fs.NArg() != 1 {
		return problem{}, &UsageError{Reason: fmt.Sprintf("expected exactly one problem, got %d arguments", fs.NArg())}
	}

	selector, err := cast.ToIntE(fs.Arg(0))
	if err != nil {
		return problem{}, &UsageError{Reason: fmt.Sprintf("invalid problem %q", fs.Arg(0))}
	}

	p, ok := findProblem(selector)
	if !ok {
		return problem{}, &UsageError{Reason: fmt.Sprintf("no such problem: %d", selector)}
	}

	return p, nil
}

// synclab is the testable body of main.  Usage goes to stdout, and the return value is the exit code.
func synclab(arguments []string, stdout io.Writer) int {
	fs := newFlagSet(stdout)
	p, err := parse(fs, arguments)
	if errors.Is(err, pflag.ErrHelp) {
		printUsage(stdout, fs)
		return 0
	} else if err != nil {
		fmt.Fprintln(stdout, err)
		printUsage(stdout, fs)
		return 1
	}

	v, err := xviper.New(xviper.StdOptions(applicationName, fs, defaults)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	c, err := newConfig(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	lc, err := logging.FromViper(logging.Sub(v))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging configuration: %s\n", err)
		return 1
	}

	logger, err := logging.New(lc, zap.Fields(zap.Stringer("run", ksuid.New())))
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %s\n", err)
		return 1
	}

	defer logger.Sync()

	app := newApp(c, logger, p)
	if err := app.Err(); err != nil {
		logger.Error("unable to assemble the run", zap.Error(err))
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		var spawnErr *concurrent.SpawnError
		if errors.As(err, &spawnErr) {
			logger.Error("unable to create participant", zap.String("role", spawnErr.Role), zap.Int("id", spawnErr.ID), zap.Error(spawnErr.Err))
		} else {
			logger.Error("unable to start", zap.Error(err))
		}

		return 1
	}

	signal := <-app.Done()
	logger.Info("shutting down", zap.Stringer("signal", signal))

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("unclean shutdown", zap.Error(err))
		return 1
	}

	return 0
}

func main() {
	os.Exit(synclab(os.Args[1:], os.Stdout))
}
