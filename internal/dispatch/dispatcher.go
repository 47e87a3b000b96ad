// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/interpreter"
	"github.com/matt-FFFFFF/scriptlauncher/internal/progress"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// Resolver maps a script to its launch spec.
type Resolver interface {
	Resolve(f script.File, elevated bool) (interpreter.LaunchSpec, bool)
}

var _ Resolver = (*interpreter.Resolver)(nil)

// Dispatcher launches scripts and waits for them.
type Dispatcher struct {
	resolver Resolver
	starter  Starter
	reporter progress.Reporter
	out      io.Writer
	plan     io.Writer
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithStarter replaces the process starter.
func WithStarter(s Starter) Option {
	return func(d *Dispatcher) {
		d.starter = s
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r progress.Reporter) Option {
	return func(d *Dispatcher) {
		d.reporter = r
	}
}

// WithOutput sets the sink for launch failure messages. Defaults to os.Stderr.
// Writes are serialised, see SyncWriter.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// WithDryRun writes the command line of each script to w instead of starting it.
// A nil writer disables dry run.
func WithDryRun(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.plan = w
	}
}

// New creates a Dispatcher.
func New(resolver Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: resolver,
		starter:  NewExecStarter(),
		reporter: progress.NewNullReporter(),
		out:      os.Stderr,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.out = SyncWriter(d.out)
	d.plan = SyncWriter(d.plan)

	return d
}

// RunAll dispatches every file concurrently and returns once all of them have finished
// or the context is cancelled. Outcomes are in the order of files.
func (d *Dispatcher) RunAll(ctx context.Context, files []script.File, elevated bool) Outcomes {
	type indexed struct {
		i int
		o Outcome
	}

	wg := &sync.WaitGroup{}
	resChan := make(chan indexed, len(files))

	for i, f := range files {
		wg.Add(1)

		go func(i int, f script.File) {
			defer wg.Done()

			resChan <- indexed{i: i, o: d.Run(ctx, f, elevated)}
		}(i, f)
	}

	wg.Wait()
	close(resChan)

	res := make(Outcomes, len(files))
	for r := range resChan {
		res[r.i] = r.o
	}

	return res
}

// Run dispatches one file and waits for it to exit or for the context to be cancelled.
func (d *Dispatcher) Run(ctx context.Context, f script.File, elevated bool) Outcome {
	logger := ctxlog.Logger(ctx).With("script", f.Path)
	start := d.now()

	res := Outcome{
		Script:   f,
		ExitCode: -1,
	}

	spec, ok := d.resolver.Resolve(f, elevated)
	if !ok {
		logger.Debug("no interpreter for extension", "ext", f.Ext)

		res.Status = StatusUnsupported
		res.ExitCode = 0
		d.report(progress.Event{
			Script:  f.Path,
			Type:    progress.EventSkipped,
			Message: fmt.Sprintf("no interpreter for %q", f.Ext),
		})

		return res
	}

	program, args := spec.Command()
	logger.Debug("launch spec", "program", program, "args", args, "dir", spec.Dir, "verb", spec.Verb)

	if d.plan != nil {
		fmt.Fprintf(d.plan, "(cd %s && %s)\n", spec.Dir, spec.String()) //nolint:errcheck

		res.Status = StatusPlanned
		res.ExitCode = 0

		return res
	}

	if ctx.Err() != nil {
		res.Status = StatusCancelled
		d.report(progress.Event{Script: f.Path, Type: progress.EventCancelled, Timestamp: d.now()})

		return res
	}

	ps, err := d.starter.Start(ctx, Command{Program: program, Args: args, Dir: spec.Dir})
	if err != nil {
		logger.Debug("launch failed", "error", err)

		msg := fmt.Sprintf("could not launch %s: %s", f.Path, err.Error())
		fmt.Fprintln(d.out, color.Colorize(msg, color.FgRed)) //nolint:errcheck

		res.Status = StatusLaunchFailed
		res.Err = errors.Join(ErrCouldNotStartProcess, err)
		res.Duration = d.now().Sub(start)
		d.report(progress.Event{
			Script:    f.Path,
			Type:      progress.EventFailed,
			Timestamp: d.now(),
			ExitCode:  -1,
			Error:     res.Err,
		})

		return res
	}

	logger.Debug("process started", "pid", ps.Pid())
	d.report(progress.Event{Script: f.Path, Type: progress.EventStarted, Timestamp: start})

	type waitResult struct {
		code int
		err  error
	}

	// Buffered so the waiter can finish after we stop listening.
	done := make(chan waitResult, 1)

	go func() {
		code, err := ps.Wait()
		done <- waitResult{code: code, err: err}
	}()

	select {
	case r := <-done:
		res.Duration = d.now().Sub(start)
		res.ExitCode = r.code
		res.Err = r.err

		ev := progress.Event{Script: f.Path, Timestamp: d.now(), ExitCode: r.code, Error: r.err}

		switch {
		case r.err == nil && r.code == 0:
			res.Status = StatusSucceeded
			ev.Type = progress.EventCompleted
		default:
			res.Status = StatusExitedNonZero
			ev.Type = progress.EventFailed
		}

		logger.Debug("process finished", "exitCode", r.code, "error", r.err)
		d.report(ev)

	case <-ctx.Done():
		logger.Info("context done, no longer waiting for process", "pid", ps.Pid())

		res.Status = StatusCancelled
		res.Duration = d.now().Sub(start)
		d.report(progress.Event{Script: f.Path, Type: progress.EventCancelled, Timestamp: d.now()})
	}

	return res
}

func (d *Dispatcher) report(e progress.Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = d.now()
	}

	d.reporter.Report(e)
}
