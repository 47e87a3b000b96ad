// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launch implements the default action: discover, pick and run scripts.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/flags"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/discovery"
	"github.com/matt-FFFFFF/scriptlauncher/internal/dispatch"
	"github.com/matt-FFFFFF/scriptlauncher/internal/interpreter"
	"github.com/matt-FFFFFF/scriptlauncher/internal/launcher"
	"github.com/matt-FFFFFF/scriptlauncher/internal/picker"
	"github.com/matt-FFFFFF/scriptlauncher/internal/progress"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ExitAborted is the exit code used when the user aborts the selection or sends a signal.
const ExitAborted = 130

const cliExitStr = ""

// Flags returns the flags specific to the launch action.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  flags.Plain,
			Usage: "Use a plain numbered prompt instead of the interactive list",
		},
		&cli.BoolFlag{
			Name:  flags.DryRun,
			Usage: "Print the command line of each selected script instead of running it",
		},
	}
}

// Arguments returns the positional arguments of the launch action.
func Arguments() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      flags.DirectoryArg,
			UsageText: "[directory]",
		},
	}
}

// NewSelector picks the selector implementation, replaced in tests.
var NewSelector = func(brief, plain bool) picker.Selector {
	if plain || !isTerminal() {
		return picker.NewLine(brief)
	}

	return picker.NewTUI(brief)
}

// NewStarter creates the process starter, replaced in tests.
var NewStarter = func() dispatch.Starter {
	return dispatch.NewExecStarter()
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec
}

// Action runs the interactive launch flow.
func Action(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", "launch")

	settings, _, err := flags.Settings(ctx, cmd)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	dir := flags.Directory(cmd)

	root, err := filepath.Abs(dir)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	logger.Debug("settings", "root", root, "extensions", settings.Extensions.String(),
		"depth", settings.Depth, "elevated", settings.Elevated, "group", settings.Group)

	// Progress lines and launch failures share stderr.
	errw := dispatch.SyncWriter(cmd.ErrWriter)

	opts := []dispatch.Option{
		dispatch.WithStarter(NewStarter()),
		dispatch.WithReporter(progress.NewWriterReporter(errw)),
		dispatch.WithOutput(errw),
	}

	if cmd.Bool(flags.DryRun) {
		opts = append(opts, dispatch.WithDryRun(cmd.Writer))
	}

	d := dispatch.New(interpreter.New(settings.ResolverOptions()...), opts...)
	sel := NewSelector(settings.Brief, cmd.Bool(flags.Plain))

	outcomes, err := launcher.New(settings, sel, d).Run(ctx, root)

	switch {
	case errors.Is(err, discovery.ErrRootNotFound), errors.Is(err, discovery.ErrRootNotDirectory):
		return flags.Fail(fmt.Sprintf("Directory '%s' does not exist.", dir), 1)
	case errors.Is(err, launcher.ErrNoScripts):
		return flags.Fail(err.Error(), 1)
	case errors.Is(err, picker.ErrAborted), errors.Is(err, context.Canceled):
		logger.Debug("selection aborted", "error", err)
		return cli.Exit(cliExitStr, ExitAborted)
	case err != nil:
		return flags.Fail(err.Error(), 1)
	}

	if ctx.Err() != nil {
		logger.Info("stopped waiting for scripts", "error", ctx.Err())
		return cli.Exit(cliExitStr, ExitAborted)
	}

	if failed := outcomes.Failed(); len(failed) > 0 {
		logger.Info("some scripts failed", "failed", len(failed), "attempted", outcomes.Attempted())
	}

	if code := outcomes.ExitCode(); code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}
