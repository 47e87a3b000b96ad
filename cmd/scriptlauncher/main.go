// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the scriptlauncher command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/scriptlauncher"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/configcmd"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/flags"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/interpreters"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/launch"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/list"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// newRootCmd builds the root command. Running it without a subcommand launches scripts.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			list.NewCommand(),
			interpreters.NewCommand(),
			configcmd.NewCommand(),
		},
		Flags:     append(flags.Global(), launch.Flags()...),
		Arguments: launch.Arguments(),
		Action:    launch.Action,
		Before:    before,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "scriptlauncher",
		Description: `Scriptlauncher finds the scripts below a directory, lets you pick one or more of them
and runs each with the interpreter registered for its extension. Several scripts are started
at the same time and their exit codes are reported once all of them have finished.`,
		Usage:     "Pick and run scripts from a directory tree",
		UsageText: "scriptlauncher [options] [directory]",
		Version:   fmt.Sprintf("%s (commit: %s)", scriptlauncher.Version, scriptlauncher.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if lvl := cmd.String(flags.LogLevel); lvl != "" {
		ctxlog.SetLevel(lvl)
	}

	return ctx, nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Exit codes are handled by the cli framework

	if ctx.Err() != nil {
		ctxlog.Debug(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(launch.ExitAborted) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
