// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package configcmd manages the scriptlauncher configuration file.
package configcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/flags"
	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/config"
	"github.com/urfave/cli/v3"
)

const (
	formatFlag = "format"
	forceFlag  = "force"
	pathArg    = "path"
)

// ErrWriteOutput is returned when output cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

// NewCommand returns the command grouping the configuration subcommands.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create, show or locate the configuration file",
		Commands: []*cli.Command{
			initCommand(),
			showCommand(),
			pathCommand(),
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a configuration file holding the default settings",
		Description: `Write the built-in defaults to PATH, or to the user configuration directory
when PATH is omitted. The format follows the file extension of PATH, or --format otherwise.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: pathArg,
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "File format when PATH is omitted: yaml or hcl",
				Value: config.FormatYAML,
			},
			&cli.BoolFlag{
				Name:  forceFlag,
				Usage: "Overwrite an existing file",
			},
		},
		Action: initAction,
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective settings after applying the configuration file and flags",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "Output format: yaml or hcl",
				Value: config.FormatYAML,
			},
		},
		Action: showAction,
	}
}

func pathCommand() *cli.Command {
	return &cli.Command{
		Name:   "path",
		Usage:  "Print the location of the configuration file in use",
		Action: pathAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	path := cmd.StringArg(pathArg)
	if path == "" {
		p, err := config.DefaultPath(cmd.String(formatFlag))
		if err != nil {
			return flags.Fail(err.Error(), 1)
		}

		path = p
	}

	if err := config.Write(path, config.FromSettings(config.Defaults()), cmd.Bool(forceFlag)); err != nil {
		return flags.Fail(err.Error(), 1)
	}

	if _, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", color.Colorize("wrote", color.FgGreen), path); err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	settings, _, err := flags.Settings(ctx, cmd)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	b, err := config.Encode(cmd.String(formatFlag), config.FromSettings(settings))
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	if _, err := cmd.Root().Writer.Write(b); err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}

func pathAction(ctx context.Context, cmd *cli.Command) error {
	loc := config.Locate(ctx, cmd.String(flags.Config), os.Getenv)
	if loc == "" {
		return flags.Fail("no configuration file found", 1)
	}

	if _, err := fmt.Fprintln(cmd.Root().Writer, loc); err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}
