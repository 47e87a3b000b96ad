// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package flags holds the flags shared by every command and turns them into settings.
package flags

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/config"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	Extensions = "extensions"
	Depth      = "depth"
	Elevated   = "elevated"
	Group      = "group"
	Brief      = "brief"
	Hidden     = "hidden"
	Plain      = "plain"
	DryRun     = "dry-run"
	Config     = "config"
	LogLevel   = "log-level"

	// DirectoryArg is the positional argument naming the root directory.
	DirectoryArg = "directory"
)

// ErrInvalidFlag is returned when a flag value is out of range.
var ErrInvalidFlag = errors.New("invalid flag value")

// Global returns the flags accepted by the root command and inherited by subcommands.
// A fresh set is built on every call so that parsed values never leak between runs.
func Global() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    Extensions,
			Aliases: []string{"x"},
			Usage: "Comma or space separated script extensions, shell globs allowed. " +
				"Defaults to \"" + script.DefaultExtensions.String() + "\"",
			Sources: cli.EnvVars("SCRIPTLAUNCHER_EXTENSIONS"),
		},
		&cli.IntFlag{
			Name:    Depth,
			Aliases: []string{"d"},
			Usage:   "Number of directory levels to search below the directory, 0 searches only the directory itself",
			Value:   config.DefaultDepth,
		},
		&cli.BoolFlag{
			Name:    Elevated,
			Aliases: []string{"e"},
			Usage:   "Run the selected scripts elevated (run as administrator, or through sudo)",
		},
		&cli.BoolFlag{
			Name:    Group,
			Aliases: []string{"g"},
			Usage:   "Group scripts by directory and pick a directory first",
		},
		&cli.BoolFlag{
			Name:    Brief,
			Aliases: []string{"b"},
			Usage:   "Show only file names, without their directory",
		},
		&cli.BoolFlag{
			Name:  Hidden,
			Usage: "Include hidden files and directories",
		},
		&cli.StringFlag{
			Name:      Config,
			Usage:     "Configuration file. Supports Hashicorp's go-getter syntax for fetching files from various sources",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:    LogLevel,
			Usage:   "Log level: debug, info, warn or error",
			Sources: cli.EnvVars(ctxlog.LevelEnvName()),
		},
	}
}

// Directory returns the positional directory argument, defaulting to the current directory.
func Directory(cmd *cli.Command) string {
	if d := cmd.StringArg(DirectoryArg); d != "" {
		return d
	}

	return "."
}

// Settings layers the configuration file and then the flags over the defaults.
// It also returns the configuration location used, which may be empty.
func Settings(ctx context.Context, cmd *cli.Command) (config.Settings, string, error) {
	s := config.Defaults()

	loc := config.Locate(ctx, cmd.String(Config), os.Getenv)
	if loc != "" {
		ctxlog.Debug(ctx, "loading configuration", "location", loc)

		c, err := config.Load(ctx, loc)
		if err != nil {
			return s, loc, err //nolint:wrapcheck
		}

		s = s.Apply(c)
	}

	if cmd.IsSet(Extensions) {
		s.Extensions = script.ParseExtensions(cmd.String(Extensions))
	}

	if cmd.IsSet(Depth) {
		d := cmd.Int(Depth)
		if d < 0 {
			return s, loc, fmt.Errorf("%w: --%s must not be negative, got %d", ErrInvalidFlag, Depth, d)
		}

		s.Depth = d
	}

	for name, dst := range map[string]*bool{
		Elevated: &s.Elevated,
		Group:    &s.Group,
		Brief:    &s.Brief,
		Hidden:   &s.Hidden,
	} {
		if cmd.IsSet(name) {
			*dst = cmd.Bool(name)
		}
	}

	return s, loc, nil
}

// Fail returns an exit error with a red message.
func Fail(msg string, code int) error {
	return cli.Exit(color.Colorize(msg, color.FgRed), code)
}
