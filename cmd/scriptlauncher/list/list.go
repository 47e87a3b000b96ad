// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list prints the discovered scripts without running anything.
package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/flags"
	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/discovery"
	"github.com/matt-FFFFFF/scriptlauncher/internal/launcher"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/urfave/cli/v3"
)

const jsonFlag = "json"

// ErrWriteOutput is returned when the listing cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

// NewCommand returns the command that lists the scripts that would be offered for selection.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the discovered scripts without running them",
		Description: `List the scripts found under DIRECTORY using the same extensions, depth and grouping
as the interactive launcher. Nothing is run.`,
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: flags.DirectoryArg,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  jsonFlag,
				Usage: "Print the result as JSON",
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	settings, _, err := flags.Settings(ctx, cmd)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	dir := flags.Directory(cmd)

	root, err := filepath.Abs(dir)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	finder, err := launcher.New(settings, nil, nil).Finder(root)
	if err != nil {
		return flags.Fail(fmt.Sprintf("Directory '%s' does not exist.", dir), 1)
	}

	files, err := finder.Scripts(ctx)
	if err != nil {
		return flags.Fail(err.Error(), 1)
	}

	if len(files) == 0 {
		noScripts := &launcher.NoScriptsError{Root: finder.Root(), Extensions: finder.Extensions()}
		return flags.Fail(noScripts.Error(), 1)
	}

	switch {
	case cmd.Bool(jsonFlag):
		err = writeJSON(cmd.Root().Writer, files, settings.Group)
	case settings.Group:
		err = writeGrouped(cmd.Root().Writer, discovery.NewGrouped(files))
	default:
		err = writeFlat(cmd.Root().Writer, files, settings.Brief)
	}

	if err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}

func label(f script.File, brief bool) string {
	s := color.Colorize(f.Stem(), color.FgHiRed) + color.Colorize(f.Ext, color.FgHiGreen)
	if brief {
		return s
	}

	return color.Colorize(f.Dir+string(filepath.Separator), color.FgBlue) + s
}

func writeFlat(w io.Writer, files []script.File, brief bool) error {
	for _, f := range files {
		if _, err := fmt.Fprintln(w, label(f, brief)); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

// writeGrouped prints a header per directory followed by the bare file names.
func writeGrouped(w io.Writer, g *discovery.Grouped) error {
	for _, d := range g.Dirs() {
		if _, err := fmt.Fprintln(w, color.Colorize(d, color.Bold, color.FgBlue)); err != nil {
			return err //nolint:wrapcheck
		}

		for _, f := range g.Files(d) {
			if _, err := fmt.Fprintln(w, "  "+label(f, true)); err != nil {
				return err //nolint:wrapcheck
			}
		}
	}

	return nil
}

// writeJSON prints the scripts keyed by directory when grouping, or as a flat list otherwise.
func writeJSON(w io.Writer, files []script.File, group bool) error {
	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !color.Enabled()

	var v any

	if group {
		g := discovery.NewGrouped(files)
		m := make(map[string]any, len(g.Dirs()))
		for _, d := range g.Dirs() {
			names := make([]any, 0, len(g.Files(d)))
			for _, file := range g.Files(d) {
				names = append(names, file.Name)
			}

			m[d] = names
		}

		v = m
	} else {
		paths := make([]any, 0, len(files))
		for _, file := range files {
			paths = append(paths, file.Path)
		}

		v = paths
	}

	b, err := f.Marshal(v)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(w, string(b))

	return err //nolint:wrapcheck
}
