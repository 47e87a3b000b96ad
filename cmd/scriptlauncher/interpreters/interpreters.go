// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package interpreters prints the effective extension to interpreter table.
package interpreters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/flags"
	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/config"
	"github.com/matt-FFFFFF/scriptlauncher/internal/interpreter"
	"github.com/urfave/cli/v3"
)

const formatFlag = "format"

// ErrWriteOutput is returned when the table cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

// NewCommand returns the command that shows how each extension is launched.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "interpreters",
		Usage: "Show which interpreter runs each script extension",
		Description: `Print the interpreter table after applying the configuration file.
Entries from the configuration come first and take precedence over the built-in ones.
With --format the table is printed as configuration that can be pasted into a config file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  formatFlag,
				Usage: "Print as configuration instead of a table: yaml or hcl",
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

	r := interpreter.New(settings.ResolverOptions()...)

	if format := cmd.String(formatFlag); format != "" {
		b, err := config.Encode(format, &config.Config{Interpreters: config.FromMappings(r.Table())})
		if err != nil {
			return flags.Fail(err.Error(), 1)
		}

		if _, err := cmd.Root().Writer.Write(b); err != nil {
			return errors.Join(ErrWriteOutput, err)
		}

		return nil
	}

	if err := writeTable(cmd.Root().Writer, r); err != nil {
		return errors.Join(ErrWriteOutput, err)
	}

	return nil
}

func writeTable(w io.Writer, r *interpreter.Resolver) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("EXTENSIONS", "PROGRAM", "ARGUMENTS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, m := range r.Table() {
		t.Row(strings.Join(m.Extensions, " "), m.Program, strings.Join(m.Args, " "))
	}

	verb := r.Verb()
	if verb == "" {
		verb = interpreter.VerbNone
	}

	_, err := fmt.Fprintf(w, "%s\n%s %s\n", t.Render(), color.Colorize("elevation:", color.Bold), verb)

	return err //nolint:wrapcheck
}
