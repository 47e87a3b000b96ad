// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/peterh/liner"
)

// Line is a numbered-list selector that reads one line of input.
// Close must be called before the terminal is handed to scripts.
type Line struct {
	Brief  bool
	Output io.Writer

	state *liner.State
	// prompt reads one line, replaced in tests.
	prompt func(p string) (string, error)
}

// NewLine creates a Line selector using the liner line editor, which also handles piped input.
func NewLine(brief bool) *Line {
	l := &Line{
		Brief:  brief,
		Output: os.Stderr,
	}
	l.prompt = l.linerPrompt

	return l
}

// Close restores the terminal. It is safe to call more than once.
func (l *Line) Close() error {
	if l.state == nil {
		return nil
	}

	st := l.state
	l.state = nil

	return st.Close() //nolint:wrapcheck
}

// linerPrompt shares one liner state between prompts so buffered piped input is not lost.
func (l *Line) linerPrompt(p string) (string, error) {
	if l.state == nil {
		l.state = liner.NewLiner()
		l.state.SetCtrlCAborts(true)
	}

	s, err := l.state.Prompt(p)

	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrAborted
	case errors.Is(err, io.EOF):
		return "", nil
	}

	return s, err //nolint:wrapcheck
}

// SelectScripts implements Selector.
func (l *Line) SelectScripts(ctx context.Context, files []script.File) ([]script.File, error) {
	if len(files) == 0 {
		return nil, nil
	}

	for i, f := range files {
		dir, stem, ext := label(f, l.Brief)
		fmt.Fprintf(l.Output, "%3d) %s%s%s\n", i+1, //nolint:errcheck
			color.Colorize(dir, color.FgBlue),
			color.Colorize(stem, color.FgHiRed),
			color.Colorize(ext, color.FgHiGreen),
		)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err //nolint:wrapcheck
		}

		input, err := l.prompt(fmt.Sprintf("Select scripts (e.g. 1,3-5, all, empty for none) [1-%d]: ", len(files)))
		if err != nil {
			return nil, err
		}

		idx, err := ParseSelection(input, len(files))
		if err != nil {
			fmt.Fprintln(l.Output, color.Colorize(err.Error(), color.FgRed)) //nolint:errcheck
			continue
		}

		return pick(files, idx), nil
	}
}

// SelectDirectory implements Selector. Empty input aborts.
func (l *Line) SelectDirectory(ctx context.Context, dirs []string) (string, error) {
	if len(dirs) == 0 {
		return "", ErrAborted
	}

	for i, d := range dirs {
		fmt.Fprintf(l.Output, "%3d) %s\n", i+1, color.Colorize(d, color.FgBlue)) //nolint:errcheck
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err //nolint:wrapcheck
		}

		input, err := l.prompt(fmt.Sprintf("Select a directory [1-%d]: ", len(dirs)))
		if err != nil {
			return "", err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return "", ErrAborted
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(dirs) {
			fmt.Fprintln(l.Output, color.Colorize(ErrInvalidSelection.Error()+": "+input, color.FgRed)) //nolint:errcheck
			continue
		}

		return dirs[n-1], nil
	}
}
