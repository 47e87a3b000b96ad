// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// TUI is the interactive full-screen selector.
type TUI struct {
	Brief    bool // Hide directories in script labels.
	PageSize int
	Input    io.Reader
	Output   io.Writer
	styles   *Styles

	// run executes the model, replaced in tests.
	run func(ctx context.Context, m *model) (*model, error)
}

// NewTUI creates a TUI that draws on stderr so stdout stays free for scripts.
func NewTUI(brief bool) *TUI {
	t := &TUI{
		Brief:    brief,
		PageSize: DefaultPageSize,
		Input:    os.Stdin,
		Output:   os.Stderr,
		styles:   NewStyles(),
	}
	t.run = t.runProgram

	return t
}

// SelectScripts implements Selector.
func (t *TUI) SelectScripts(ctx context.Context, files []script.File) ([]script.File, error) {
	if len(files) == 0 {
		return nil, nil
	}

	items := make([]string, len(files))
	for i, f := range files {
		dir, stem, ext := label(f, t.Brief)
		items[i] = t.styles.Dir.Render(dir) + t.styles.Stem.Render(stem) + t.styles.Ext.Render(ext)
	}

	m, err := t.run(ctx, newModel("Select the scripts to run:", items, true, t.PageSize, t.styles))
	if err != nil {
		return nil, err
	}

	if m.aborted {
		return nil, ErrAborted
	}

	return pick(files, m.chosen()), nil
}

// SelectDirectory implements Selector.
func (t *TUI) SelectDirectory(ctx context.Context, dirs []string) (string, error) {
	if len(dirs) == 0 {
		return "", ErrAborted
	}

	items := make([]string, len(dirs))
	for i, d := range dirs {
		items[i] = t.styles.Dir.Render(d)
	}

	m, err := t.run(ctx, newModel("Select a directory:", items, false, t.PageSize, t.styles))
	if err != nil {
		return "", err
	}

	idx := m.chosen()
	if m.aborted || len(idx) == 0 {
		return "", ErrAborted
	}

	return dirs[idx[0]], nil
}

func (t *TUI) runProgram(ctx context.Context, m *model) (*model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.Input),
		tea.WithOutput(t.Output),
	)

	final, err := p.Run()

	if ctx.Err() != nil {
		return nil, ctx.Err() //nolint:wrapcheck
	}

	if err != nil {
		ctxlog.Debug(ctx, "picker program failed", "error", err)

		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, ErrAborted
		}

		return nil, err //nolint:wrapcheck
	}

	fm, ok := final.(*model)
	if !ok {
		return m, nil
	}

	return fm, nil
}
