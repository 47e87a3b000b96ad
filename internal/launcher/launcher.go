// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/scriptlauncher/internal/config"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/discovery"
	"github.com/matt-FFFFFF/scriptlauncher/internal/dispatch"
	"github.com/matt-FFFFFF/scriptlauncher/internal/picker"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// ErrNoScripts is returned when discovery finds nothing to offer.
var ErrNoScripts = errors.New("no script files found")

// NoScriptsError describes an empty discovery result.
type NoScriptsError struct {
	Root       string
	Extensions script.Extensions
}

// Error implements the error interface.
func (e *NoScriptsError) Error() string {
	return fmt.Sprintf("No script files found in '%s' with extensions '%s'", e.Root, e.Extensions)
}

// Is lets errors.Is match ErrNoScripts.
func (e *NoScriptsError) Is(target error) bool {
	return target == ErrNoScripts
}

// Runner dispatches scripts. *dispatch.Dispatcher implements it.
type Runner interface {
	Run(ctx context.Context, f script.File, elevated bool) dispatch.Outcome
	RunAll(ctx context.Context, files []script.File, elevated bool) dispatch.Outcomes
}

var _ Runner = (*dispatch.Dispatcher)(nil)

// Launcher runs the discover, select and dispatch flow.
type Launcher struct {
	settings config.Settings
	selector picker.Selector
	runner   Runner
}

// New creates a Launcher.
func New(settings config.Settings, selector picker.Selector, runner Runner) *Launcher {
	return &Launcher{
		settings: settings,
		selector: selector,
		runner:   runner,
	}
}

// Finder returns a discovery finder for root using the launcher's settings.
func (l *Launcher) Finder(root string) (*discovery.Finder, error) {
	return discovery.New(discovery.Options{
		Root:          root,
		Depth:         l.settings.Depth,
		Extensions:    l.settings.Extensions,
		IncludeHidden: l.settings.Hidden,
	})
}

// Run discovers scripts under root, asks the selector which to run and dispatches them.
// It returns no outcomes when the user selects nothing.
func (l *Launcher) Run(ctx context.Context, root string) (dispatch.Outcomes, error) {
	logger := ctxlog.Logger(ctx).With("root", root)

	finder, err := l.Finder(root)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	files, err := l.candidates(ctx, finder)
	if err != nil {
		return nil, err
	}

	chosen, err := l.selector.SelectScripts(ctx, files)

	if c, ok := l.selector.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			logger.Debug("failed to close selector", "error", cerr)
		}
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	logger.Debug("scripts selected", "count", len(chosen))

	switch len(chosen) {
	case 0:
		return nil, nil
	case 1:
		return dispatch.Outcomes{l.runner.Run(ctx, chosen[0], l.settings.Elevated)}, nil
	default:
		return l.runner.RunAll(ctx, chosen, l.settings.Elevated), nil
	}
}

// candidates returns the files to offer, asking for a directory first in grouped mode.
func (l *Launcher) candidates(ctx context.Context, finder *discovery.Finder) ([]script.File, error) {
	noScripts := &NoScriptsError{Root: finder.Root(), Extensions: finder.Extensions()}

	if !l.settings.Group {
		files, err := finder.Scripts(ctx)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		if len(files) == 0 {
			return nil, noScripts
		}

		return files, nil
	}

	grouped, err := finder.ScriptsByDirectory(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if grouped.Len() == 0 {
		return nil, noScripts
	}

	dirs := grouped.Dirs()

	dir := dirs[0]
	if len(dirs) > 1 {
		dir, err = l.selector.SelectDirectory(ctx, dirs)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return grouped.Files(dir), nil
}
