// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/spf13/afero"
)

var (
	// ErrNegativeDepth is returned when the recursion depth is below zero.
	ErrNegativeDepth = errors.New("depth must not be negative")
	// ErrRootNotFound is returned when the root directory does not exist.
	ErrRootNotFound = errors.New("root directory does not exist")
	// ErrRootNotDirectory is returned when the root path is not a directory.
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

// Options controls a discovery run.
type Options struct {
	Root          string            // Directory to search from.
	Depth         int               // 0 searches the root only, N descends N levels.
	Extensions    script.Extensions // Patterns a file name must match.
	IncludeHidden bool              // Include files and directories whose name starts with a dot.
}

// Validate checks the options that do not need the filesystem.
func (o Options) Validate() error {
	if o.Depth < 0 {
		return ErrNegativeDepth
	}

	return nil
}

// Finder discovers script files according to its Options.
type Finder struct {
	opts Options
	fs   afero.Fs
}

// New creates a Finder. It fails if the options are invalid or the root is not an existing directory.
func New(opts Options) (*Finder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.Root == "" {
		opts.Root = "."
	}

	opts.Root = filepath.Clean(opts.Root)
	afs := FsFactory()

	info, err := afs.Stat(opts.Root)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errors.Join(ErrRootNotFound, err)
	case err != nil:
		// the root exists but cannot be inspected, the walk will yield nothing
	case !info.IsDir():
		return nil, ErrRootNotDirectory
	}

	return &Finder{opts: opts, fs: afs}, nil
}

// Root returns the cleaned root directory.
func (f *Finder) Root() string {
	return f.opts.Root
}

// Extensions returns the extension set in use.
func (f *Finder) Extensions() script.Extensions {
	return f.opts.Extensions
}

// Scripts returns all matching files in walk order.
// Within a directory files come in name order, before the files of its subdirectories.
func (f *Finder) Scripts(ctx context.Context) ([]script.File, error) {
	var files []script.File

	if f.opts.Extensions.Len() == 0 {
		return files, nil
	}

	err := f.walk(ctx, f.opts.Root, 0, func(file script.File) {
		files = append(files, file)
	})
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "discovery complete",
		"root", f.opts.Root,
		"depth", f.opts.Depth,
		"extensions", f.opts.Extensions.String(),
		"found", len(files))

	return files, nil
}

// ScriptsByDirectory returns the matching files grouped by their containing directory.
func (f *Finder) ScriptsByDirectory(ctx context.Context) (*Grouped, error) {
	files, err := f.Scripts(ctx)
	if err != nil {
		return nil, err
	}

	return NewGrouped(files), nil
}

func (f *Finder) walk(ctx context.Context, dir string, level int, emit func(script.File)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		ctxlog.Debug(ctx, "skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	var subdirs []string

	for _, entry := range entries {
		name := entry.Name()

		if !f.opts.IncludeHidden && isHidden(name) {
			continue
		}

		if entry.IsDir() {
			if level < f.opts.Depth {
				subdirs = append(subdirs, filepath.Join(dir, name))
			}

			continue
		}

		if !f.opts.Extensions.Match(name) {
			continue
		}

		p := filepath.Join(dir, name)

		switch {
		case entry.Mode().IsRegular():
		case entry.Mode()&fs.ModeSymlink != 0:
			target, err := f.fs.Stat(p)
			if err != nil || !target.Mode().IsRegular() {
				ctxlog.Debug(ctx, "skipping symlink that is not a file", "path", p, "error", err)
				continue
			}
		default:
			continue
		}

		emit(script.NewFile(p))
	}

	for _, sub := range subdirs {
		if err := f.walk(ctx, sub, level+1, emit); err != nil {
			return err
		}
	}

	return nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
