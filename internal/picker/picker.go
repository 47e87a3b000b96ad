// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// DefaultPageSize is the number of entries shown per page.
const DefaultPageSize = 15

var (
	// ErrAborted is returned when the user cancels the prompt.
	ErrAborted = errors.New("selection aborted")
	// ErrInvalidSelection is returned when typed input cannot be parsed.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Selector presents discovered scripts and returns the user's choice.
type Selector interface {
	// SelectScripts returns the chosen files in list order. An empty choice is valid.
	SelectScripts(ctx context.Context, files []script.File) ([]script.File, error)
	// SelectDirectory returns one of dirs.
	SelectDirectory(ctx context.Context, dirs []string) (string, error)
}

var (
	_ Selector = (*TUI)(nil)
	_ Selector = (*Line)(nil)
)

// label splits a file into its displayed parts. Brief mode drops the directory.
func label(f script.File, brief bool) (dir, stem, ext string) {
	if !brief {
		dir = f.Dir + string(filepath.Separator)
	}

	return dir, f.Stem(), f.Ext
}

func pick(files []script.File, idx []int) []script.File {
	res := make([]script.File, 0, len(idx))
	for _, i := range idx {
		res = append(res, files[i])
	}

	return res
}
