// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"slices"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// Grouped maps directories to the scripts found directly in them.
// Directories are kept in lexicographic order of their full path.
type Grouped struct {
	dirs  []string
	files map[string][]script.File
}

// NewGrouped partitions files by their containing directory, keeping the input order within each group.
func NewGrouped(files []script.File) *Grouped {
	g := &Grouped{
		files: make(map[string][]script.File),
	}

	for _, f := range files {
		if _, ok := g.files[f.Dir]; !ok {
			g.dirs = append(g.dirs, f.Dir)
		}

		g.files[f.Dir] = append(g.files[f.Dir], f)
	}

	slices.Sort(g.dirs)

	return g
}

// Dirs returns the directories in lexicographic order.
func (g *Grouped) Dirs() []string {
	return slices.Clone(g.dirs)
}

// Files returns the scripts of one directory.
func (g *Grouped) Files(dir string) []script.File {
	return slices.Clone(g.files[dir])
}

// Len returns the number of directories.
func (g *Grouped) Len() int {
	return len(g.dirs)
}

// Flatten returns all scripts, directory by directory.
func (g *Grouped) Flatten() []script.File {
	var out []script.File

	for _, d := range g.dirs {
		out = append(out, g.files[d]...)
	}

	return out
}
