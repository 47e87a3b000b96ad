// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"path/filepath"
	"strings"
)

// File identifies a discovered script. It holds only path derived fields
// and is never mutated after discovery.
type File struct {
	Path string // Path as discovered, joined onto the discovery root.
	Dir  string // Containing directory.
	Name string // Base name including the extension.
	Ext  string // Extension including the leading dot, as found on disk.
}

// NewFile derives a File from a path.
func NewFile(path string) File {
	path = filepath.Clean(path)

	return File{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: filepath.Base(path),
		Ext:  filepath.Ext(path),
	}
}

// Stem returns the base name without its extension.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, f.Ext)
}

// String returns the path of the file.
func (f File) String() string {
	return f.Path
}
