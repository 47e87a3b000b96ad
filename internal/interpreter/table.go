// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"path"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows = "windows"
)

// Placeholders expanded in Mapping.Args.
const (
	PlaceholderName = "{name}" // base name of the script, e.g. deploy.sh
	PlaceholderPath = "{path}" // full path of the script
	PlaceholderDir  = "{dir}"  // containing directory
	PlaceholderStem = "{stem}" // base name without extension
)

// Mapping binds a set of extensions to an interpreter invocation.
type Mapping struct {
	Extensions []string // Dot-prefixed extensions, matched case-insensitively.
	Program    string   // Interpreter executable, looked up in PATH when launched.
	Args       []string // Argument templates, see the Placeholder constants.
}

// Matches reports whether the mapping handles the extension. Extensions may be shell
// glob patterns such as .*sh, matched against the whole extension.
func (m Mapping) Matches(ext string) bool {
	ext = strings.ToLower(ext)

	return slices.ContainsFunc(m.Extensions, func(e string) bool {
		e = strings.ToLower(e)
		if !strings.ContainsAny(e, `*?[\`) {
			return e == ext
		}

		ok, err := path.Match(e, ext)

		return err == nil && ok
	})
}

// Expand returns the argument list for the given file.
func (m Mapping) Expand(f script.File) []string {
	r := strings.NewReplacer(
		PlaceholderName, f.Name,
		PlaceholderPath, f.Path,
		PlaceholderDir, f.Dir,
		PlaceholderStem, f.Stem(),
	)

	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = r.Replace(a)
	}

	return args
}

// Table is an ordered list of mappings. The first mapping matching an extension wins.
type Table []Mapping

// Lookup finds the first mapping for the extension.
func (t Table) Lookup(ext string) (Mapping, bool) {
	for _, m := range t {
		if m.Matches(ext) {
			return m, true
		}
	}

	return Mapping{}, false
}

// DefaultTable returns the built-in mappings for the given operating system.
func DefaultTable(goos string) Table {
	pwsh := Mapping{
		Extensions: []string{".ps1"},
		Program:    "pwsh",
		Args:       []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File", "./" + PlaceholderName},
	}

	if goos == GOOSWindows {
		pwsh.Program = "powershell.exe"
		pwsh.Args[len(pwsh.Args)-1] = `.\` + PlaceholderName
	}

	return Table{
		{
			Extensions: []string{".bat", ".cmd"},
			Program:    "cmd",
			Args:       []string{"/Q", "/C", `.\` + PlaceholderName},
		},
		pwsh,
		{
			Extensions: []string{".sh", ".zsh", ".fish"},
			Program:    "sh",
			Args:       []string{"-c", "./" + PlaceholderName},
		},
		{
			Extensions: []string{".nu"},
			Program:    "nu",
			Args:       []string{"--no-config-file", PlaceholderName},
		},
	}
}
