// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package script

import (
	"path"
	"slices"
	"strings"
	"unicode"
)

// DefaultExtensions is used when no extensions are requested.
var DefaultExtensions = NormalizeExtensions("ps1", "*sh", "bat", "cmd")

// Extensions is a normalized set of dot-prefixed, lower case extension patterns.
// Patterns may contain path.Match metacharacters, e.g. ".*sh".
// The zero value is an empty set that matches nothing.
type Extensions struct {
	values []string
}

// NormalizeExtensions trims each extension of surrounding whitespace and leading dots,
// re-prefixes a single dot and lower cases it. Empty entries are dropped and duplicates collapse.
func NormalizeExtensions(exts ...string) Extensions {
	values := make([]string, 0, len(exts))

	for _, e := range exts {
		e = strings.TrimLeft(strings.TrimSpace(e), ".")
		if e == "" {
			continue
		}

		e = "." + strings.ToLower(e)
		if !slices.Contains(values, e) {
			values = append(values, e)
		}
	}

	slices.Sort(values)

	return Extensions{values: values}
}

// ParseExtensions splits a comma and/or whitespace separated list, e.g. "ps1, sh bat".
func ParseExtensions(s string) Extensions {
	return NormalizeExtensions(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})...)
}

// Len returns the number of patterns in the set.
func (e Extensions) Len() int {
	return len(e.values)
}

// Values returns a sorted copy of the patterns.
func (e Extensions) Values() []string {
	return slices.Clone(e.values)
}

// Match reports whether the file name ends with one of the patterns.
// Matching is case-insensitive.
func (e Extensions) Match(name string) bool {
	name = strings.ToLower(name)

	for _, v := range e.values {
		if !hasMeta(v) {
			if strings.HasSuffix(name, v) {
				return true
			}

			continue
		}

		if ok, err := path.Match("*"+v, name); err == nil && ok {
			return true
		}
	}

	return false
}

// String returns the patterns joined by ", ".
func (e Extensions) String() string {
	return strings.Join(e.values, ", ")
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, `*?[\`)
}
