// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// LaunchSpec is the resolved plan for running one script.
type LaunchSpec struct {
	Program string      // Interpreter to start.
	Args    []string    // Arguments, not including the program itself.
	Dir     string      // Working directory, always the script's own directory.
	Verb    string      // Elevation verb, empty when not elevated.
	Script  script.File // The script being launched.

	// Elevation overrides the strategy derived from Verb. Only used when Verb is set.
	Elevation ElevationStrategy
}

// Command returns the concrete program and arguments, with elevation applied.
func (s LaunchSpec) Command() (string, []string) {
	if s.Verb != "" && s.Elevation != nil {
		return s.Elevation.Wrap(s)
	}

	return StrategyFor(s.Verb).Wrap(s)
}

// String renders the command line that Command would start.
func (s LaunchSpec) String() string {
	program, args := s.Command()

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(program))

	for _, a := range args {
		parts = append(parts, quote(a))
	}

	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}

	return s
}

// Resolver turns script files into launch specs.
type Resolver struct {
	goos     string
	table    Table
	verb     string
	verbSet  bool
	strategy ElevationStrategy
	mappings []Mapping
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithGOOS resolves for the given operating system instead of runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(r *Resolver) {
		r.goos = goos
	}
}

// WithMappings adds mappings that take precedence over the built-in table.
func WithMappings(m ...Mapping) Option {
	return func(r *Resolver) {
		r.mappings = append(r.mappings, m...)
	}
}

// WithVerb overrides the platform elevation verb. VerbNone disables elevation.
func WithVerb(verb string) Option {
	return func(r *Resolver) {
		r.verb = verb
		r.verbSet = true
	}
}

// WithElevation uses a custom strategy for elevated launches.
// The verb recorded on launch specs is unchanged unless WithVerb is also given.
func WithElevation(s ElevationStrategy) Option {
	return func(r *Resolver) {
		r.strategy = s
	}
}

// New creates a Resolver for the current platform.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		goos: runtime.GOOS,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.table = slices.Concat(Table(r.mappings), DefaultTable(r.goos))

	if r.verbSet && r.verb == VerbNone {
		r.verb = ""
	}

	if !r.verbSet {
		r.verb = VerbFor(r.goos)
	}

	return r
}

// Table returns the effective mapping table, user mappings first.
func (r *Resolver) Table() Table {
	return slices.Clone(r.table)
}

// Verb returns the verb used for elevated launches. It may be empty.
func (r *Resolver) Verb() string {
	return r.verb
}

// Resolve returns the launch spec for the file, or false if no interpreter handles its extension.
func (r *Resolver) Resolve(f script.File, elevated bool) (LaunchSpec, bool) {
	m, ok := r.table.Lookup(f.Ext)
	if !ok {
		return LaunchSpec{}, false
	}

	spec := LaunchSpec{
		Program: m.Program,
		Args:    m.Expand(f),
		Dir:     f.Dir,
		Script:  f,
	}

	if elevated {
		spec.Verb = r.verb
		spec.Elevation = r.strategy
	}

	return spec, true
}
