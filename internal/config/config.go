// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/scriptlauncher/internal/interpreter"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// DefaultDepth is the default number of directory levels searched below the root.
const DefaultDepth = 1

var (
	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNegativeDepth is returned when depth is below zero.
	ErrNegativeDepth = errors.New("depth must not be negative")
	// ErrUnknownElevation is returned for an unsupported elevation mechanism.
	ErrUnknownElevation = errors.New("unknown elevation mechanism")
	// ErrEmptyExtension is returned when an extension entry is blank.
	ErrEmptyExtension = errors.New("extension must not be empty")
	// ErrInterpreterNoExtensions is returned when an interpreter entry has no extensions.
	ErrInterpreterNoExtensions = errors.New("interpreter has no extensions")
	// ErrInterpreterNoProgram is returned when an interpreter entry has no program.
	ErrInterpreterNoProgram = errors.New("interpreter has no program")
)

// ElevationMechanisms lists the accepted values of the elevation setting.
var ElevationMechanisms = []string{
	interpreter.VerbNone,
	interpreter.VerbRunAs,
	interpreter.VerbSudo,
	"doas",
	"pkexec",
}

// Interpreter is a user-defined interpreter mapping.
type Interpreter struct {
	Extensions []string `hcl:"extensions"    yaml:"extensions"`
	Program    string   `hcl:"program"       yaml:"program"`
	Args       []string `hcl:"args,optional" yaml:"args,omitempty"`
}

// Mapping converts the entry to an interpreter mapping with normalised extensions.
func (i Interpreter) Mapping() interpreter.Mapping {
	return interpreter.Mapping{
		Extensions: script.NormalizeExtensions(i.Extensions...).Values(),
		Program:    i.Program,
		Args:       slices.Clone(i.Args),
	}
}

// Config is the content of a configuration file. Nil fields are unset and keep the value
// from the layer below.
type Config struct {
	Extensions   []string      `yaml:"extensions,omitempty"   hcl:"extensions,optional"`
	Depth        *int          `yaml:"depth,omitempty"        hcl:"depth,optional"`
	Elevated     *bool         `yaml:"elevated,omitempty"     hcl:"elevated,optional"`
	Group        *bool         `yaml:"group,omitempty"        hcl:"group,optional"`
	Brief        *bool         `yaml:"brief,omitempty"        hcl:"brief,optional"`
	Hidden       *bool         `yaml:"hidden,omitempty"       hcl:"hidden,optional"`
	Elevation    string        `yaml:"elevation,omitempty"    hcl:"elevation,optional"`
	Interpreters []Interpreter `yaml:"interpreters,omitempty" hcl:"interpreter,block"`
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var err error

	if c.Depth != nil && *c.Depth < 0 {
		err = multierror.Append(err, fmt.Errorf("%w: %d", ErrNegativeDepth, *c.Depth))
	}

	if c.Elevation != "" && !slices.Contains(ElevationMechanisms, strings.ToLower(c.Elevation)) {
		err = multierror.Append(err, fmt.Errorf("%w: %q, expected one of %s",
			ErrUnknownElevation, c.Elevation, strings.Join(ElevationMechanisms, ", ")))
	}

	for i, e := range c.Extensions {
		if strings.TrimSpace(e) == "" {
			err = multierror.Append(err, fmt.Errorf("extensions[%d]: %w", i, ErrEmptyExtension))
		}
	}

	for i, in := range c.Interpreters {
		if len(in.Extensions) == 0 {
			err = multierror.Append(err, fmt.Errorf("interpreters[%d]: %w", i, ErrInterpreterNoExtensions))
		}

		for j, e := range in.Extensions {
			if strings.TrimSpace(e) == "" {
				err = multierror.Append(err, fmt.Errorf("interpreters[%d].extensions[%d]: %w", i, j, ErrEmptyExtension))
			}
		}

		if strings.TrimSpace(in.Program) == "" {
			err = multierror.Append(err, fmt.Errorf("interpreters[%d]: %w", i, ErrInterpreterNoProgram))
		}
	}

	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// Settings are the effective values after layering.
type Settings struct {
	Extensions   script.Extensions
	Depth        int
	Elevated     bool
	Group        bool
	Brief        bool
	Hidden       bool
	Elevation    string // Empty means the platform default.
	Interpreters []interpreter.Mapping
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Extensions: script.DefaultExtensions,
		Depth:      DefaultDepth,
	}
}

// Apply layers c over s and returns the result. Interpreters from c take precedence
// over those already in s.
func (s Settings) Apply(c *Config) Settings {
	if c == nil {
		return s
	}

	if len(c.Extensions) > 0 {
		s.Extensions = script.NormalizeExtensions(c.Extensions...)
	}

	if c.Depth != nil {
		s.Depth = *c.Depth
	}

	if c.Elevated != nil {
		s.Elevated = *c.Elevated
	}

	if c.Group != nil {
		s.Group = *c.Group
	}

	if c.Brief != nil {
		s.Brief = *c.Brief
	}

	if c.Hidden != nil {
		s.Hidden = *c.Hidden
	}

	if c.Elevation != "" {
		s.Elevation = strings.ToLower(c.Elevation)
	}

	if len(c.Interpreters) > 0 {
		mappings := make([]interpreter.Mapping, 0, len(c.Interpreters)+len(s.Interpreters))
		for _, in := range c.Interpreters {
			mappings = append(mappings, in.Mapping())
		}

		s.Interpreters = append(mappings, s.Interpreters...)
	}

	return s
}

// ResolverOptions returns the interpreter options for these settings.
func (s Settings) ResolverOptions() []interpreter.Option {
	var opts []interpreter.Option

	if len(s.Interpreters) > 0 {
		opts = append(opts, interpreter.WithMappings(s.Interpreters...))
	}

	if s.Elevation != "" {
		opts = append(opts, interpreter.WithVerb(s.Elevation))
	}

	return opts
}
