// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/matt-FFFFFF/scriptlauncher/internal/interpreter"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// Formats accepted by Encode.
const (
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

var (
	// ErrEncodeConfig is returned when the configuration cannot be encoded.
	ErrEncodeConfig = errors.New("failed to encode config")
	// ErrWriteConfig is returned when the configuration file cannot be written.
	ErrWriteConfig = errors.New("failed to write config file")
	// ErrConfigExists is returned when refusing to overwrite a configuration file.
	ErrConfigExists = errors.New("config file already exists")
)

// FromSettings returns a Config that reproduces s when applied to the defaults.
// Every scalar field is set so the output documents all available keys.
func FromSettings(s Settings) *Config {
	c := &Config{
		Extensions: s.Extensions.Values(),
		Depth:      &s.Depth,
		Elevated:   &s.Elevated,
		Group:      &s.Group,
		Brief:      &s.Brief,
		Hidden:     &s.Hidden,
		Elevation:  s.Elevation,
	}

	for _, m := range s.Interpreters {
		c.Interpreters = append(c.Interpreters, Interpreter{
			Extensions: slices.Clone(m.Extensions),
			Program:    m.Program,
			Args:       slices.Clone(m.Args),
		})
	}

	return c
}

// FromMappings converts interpreter mappings into configuration entries.
func FromMappings(t interpreter.Table) []Interpreter {
	res := make([]Interpreter, 0, len(t))
	for _, m := range t {
		res = append(res, Interpreter{
			Extensions: slices.Clone(m.Extensions),
			Program:    m.Program,
			Args:       slices.Clone(m.Args),
		})
	}

	return res
}

// Encode renders c in the given format.
func Encode(format string, c *Config) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		b, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Join(ErrEncodeConfig, err)
		}

		return b, nil
	case FormatHCL:
		return encodeHCL(c), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func encodeHCL(c *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if len(c.Extensions) > 0 {
		body.SetAttributeValue("extensions", stringList(c.Extensions))
	}

	if c.Depth != nil {
		body.SetAttributeValue("depth", cty.NumberIntVal(int64(*c.Depth)))
	}

	for _, b := range []struct {
		name string
		v    *bool
	}{
		{"elevated", c.Elevated},
		{"group", c.Group},
		{"brief", c.Brief},
		{"hidden", c.Hidden},
	} {
		if b.v != nil {
			body.SetAttributeValue(b.name, cty.BoolVal(*b.v))
		}
	}

	if c.Elevation != "" {
		body.SetAttributeValue("elevation", cty.StringVal(c.Elevation))
	}

	for _, in := range c.Interpreters {
		body.AppendNewline()

		ib := body.AppendNewBlock("interpreter", nil).Body()
		ib.SetAttributeValue("extensions", stringList(in.Extensions))
		ib.SetAttributeValue("program", cty.StringVal(in.Program))

		if len(in.Args) > 0 {
			ib.SetAttributeValue("args", stringList(in.Args))
		}
	}

	return hclwrite.Format(f.Bytes())
}

func stringList(ss []string) cty.Value {
	if len(ss) == 0 {
		return cty.ListValEmpty(cty.String)
	}

	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}

	return cty.ListVal(vals)
}

// FormatFor returns the encoding format implied by a file name.
func FormatFor(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// DefaultPath returns the configuration file path in the user configuration directory.
func DefaultPath(format string) (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", errors.Join(ErrWriteConfig, err)
	}

	return filepath.Join(dir, appDir, "config."+format), nil
}

// Write encodes c to path through FsFactory, creating parent directories.
// An existing file is only replaced when force is set.
func Write(path string, c *Config, force bool) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Encode(format, c)
	if err != nil {
		return err
	}

	fs := FsFactory()

	if ok, _ := afero.Exists(fs, path); ok && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return errors.Join(ErrWriteConfig, err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil { //nolint:mnd
		return errors.Join(ErrWriteConfig, err)
	}

	return nil
}
