// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// EnvConfig names the environment variable holding the configuration location.
const EnvConfig = "SCRIPTLAUNCHER_CONFIG"

const appDir = "scriptlauncher"

// candidateNames are tried in order inside the user configuration directory.
var candidateNames = []string{"config.yaml", "config.yml", "config.hcl", "config.json"}

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read config file")
	// ErrParseConfig is returned when the configuration file cannot be decoded.
	ErrParseConfig = errors.New("failed to parse config file")
	// ErrUnsupportedFormat is returned for a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Locate returns the configuration location to use, or "" when there is none.
// An explicit location wins, then the EnvConfig variable, then the first existing
// file in the user configuration directory.
func Locate(ctx context.Context, explicit string, getenv func(string) string) string {
	if explicit != "" {
		return explicit
	}

	if v := getenv(EnvConfig); v != "" {
		return v
	}

	dir, err := userConfigDir()
	if err != nil {
		ctxlog.Debug(ctx, "no user config directory", "error", err)
		return ""
	}

	fs := FsFactory()

	for _, name := range candidateNames {
		p := filepath.Join(dir, appDir, name)
		if ok, _ := afero.Exists(fs, p); ok {
			return p
		}
	}

	return ""
}

// Load reads, decodes and validates the configuration at location.
// Local files are read through FsFactory, anything else is fetched with go-getter.
func Load(ctx context.Context, location string) (*Config, error) {
	logger := ctxlog.Logger(ctx).With("config", location)

	var (
		data []byte
		name string
		err  error
	)

	fs := FsFactory()

	if ok, _ := afero.Exists(fs, location); ok {
		logger.Debug("reading local config file")

		data, err = afero.ReadFile(fs, location)
		if err != nil {
			return nil, errors.Join(ErrReadConfig, err)
		}

		name = location
	} else {
		logger.Debug("fetching config file")

		data, name, err = fetch(ctx, location)
		if err != nil {
			return nil, err
		}
	}

	c, err := Parse(name, data)
	if err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Parse decodes data according to the extension of filename.
func Parse(filename string, data []byte) (*Config, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".hcl", ".json":
		return parseHCL(filename, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func parseYAML(data []byte) (*Config, error) {
	c := &Config{}

	if err := yaml.UnmarshalWithOptions(data, c, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Join(ErrParseConfig, errors.New(yaml.FormatError(err, false, true)))
	}

	return c, nil
}

func parseHCL(filename string, data []byte) (*Config, error) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)

	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = hcljson.Parse(data, filename)
	} else {
		file, diags = hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	}

	if diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, multierror.Append(nil, diags.Errs()...))
	}

	c := &Config{}

	if diags := gohcl.DecodeBody(file.Body, evalContext(), c); diags.HasErrors() {
		return nil, errors.Join(ErrParseConfig, multierror.Append(nil, diags.Errs()...))
	}

	return c, nil
}

// evalContext exposes the environment as the env object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !hclsyntax.ValidIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
