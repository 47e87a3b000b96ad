// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `extensions: [ps1, sh]
depth: 2
elevated: true
elevation: doas
interpreters:
  - extensions: [.py]
    program: python3
    args: ["-u", "{name}"]
`

const hclConfig = `extensions = ["sh", "nu"]
depth      = 0
group      = true
brief      = true
elevation  = env.SL_ELEVATION

interpreter {
  extensions = [".py"]
  program    = "python3"
  args       = ["{path}"]
}

interpreter {
  extensions = [".rb"]
  program    = "ruby"
}
`

const jsonConfig = `{
  "depth": 4,
  "hidden": true,
  "interpreter": [
    {"extensions": [".js"], "program": "node", "args": ["{name}"]}
  ]
}`

func TestParse_YAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "CONFIG.YML"} {
		c, err := Parse(name, []byte(yamlConfig))
		require.NoError(t, err)
		assert.Equal(t, []string{"ps1", "sh"}, c.Extensions)
		require.NotNil(t, c.Depth)
		assert.Equal(t, 2, *c.Depth)
		require.NotNil(t, c.Elevated)
		assert.True(t, *c.Elevated)
		assert.Nil(t, c.Group)
		assert.Equal(t, "doas", c.Elevation)
		assert.Equal(t, []Interpreter{{Extensions: []string{".py"}, Program: "python3", Args: []string{"-u", "{name}"}}}, c.Interpreters)
	}
}

func TestParse_YAMLUnknownField(t *testing.T) {
	_, err := Parse("config.yaml", []byte("depth: 1\nrecursive: true\n"))
	require.ErrorIs(t, err, ErrParseConfig)
	assert.Contains(t, err.Error(), "recursive")
}

func TestParse_HCL(t *testing.T) {
	stubs := gostub.Stub(&environ, func() []string {
		return []string{"SL_ELEVATION=pkexec", "=C:=C:\\", "BAD-NAME=x"}
	})
	defer stubs.Reset()

	c, err := Parse("config.hcl", []byte(hclConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"sh", "nu"}, c.Extensions)
	require.NotNil(t, c.Depth)
	assert.Equal(t, 0, *c.Depth)
	require.NotNil(t, c.Group)
	assert.True(t, *c.Group)
	assert.Nil(t, c.Elevated)
	assert.Equal(t, "pkexec", c.Elevation)
	assert.Equal(t, []Interpreter{
		{Extensions: []string{".py"}, Program: "python3", Args: []string{"{path}"}},
		{Extensions: []string{".rb"}, Program: "ruby"},
	}, c.Interpreters)
}

func TestParse_HCLErrors(t *testing.T) {
	stubs := gostub.Stub(&environ, func() []string { return nil })
	defer stubs.Reset()

	tests := map[string]string{
		"syntax":           `depth = `,
		"unknown argument": `recursive = true`,
		"wrong type":       `depth = "deep"`,
		"missing env":      `elevation = env.NOPE`,
		"missing program":  "interpreter {\n  extensions = [\".py\"]\n}\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("config.hcl", []byte(src))
			require.ErrorIs(t, err, ErrParseConfig)
		})
	}
}

func TestParse_JSON(t *testing.T) {
	c, err := Parse("config.json", []byte(jsonConfig))
	require.NoError(t, err)
	require.NotNil(t, c.Depth)
	assert.Equal(t, 4, *c.Depth)
	require.NotNil(t, c.Hidden)
	assert.True(t, *c.Hidden)
	assert.Equal(t, []Interpreter{{Extensions: []string{".js"}, Program: "node", Args: []string{"{name}"}}}, c.Interpreters)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse("config.toml", []byte(""))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_LocalFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/sl/config.yaml", []byte(yamlConfig), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	c, err := Load(context.Background(), "/etc/sl/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "doas", c.Elevation)
}

func TestLoad_Invalid(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("depth: -2\nelevation: su\n"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, err := Load(context.Background(), "/c.yaml")
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, ErrNegativeDepth)
	require.ErrorIs(t, err, ErrUnknownElevation)
}

func TestLoad_MissingFileIsFetched(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	_, err := Load(context.Background(), "git::http://notexist//config.yaml")
	require.ErrorIs(t, err, ErrGetConfigFile)
}

func TestLocate(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&userConfigDir, func() (string, error) { return "/home/u/.config", nil })
	defer stubs.Reset()

	ctx := context.Background()
	noEnv := func(string) string { return "" }
	env := func(k string) string {
		if k == EnvConfig {
			return "/from/env.hcl"
		}

		return ""
	}

	assert.Equal(t, "/explicit.yaml", Locate(ctx, "/explicit.yaml", env))
	assert.Equal(t, "/from/env.hcl", Locate(ctx, "", env))
	assert.Empty(t, Locate(ctx, "", noEnv))

	hclPath := filepath.Join("/home/u/.config", "scriptlauncher", "config.hcl")
	require.NoError(t, afero.WriteFile(fs, hclPath, []byte(""), 0o644))
	assert.Equal(t, hclPath, Locate(ctx, "", noEnv))

	// YAML is preferred over HCL.
	ymlPath := filepath.Join("/home/u/.config", "scriptlauncher", "config.yml")
	require.NoError(t, afero.WriteFile(fs, ymlPath, []byte(""), 0o644))
	assert.Equal(t, ymlPath, Locate(ctx, "", noEnv))
}

func TestLocate_NoUserConfigDir(t *testing.T) {
	stubs := gostub.Stub(&userConfigDir, func() (string, error) { return "", errors.New("no home") })
	defer stubs.Reset()

	assert.Empty(t, Locate(context.Background(), "", func(string) string { return "" }))
}

func TestFetch(t *testing.T) {
	_, _, err := fetch(context.Background(), "")
	require.ErrorIs(t, err, ErrGetConfigFile)

	_, _, err = fetch(context.Background(), "git::http://notexist//config.yaml")
	require.ErrorIs(t, err, ErrGetConfigFile)

	_, _, err = fetch(context.Background(), "git::https://example.com/repo.git")
	require.ErrorIs(t, err, ErrGetConfigFile)
	assert.Contains(t, err.Error(), "does not name a file")

	dir := t.TempDir()
	p := filepath.Join(dir, "team.yaml")
	require.NoError(t, os.WriteFile(p, []byte(yamlConfig), 0o600))

	data, name, err := fetch(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "team.yaml", name)
	assert.Equal(t, yamlConfig, string(data))
}

func TestSplitSubdir(t *testing.T) {
	tests := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//configs/team.yaml?ref=v1.0.0",
			wantURL:  "git::https://github.com/org/repo//configs?ref=v1.0.0",
			wantFile: "team.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//team.hcl",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "team.hcl",
		},
		{
			url:      "github.com/org/repo//nested/dir/team.yaml",
			wantURL:  "github.com/org/repo//nested/dir",
			wantFile: "team.yaml",
		},
		{
			url: "https://example.com/config.yaml",
		},
		{
			url: "git::https://github.com/org/repo//configs/",
		},
		{
			url: "git::https://github.com/org/repo//",
		},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotURL, gotFile := splitSubdir(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}
