// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"testing"

	"github.com/matt-FFFFFF/scriptlauncher/cmd/scriptlauncher/launch"
	"github.com/matt-FFFFFF/scriptlauncher/internal/config"
	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
	"github.com/matt-FFFFFF/scriptlauncher/internal/discovery"
	"github.com/matt-FFFFFF/scriptlauncher/internal/dispatch"
	"github.com/matt-FFFFFF/scriptlauncher/internal/picker"
	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type fakeSelector struct {
	pick func([]script.File) []script.File
	err  error
}

func (s *fakeSelector) SelectScripts(_ context.Context, files []script.File) ([]script.File, error) {
	if s.err != nil {
		return nil, s.err
	}

	if s.pick == nil {
		return files, nil
	}

	return s.pick(files), nil
}

func (s *fakeSelector) SelectDirectory(_ context.Context, dirs []string) (string, error) {
	if s.err != nil {
		return "", s.err
	}

	return dirs[0], nil
}

type exitProcess int

func (p exitProcess) Wait() (int, error) { return int(p), nil }
func (exitProcess) Pid() int             { return 1 }

type recordingStarter struct {
	mu       sync.Mutex
	code     int
	err      error
	commands []dispatch.Command
}

func (s *recordingStarter) Start(_ context.Context, cmd dispatch.Command) (dispatch.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = append(s.commands, cmd)
	if s.err != nil {
		return nil, s.err
	}

	return exitProcess(s.code), nil
}

type result struct {
	stdout string
	stderr string
	code   int
	err    error
}

func newFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("echo\n"), 0o755))
	}

	return fs
}

func run(t *testing.T, fs afero.Fs, sel picker.Selector, starter dispatch.Starter, args ...string) result {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("paths in these tests are POSIX")
	}

	t.Setenv(config.EnvConfig, "")

	stubs := gostub.Stub(&discovery.FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&config.FsFactory, func() afero.Fs { return fs })
	stubs.Stub(&launch.NewSelector, func(_, _ bool) picker.Selector { return sel })
	stubs.Stub(&launch.NewStarter, func() dispatch.Starter { return starter })

	defer stubs.Reset()

	var stdout, stderr bytes.Buffer

	root := newRootCmd()
	root.Writer = &stdout
	root.ErrWriter = &stderr
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	ctx := ctxlog.NewWriter(context.Background(), io.Discard)
	err := root.Run(ctx, append([]string{"scriptlauncher"}, args...))

	res := result{stdout: stdout.String(), stderr: stderr.String(), err: err}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		res.code = ec.ExitCode()
	} else if err != nil {
		res.code = 1
	}

	return res
}

func TestLaunch_DryRunPrintsCommand(t *testing.T) {
	fs := newFs(t, "/work/a.sh", "/work/b.ps1")
	sel := &fakeSelector{pick: func(files []script.File) []script.File { return files[:1] }}
	starter := &recordingStarter{}

	res := run(t, fs, sel, starter, "--dry-run", "/work")

	require.NoError(t, res.err)
	assert.Equal(t, "(cd /work && sh -c ./a.sh)\n", res.stdout)
	assert.Empty(t, starter.commands)
}

func TestLaunch_RunsSelectedScripts(t *testing.T) {
	fs := newFs(t, "/work/a.sh", "/work/sub/b.ps1")
	starter := &recordingStarter{}

	res := run(t, fs, &fakeSelector{}, starter, "/work")

	require.NoError(t, res.err)
	require.Len(t, starter.commands, 2)
	assert.Contains(t, res.stderr, "Finished /work/a.sh")
	assert.Contains(t, res.stderr, "Finished /work/sub/b.ps1")
}

func TestLaunch_ExitCodeOfSingleScript(t *testing.T) {
	fs := newFs(t, "/work/a.sh")

	res := run(t, fs, &fakeSelector{}, &recordingStarter{code: 3}, "/work")

	assert.Equal(t, 3, res.code)
	assert.Contains(t, res.stderr, "with exit code 3")
}

func TestLaunch_LaunchFailure(t *testing.T) {
	fs := newFs(t, "/work/a.sh")

	res := run(t, fs, &fakeSelector{}, &recordingStarter{err: errors.New("no such file")}, "/work")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "could not launch /work/a.sh")
}

func TestLaunch_DepthLimitsDiscovery(t *testing.T) {
	fs := newFs(t, "/work/a.sh", "/work/sub/b.sh")
	starter := &recordingStarter{}

	res := run(t, fs, &fakeSelector{}, starter, "--depth", "0", "/work")

	require.NoError(t, res.err)
	require.Len(t, starter.commands, 1)
	assert.Equal(t, "/work", starter.commands[0].Dir)
}

func TestLaunch_NoScripts(t *testing.T) {
	fs := newFs(t, "/work/readme.txt")

	res := run(t, fs, &fakeSelector{}, &recordingStarter{}, "/work")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err.Error(), "No script files found in '/work'")
}

func TestLaunch_MissingDirectory(t *testing.T) {
	res := run(t, newFs(t), &fakeSelector{}, &recordingStarter{}, "/missing")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err.Error(), "Directory '/missing' does not exist.")
}

func TestLaunch_AbortedSelection(t *testing.T) {
	fs := newFs(t, "/work/a.sh")
	starter := &recordingStarter{}

	res := run(t, fs, &fakeSelector{err: picker.ErrAborted}, starter, "/work")

	assert.Equal(t, launch.ExitAborted, res.code)
	assert.Empty(t, starter.commands)
}

func TestLaunch_NegativeDepth(t *testing.T) {
	res := run(t, newFs(t, "/work/a.sh"), &fakeSelector{}, &recordingStarter{}, "--depth=-1", "/work")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err.Error(), "must not be negative")
}

func TestLaunch_ConfigFileExtensions(t *testing.T) {
	fs := newFs(t, "/work/a.sh", "/work/b.py")
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(`extensions: [".py"]
interpreters:
  - extensions: [".py"]
    program: python3
    args: ["{name}"]
`), 0o644))

	res := run(t, fs, &fakeSelector{}, &recordingStarter{}, "--config", "/cfg/config.yaml", "--dry-run", "/work")

	require.NoError(t, res.err)
	assert.Equal(t, "(cd /work && python3 b.py)\n", res.stdout)
}

func TestList_Flat(t *testing.T) {
	fs := newFs(t, "/work/a.sh", "/work/sub/b.cmd", "/work/c.txt")

	res := run(t, fs, nil, nil, "list", "/work")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "a.sh")
	assert.Contains(t, res.stdout, "b.cmd")
	assert.NotContains(t, res.stdout, "c.txt")
}

func TestList_NoScripts(t *testing.T) {
	res := run(t, newFs(t, "/work/c.txt"), nil, nil, "list", "/work")

	assert.Equal(t, 1, res.code)
}

func TestInterpreters_YAML(t *testing.T) {
	res := run(t, newFs(t), nil, nil, "interpreters", "--format", "yaml")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "program: cmd")
	assert.Contains(t, res.stdout, "program: pwsh")
}

func TestInterpreters_Table(t *testing.T) {
	res := run(t, newFs(t), nil, nil, "interpreters")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "PROGRAM")
	assert.Contains(t, res.stdout, "elevation:")
}

func TestConfigInit(t *testing.T) {
	fs := newFs(t)

	res := run(t, fs, nil, nil, "config", "init", "/cfg/config.hcl")
	require.NoError(t, res.err)

	ok, err := afero.Exists(fs, "/cfg/config.hcl")
	require.NoError(t, err)
	assert.True(t, ok)

	res = run(t, fs, nil, nil, "config", "init", "/cfg/config.hcl")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err.Error(), "already exists")

	res = run(t, fs, nil, nil, "config", "init", "--force", "/cfg/config.hcl")
	require.NoError(t, res.err)
}

func TestConfigPath(t *testing.T) {
	fs := newFs(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("depth: 2\n"), 0o644))

	res := run(t, fs, nil, nil, "--config", "/cfg/config.yaml", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, "/cfg/config.yaml\n", res.stdout)

	res = run(t, fs, nil, nil, "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "depth: 1")
}
