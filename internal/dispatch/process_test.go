// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func writeScript(t *testing.T, dir, name, body string) script.File {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755)) //nolint:gosec

	return script.NewFile(p)
}

func TestExecStarter_RealProcesses(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	ok := writeScript(t, dir, "ok.sh", "exit 0")
	bad := writeScript(t, dir, "bad.sh", "exit 3")
	pwdFile := filepath.Join(dir, "pwd.txt")
	cwd := writeScript(t, dir, "cwd.sh", "pwd > pwd.txt")

	d := New(linuxResolver(), WithStarter(&ExecStarter{}))
	outcomes := d.RunAll(context.Background(), []script.File{ok, bad, cwd}, false)

	assert.Equal(t, StatusSucceeded, outcomes[0].Status)
	assert.Equal(t, StatusExitedNonZero, outcomes[1].Status)
	assert.Equal(t, 3, outcomes[1].ExitCode)
	assert.Equal(t, StatusSucceeded, outcomes[2].Status)

	// Scripts run in their own directory.
	got, err := os.ReadFile(pwdFile)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	gotDir, err := filepath.EvalSymlinks(string(bytes.TrimSpace(got)))
	require.NoError(t, err)
	assert.Equal(t, want, gotDir)
}

func TestExecStarter_MissingInterpreter(t *testing.T) {
	defer goleak.VerifyNone(t)

	errMissing := errors.New("executable file not found in $PATH")
	starter := &ExecStarter{
		LookPath: func(string) (string, error) { return "", errMissing },
	}
	out := &bytes.Buffer{}
	d := New(linuxResolver(), WithStarter(starter), WithOutput(out))

	f := writeScript(t, t.TempDir(), "ok.sh", "exit 0")
	res := d.Run(context.Background(), f, false)

	assert.Equal(t, StatusLaunchFailed, res.Status)
	require.ErrorIs(t, res.Err, ErrCouldNotStartProcess)
	require.ErrorIs(t, res.Err, errMissing)
	assert.Contains(t, out.String(), "could not launch "+f.Path)
}

func TestExecStarter_Pid(t *testing.T) {
	ps, err := (&ExecStarter{}).Start(context.Background(), Command{Program: "sh", Args: []string{"-c", "exit 0"}})
	require.NoError(t, err)
	assert.Positive(t, ps.Pid())

	code, err := ps.Wait()
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
