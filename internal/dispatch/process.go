// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
)

var (
	// ErrCouldNotStartProcess is returned when the interpreter process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrWaitFailed is returned when waiting for a started process fails.
	ErrWaitFailed = errors.New("failed to wait for process")
)

// Command is the concrete process invocation handed to a Starter.
type Command struct {
	Program string   // Program name or path, looked up in PATH.
	Args    []string // Arguments, not including the program itself.
	Dir     string   // Working directory.
}

// Process is a started child process.
type Process interface {
	// Wait blocks until the process exits and returns its exit code.
	Wait() (int, error)
	// Pid returns the operating system process id.
	Pid() int
}

// Starter creates processes.
type Starter interface {
	Start(ctx context.Context, cmd Command) (Process, error)
}

var _ Starter = (*ExecStarter)(nil)

// ExecStarter starts real operating system processes.
// Children inherit the standard streams so that interactive scripts work.
// The context is only used for logging: children are never killed when it is cancelled.
type ExecStarter struct {
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	Env    []string // Defaults to os.Environ().

	// LookPath resolves the program, defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// NewExecStarter returns an ExecStarter wired to the current process's standard streams.
func NewExecStarter() *ExecStarter {
	return &ExecStarter{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Start implements Starter.
func (s *ExecStarter) Start(_ context.Context, cmd Command) (Process, error) {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(cmd.Program)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	env := s.Env
	if env == nil {
		env = os.Environ()
	}

	ps, err := os.StartProcess(path, slices.Concat([]string{cmd.Program}, cmd.Args), &os.ProcAttr{
		Dir:   cmd.Dir,
		Env:   env,
		Files: []*os.File{s.Stdin, s.Stdout, s.Stderr},
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &osProcess{ps: ps}, nil
}

type osProcess struct {
	ps *os.Process
}

func (p *osProcess) Pid() int {
	return p.ps.Pid
}

func (p *osProcess) Wait() (int, error) {
	state, err := p.ps.Wait()
	if err != nil {
		return -1, errors.Join(ErrWaitFailed, err)
	}

	return state.ExitCode(), nil
}
