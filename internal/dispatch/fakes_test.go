// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"path"
	"sync"
)

type fakeProcess struct {
	pid     int
	code    int
	err     error
	release <-chan struct{}
	before  func()
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Wait() (int, error) {
	if p.before != nil {
		p.before()
	}

	if p.release != nil {
		<-p.release
	}

	return p.code, p.err
}

// fakeStarter records every command and delegates the result to fn.
type fakeStarter struct {
	mu      sync.Mutex
	started []Command
	fn      func(cmd Command) (Process, error)
}

func (s *fakeStarter) Start(_ context.Context, cmd Command) (Process, error) {
	s.mu.Lock()
	s.started = append(s.started, cmd)
	n := len(s.started)
	s.mu.Unlock()

	if s.fn == nil {
		return &fakeProcess{pid: n}, nil
	}

	return s.fn(cmd)
}

func (s *fakeStarter) commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Command(nil), s.started...)
}

// scriptName returns the base name of the script a command runs, from its last argument.
func scriptName(cmd Command) string {
	if len(cmd.Args) == 0 {
		return ""
	}

	return path.Base(cmd.Args[len(cmd.Args)-1])
}
