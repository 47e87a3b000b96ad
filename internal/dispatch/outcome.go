// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"slices"
	"time"

	"github.com/matt-FFFFFF/scriptlauncher/internal/script"
)

// Status is the final state of one script in a dispatch.
type Status int

const (
	// StatusSucceeded means the script exited with code zero.
	StatusSucceeded Status = iota
	// StatusExitedNonZero means the script ran and exited with a non-zero code.
	StatusExitedNonZero
	// StatusLaunchFailed means the interpreter process could not be started.
	StatusLaunchFailed
	// StatusUnsupported means no interpreter handles the extension. Nothing was launched.
	StatusUnsupported
	// StatusCancelled means the dispatcher stopped waiting before the script finished.
	StatusCancelled
	// StatusPlanned means the command line was printed instead of run.
	StatusPlanned
)

// String implements the Stringer interface for Status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusExitedNonZero:
		return "exited non-zero"
	case StatusLaunchFailed:
		return "launch failed"
	case StatusUnsupported:
		return "unsupported"
	case StatusCancelled:
		return "cancelled"
	case StatusPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Outcome is the result of dispatching one script.
type Outcome struct {
	Script   script.File
	Status   Status
	ExitCode int   // Exit code of the process, -1 when it never ran to completion.
	Err      error // Set for launch and wait failures.
	Duration time.Duration
}

// Failed reports whether the outcome counts as a failure.
// Unsupported and cancelled scripts are not failures.
func (o Outcome) Failed() bool {
	return o.Status == StatusExitedNonZero || o.Status == StatusLaunchFailed
}

// Attempted reports whether the script got as far as a launch, including cancelled ones.
func (o Outcome) Attempted() bool {
	return o.Status != StatusUnsupported && o.Status != StatusPlanned
}

// Outcomes is the result of a batch, in the order the scripts were given.
type Outcomes []Outcome

// Failed returns the failed outcomes.
func (o Outcomes) Failed() Outcomes {
	var failed Outcomes

	for v := range slices.Values(o) {
		if v.Failed() {
			failed = append(failed, v)
		}
	}

	return failed
}

// Attempted returns the number of scripts for which a launch was attempted.
func (o Outcomes) Attempted() int {
	n := 0

	for v := range slices.Values(o) {
		if v.Attempted() {
			n++
		}
	}

	return n
}

// ExitCode summarises the outcomes as a process exit code.
// A single outcome surfaces its own exit code, a batch returns 1 if anything failed.
func (o Outcomes) ExitCode() int {
	if len(o) == 1 {
		switch o[0].Status {
		case StatusExitedNonZero:
			if o[0].ExitCode > 0 {
				return o[0].ExitCode
			}

			return 1
		case StatusLaunchFailed:
			return 1
		default:
			return 0
		}
	}

	if len(o.Failed()) > 0 {
		return 1
	}

	return 0
}
