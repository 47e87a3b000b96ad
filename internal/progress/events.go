// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event represents a change in the state of one launched script.
type Event struct {
	Script    string    // Path of the script.
	Type      EventType // What happened.
	Message   string    // Human-readable status message.
	Timestamp time.Time // When the event occurred.
	ExitCode  int       // For EventCompleted and EventFailed.
	Error     error     // For EventFailed, nil when the script merely exited non-zero.
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventStarted indicates the interpreter process has been started.
	EventStarted EventType = iota
	// EventCompleted indicates the script exited with code zero.
	EventCompleted
	// EventFailed indicates the script could not be launched or exited non-zero.
	EventFailed
	// EventSkipped indicates no interpreter is configured for the script.
	EventSkipped
	// EventCancelled indicates the dispatcher stopped waiting for the script.
	EventCancelled
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends a progress event. Implementations must be safe for concurrent use
	// and must not block the caller for long.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// NullReporter is a no-op implementation of Reporter.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return NullReporter{}
}
