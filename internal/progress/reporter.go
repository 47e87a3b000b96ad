// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"sync"
)

// ChannelReporter implements Reporter using a buffered channel.
// Events are dropped rather than blocking the sender when the buffer is full.
type ChannelReporter struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer size.
func NewChannelReporter(bufferSize int) *ChannelReporter {
	return &ChannelReporter{
		ch: make(chan Event, bufferSize),
	}
}

// Report implements Reporter.Report.
// If the channel is full or the reporter is closed, the event is dropped.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	default:
	}
}

// Close implements Reporter.Close. It closes the events channel. Calling it again is a no-op.
func (cr *ChannelReporter) Close() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.closed {
		return
	}

	cr.closed = true
	close(cr.ch)
}

// Events returns a read-only channel of progress events.
// The channel is closed when the reporter is closed.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}

// Drain closes the reporter and returns the events still buffered.
func (cr *ChannelReporter) Drain() []Event {
	cr.Close()

	events := make([]Event, 0, len(cr.ch))
	for e := range cr.ch {
		events = append(events, e)
	}

	return events
}
