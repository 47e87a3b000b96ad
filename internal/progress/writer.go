// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/scriptlauncher/internal/color"
)

const timeFormat = "15:04:05"

// WriterReporter writes one human-readable line per event.
// Lines are coloured by event type when colour is enabled.
// Launch failures carry an error and are not written: the dispatcher reports those on its own sink.
type WriterReporter struct {
	mu     sync.Mutex
	w      io.Writer
	colour bool
}

// NewWriterReporter creates a WriterReporter. Colour follows color.Enabled().
func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{
		w:      w,
		colour: color.Enabled(),
	}
}

// WithColour forces colour on or off.
func (wr *WriterReporter) WithColour(colour bool) *WriterReporter {
	wr.colour = colour
	return wr
}

// Report implements Reporter.Report.
func (wr *WriterReporter) Report(event Event) {
	line, codes := wr.format(event)
	if line == "" {
		return
	}

	if wr.colour {
		line = color.Paint(line, codes...)
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	fmt.Fprintln(wr.w, line) //nolint:errcheck
}

// Close implements Reporter.Close.
func (wr *WriterReporter) Close() {}

func (wr *WriterReporter) format(e Event) (string, []color.Code) {
	ts := e.Timestamp.Format(timeFormat)

	switch e.Type {
	case EventStarted:
		return fmt.Sprintf("Starting %s at [%s]", e.Script, ts), []color.Code{color.FgCyan}
	case EventCompleted:
		return fmt.Sprintf("Finished %s at [%s]", e.Script, ts), []color.Code{color.FgGreen}
	case EventFailed:
		if e.Error != nil {
			return "", nil
		}

		return fmt.Sprintf("Finished %s at [%s] with exit code %d", e.Script, ts, e.ExitCode), []color.Code{color.FgRed}
	case EventSkipped:
		return fmt.Sprintf("Skipped %s: %s", e.Script, e.Message), []color.Code{color.FgYellow}
	case EventCancelled:
		return fmt.Sprintf("Stopped waiting for %s at [%s]", e.Script, ts), []color.Code{color.FgYellow}
	default:
		return "", nil
	}
}
