// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"io"
	"sync"
)

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// SyncWriter returns a writer that serialises writes to w, so concurrent scripts and
// a progress reporter can share one sink. Wrapping a writer returned by SyncWriter
// returns it unchanged. A nil writer stays nil.
func SyncWriter(w io.Writer) io.Writer {
	if w == nil {
		return nil
	}

	if sw, ok := w.(*syncWriter); ok {
		return sw
	}

	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.w.Write(p) //nolint:wrapcheck
}
