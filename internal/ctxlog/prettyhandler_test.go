// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	handler := NewPrettyHandler(nil)
	require.NotNil(t, handler)
	assert.NotNil(t, handler.h)
	assert.NotNil(t, handler.b)
	assert.NotNil(t, handler.m)
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.colour)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_Handle(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(buf))

	r := slog.NewRecord(time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC), slog.LevelWarn, "launch failed", 0)
	r.AddAttrs(slog.String("script", "deploy.sh"))

	require.NoError(t, handler.Handle(context.Background(), r))

	out := buf.String()
	assert.Contains(t, out, "[03:04:05.006]")
	assert.Contains(t, out, "WARN:")
	assert.Contains(t, out, "launch failed")
	assert.Contains(t, out, `"script"`)
	assert.Contains(t, out, `"deploy.sh"`)
	assert.NotContains(t, out, "\033[", "colour must be off unless requested")
}

func TestPrettyHandler_Handle_Colour(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(nil, WithDestinationWriter(buf), WithColour())

	r := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, handler.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "\033[31mERROR:")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(buf)))

	logger.With("dir", "/tmp").WithGroup("proc").Info("started", "pid", 42)

	out := buf.String()
	assert.Contains(t, out, `"dir"`)
	assert.Contains(t, out, `"proc"`)
	assert.Contains(t, out, `"pid"`)
}

func TestPrettyHandler_Handle_WithReplaceAttr(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	}, WithDestinationWriter(buf))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "no time", 0)
	require.NoError(t, handler.Handle(context.Background(), r))

	assert.NotContains(t, buf.String(), "[")
	assert.Contains(t, buf.String(), "INFO: no time")
}

func TestPrettyHandler_OutputEmptyAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewPrettyHandler(nil, WithDestinationWriter(buf), WithOutputEmptyAttrs())

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "empty", 0)
	require.NoError(t, handler.Handle(context.Background(), r))

	assert.Contains(t, buf.String(), "{}")
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestPrettyHandler_Handle_WriteError(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	err := handler.Handle(context.Background(), r)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestSuppressDefaults(t *testing.T) {
	fn := suppressDefaults(nil)

	for _, key := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.True(t, fn(nil, slog.String(key, "x")).Equal(slog.Attr{}), key)
	}

	a := slog.String("other", "x")
	assert.True(t, fn(nil, a).Equal(a))
}
