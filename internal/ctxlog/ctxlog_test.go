// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("with custom logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx := New(context.Background(), logger)
		assert.Same(t, logger, Logger(ctx))
	})

	t.Run("with nil logger should use default", func(t *testing.T) {
		ctx := New(context.Background(), nil)
		assert.Same(t, DefaultLogger, Logger(ctx))
	})
}

func TestLogger_NoLoggerInContext(t *testing.T) {
	assert.Same(t, DefaultLogger, Logger(context.Background()))
}

func TestNewWriter(t *testing.T) {
	prev := LevelVar.Level()
	defer LevelVar.Set(prev)

	LevelVar.Set(slog.LevelInfo)

	buf := &bytes.Buffer{}
	ctx := NewWriter(context.Background(), buf)

	Info(ctx, "hello", "key", "value")
	Debug(ctx, "hidden")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `"key"`)
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelWarn},
		{"nonsense", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFromString(tt.in))
		})
	}
}

func TestSetLevel(t *testing.T) {
	prev := LevelVar.Level()
	defer LevelVar.Set(prev)

	SetLevel("error")
	assert.Equal(t, slog.LevelError, LevelVar.Level())
}

func TestLevelEnvName(t *testing.T) {
	name := LevelEnvName()
	require.True(t, strings.HasSuffix(name, "_LOG_LEVEL"))
	assert.Equal(t, strings.ToUpper(name), name)
	assert.NotContains(t, name, "-")
}
