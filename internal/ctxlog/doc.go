// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger built on log/slog.
//
// The default is a pretty console handler writing to stderr. The level is read from
// an environment variable derived from the executable name, for example
// SCRIPTLAUNCHER_LOG_LEVEL, and accepts DEBUG, INFO, WARN or ERROR.
// Any other value defaults to WARN.
package ctxlog
