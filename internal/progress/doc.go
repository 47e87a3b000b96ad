// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress reports the lifecycle of launched scripts.
// The dispatcher emits an Event when a script starts and when it finishes,
// and a Reporter decides where those events go: nowhere, a terminal or a channel.
package progress
