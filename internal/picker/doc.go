// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package picker lets the user choose which scripts to run.
//
// TUI is a full-screen multi-select built on bubbletea. Line is a plain numbered prompt
// for terminals that cannot host the TUI, or when input is piped.
package picker
