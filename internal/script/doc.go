// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package script holds the value types shared by discovery, the interpreter resolver
// and the dispatcher: a discovered script file and a normalized set of extension patterns.
package script
