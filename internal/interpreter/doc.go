// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package interpreter maps a script file to the command line that runs it.
//
// The mapping is an ordered table from extensions to a program and argument templates,
// so new interpreters are data rather than code. The Resolver performs no I/O:
// it returns a LaunchSpec or reports that no mapping exists.
// Elevation is expressed as a verb on the LaunchSpec and applied by an ElevationStrategy
// when the concrete process invocation is built.
package interpreter
