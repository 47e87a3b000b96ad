// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery finds script files below a root directory.
//
// Files are filtered by a script.Extensions set and the walk is bounded by a depth:
// depth 0 searches only the root, depth N descends N directory levels.
// Results come either as a flat list or grouped by containing directory.
// Directories that cannot be read contribute nothing and never abort the scan.
package discovery
