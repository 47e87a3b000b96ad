// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the optional configuration file and layers it over the built-in defaults.
//
// Files may be YAML (.yaml, .yml), HCL (.hcl) or HCL-flavoured JSON (.json).
// HCL files can reference environment variables through the env object, e.g. env.HOME.
// A configuration location may also be a go-getter URL so that teams can share one file.
package config
