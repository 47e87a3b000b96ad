// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package launcher ties discovery, selection and dispatch together into one interactive run.
package launcher
