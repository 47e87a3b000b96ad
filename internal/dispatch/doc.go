// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch launches resolved scripts as child processes and collects their outcomes.
//
// Scripts in a batch run concurrently with no cap. Each script is isolated: an unsupported
// extension, a launch failure or a non-zero exit affects only that script's Outcome.
// Cancelling the context makes the dispatcher stop waiting; processes already started
// keep running.
package dispatch
