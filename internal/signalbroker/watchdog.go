// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/scriptlauncher/internal/ctxlog"
)

// Watch monitors the signal channel and cancels the context on the first signal received.
// It returns when the context is done or the channel is closed.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	for {
		select {
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received signal, cancelling", "signal", sig.String())
			cancel()

			return
		case <-ctx.Done():
			return
		}
	}
}
