// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/cli"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/logger"
	verpkg "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

const (
	exitFailure   = 1
	exitInterrupt = 130 // Standard exit code for SIGINT
)

func main() {
	os.Exit(run(context.Background(), logger.NewCLILogger()))
}

// run executes the CLI until it finishes or a termination signal arrives
// and returns the process exit status.
func run(parent context.Context, log logger.Logger) int {
	// Set up signal handling using signal.NotifyContext for cleaner cancellation
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to signal completion
	done := make(chan error, 1)

	// Run the CLI in a separate goroutine
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	// Wait for either completion or context cancellation
	select {
	case err := <-done:
		if ctx.Err() != nil {
			return exitInterrupt
		}
		// cli.Execute has already logged the error.
		if err != nil {
			return exitFailure
		}
		return 0
	case <-ctx.Done():
		log.Println("Operation cancelled by signal. Exiting...")
		// Give the CLI a moment to clean up
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
		return exitInterrupt
	}
}
