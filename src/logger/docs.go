// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line diagnostics and JSONLogger for structured JSON lines
// consumed by log collectors. Both write to stderr by default so that command
// results on stdout stay machine-readable.
package logger
