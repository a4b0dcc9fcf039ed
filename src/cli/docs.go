// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for verifying x5c-signed tokens.
// It implements a Cobra-based command tree with three subcommands:
//
//   - json: verifies an updates token and a key list token and prints the
//     active certificate records grouped by key identifier
//   - txt: verifies a response token and prints its revoked entries
//   - inspect: verifies a token and renders its certificate chain as an ASCII
//     tree, a markdown table, or JSON
//
// Results go to standard output and diagnostics to standard error through
// the logger package. Settings come from the config package and may be
// overridden per invocation with flags.
package cli
