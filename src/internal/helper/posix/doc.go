// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-style helpers for command-line front-ends.
//
// Key functions:
//   - ExecutableName: Returns the program name from an argv[0] value
//   - GetExecutableName: ExecutableName applied to os.Args
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/x5c-jwt-verifier" → "x5c-jwt-verifier"
//   - Windows: "C:\bin\x5c-jwt-verifier.exe" → "x5c-jwt-verifier"
//   - Fallback: Empty args → [DefaultExecutableName]
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
