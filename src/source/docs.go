// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package source reads verification inputs: the trust anchor certificate and
// token text, from files or standard input.
//
// Read failures match [ErrIO] under errors.Is and keep the underlying OS
// error reachable, so callers can still test for [fs.ErrNotExist].
package source
