// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain implements the [X.509] trust path of an x5c-signed token.
// It provides capabilities to:
//   - Build the path [leaf, ..., anchor] from header certificates and a trust anchor.
//   - Gate every signed link on sha256WithRSAEncryption.
//   - Verify each link against its issuer, failing on the first bad link.
//   - Render a verified path as an ASCII tree, a markdown table, or JSON.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509chain
