// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package verifier checks a compact RS256 token against a trust anchor using
// the certificate chain carried in the token's "x5c" header, and returns the
// decoded payload.
//
// Verification follows a fixed order and stops at the first failure:
//  1. Read the unverified header and require a non-empty "x5c" list.
//  2. Decode every entry from base64 and DER.
//  3. Append the trust anchor and check every link of [leaf, ..., anchor],
//     first the algorithm of every signed certificate, then every signature.
//  4. Rebuild an RS256 verification key from the leaf public numbers.
//  5. Verify the token signature with that key, then decode the payload.
//
// Every failure is reported through one of the package sentinels so callers
// can branch with [errors.Is]. Chain link failures also carry a
// *[x509chain.LinkError] reachable with [errors.As].
//
// Claims such as "exp", "nbf" or "iss" are not interpreted.
package verifier
