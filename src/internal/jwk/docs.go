// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package jwk builds RSA verification keys in the [JWK] shape from the public
// numbers of an [X.509] certificate.
//
// Key numbers are written as the shortest big-endian byte string that holds
// the integer, then base64 encoded. The byte count is derived from the bit
// length of the integer, so a 2048-bit modulus yields 256 bytes and a 2047-bit
// modulus also yields 256 bytes, while a 2049-bit modulus yields 257.
//
// [JWK]: https://datatracker.ietf.org/doc/html/rfc7517
// [X.509]: https://grokipedia.com/page/X.509
package jwk
