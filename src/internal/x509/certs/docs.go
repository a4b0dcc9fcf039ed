// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides decoding and encoding operations for [X.509] certificates.
// Trust anchors are read as [PEM], DER, or [PKCS7]; token header chain entries
// are read as base64-wrapped DER, following the "x5c" parameter of [RFC 7515].
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
// [RFC 7515]: https://datatracker.ietf.org/doc/html/rfc7515#section-4.1.6
package x509certs
