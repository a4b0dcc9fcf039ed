// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import "errors"

var (
	// ErrMalformedToken indicates a token that is not three segments, has an
	// unreadable header, or carries no "x5c" chain.
	ErrMalformedToken = errors.New("verifier: malformed token")

	// ErrMalformedCertificate indicates a chain entry that is not base64 DER,
	// or a leaf key that cannot be turned into a verification key.
	ErrMalformedCertificate = errors.New("verifier: malformed certificate")

	// ErrUnsupportedAlgorithm indicates a token or chain link using anything
	// but RS256 / sha256WithRSAEncryption, or a leaf without an RSA key.
	ErrUnsupportedAlgorithm = errors.New("verifier: unsupported algorithm")

	// ErrChainValidationFailed indicates a link whose issuer does not verify it.
	ErrChainValidationFailed = errors.New("verifier: chain validation failed")

	// ErrSignatureInvalid indicates a token whose signature does not match the leaf key.
	ErrSignatureInvalid = errors.New("verifier: token signature invalid")

	// ErrMalformedPayload indicates a verified payload that is not a JSON object.
	ErrMalformedPayload = errors.New("verifier: malformed payload")
)
