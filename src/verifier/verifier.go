// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verifier

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/jwk"
	x509certs "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/certs"
	x509chain "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/chain"
)

const (
	// ChainHeader is the header parameter holding the certificate chain.
	ChainHeader = "x5c"

	// Algorithm is the only token signature algorithm accepted.
	Algorithm = jwk.AlgorithmRS256
)

// Payload is a decoded token payload. Numbers are kept as [json.Number] so
// that integers survive unchanged.
type Payload map[string]any

// Header is the part of the unverified token header the verifier reads.
type Header struct {
	Algorithm string   `json:"alg"`
	Chain     []string `json:"x5c"`
}

// Result is everything established by a successful verification.
type Result struct {
	// Payload is the decoded token payload.
	Payload Payload
	// Chain is the verified path, leaf first and anchor last.
	Chain *x509chain.Chain
	// Key is the verification key derived from the leaf.
	Key *jwk.VerificationKey
}

// Verifier verifies tokens against a single trust anchor.
//
// The anchor is only read, and every call builds its own chain and key, so
// one Verifier may be shared by several goroutines.
type Verifier struct {
	anchor  *x509.Certificate
	decoder *x509certs.Certificate
	parser  *jwt.Parser
	method  *jwt.SigningMethodRSA
}

// New creates a Verifier that trusts anchor.
func New(anchor *x509.Certificate) *Verifier {
	return &Verifier{
		anchor:  anchor,
		decoder: x509certs.New(),
		parser:  jwt.NewParser(jwt.WithValidMethods([]string{Algorithm})),
		method:  jwt.SigningMethodRS256,
	}
}

// Verify checks token against anchor and returns its payload.
//
// It is shorthand for New(anchor).Verify(token).
func Verify(token string, anchor *x509.Certificate) (Payload, error) {
	return New(anchor).Verify(token)
}

// Verify checks token and returns its payload. No payload is returned unless
// the chain and the token signature have both been verified.
func (v *Verifier) Verify(token string) (Payload, error) {
	res, err := v.VerifyDetailed(token)
	if err != nil {
		return nil, err
	}
	return res.Payload, nil
}

// VerifyDetailed is [Verifier.Verify] that also returns the verified chain
// and the derived key.
//
// Parameters:
//   - token: Compact token text; surrounding whitespace is ignored
//
// Returns:
//   - *Result: Payload, chain and key of the verified token
//   - error: One of the package sentinels, wrapped with detail
func (v *Verifier) VerifyDetailed(token string) (*Result, error) {
	if v.anchor == nil {
		return nil, fmt.Errorf("%w: %w", ErrChainValidationFailed, x509chain.ErrNoAnchor)
	}

	segments := strings.Split(strings.TrimSpace(token), ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(segments))
	}

	header, err := v.ParseHeader(segments[0])
	if err != nil {
		return nil, err
	}

	embedded, err := v.decoder.DecodeEntries(header.Chain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCertificate, err)
	}

	chain, err := x509chain.New(embedded, v.anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if err := chain.Verify(); err != nil {
		if errors.Is(err, x509chain.ErrUnsupportedAlgorithm) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedAlgorithm, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrChainValidationFailed, err)
	}

	key, pub, err := leafKey(chain.Leaf())
	if err != nil {
		return nil, err
	}

	if err := v.verifySignature(segments, pub); err != nil {
		return nil, err
	}

	payload, err := v.decodePayload(segments[1])
	if err != nil {
		return nil, err
	}

	return &Result{Payload: payload, Chain: chain, Key: key}, nil
}

// ParseHeader decodes a header segment without verifying anything. The
// returned header always has a non-empty chain and the RS256 algorithm.
// Parameter names are matched exactly: "X5C" is not "x5c".
func (v *Verifier) ParseHeader(segment string) (*Header, error) {
	raw, err := v.parser.DecodeSegment(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}

	var params map[string]json.RawMessage
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedToken, err)
	}

	var entries []json.RawMessage
	if value, ok := params[ChainHeader]; ok {
		if err := json.Unmarshal(value, &entries); err != nil {
			return nil, fmt.Errorf("%w: header %q is not a list: %v", ErrMalformedToken, ChainHeader, err)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: header has no %q chain", ErrMalformedToken, ChainHeader)
	}

	var header Header
	if value, ok := params["alg"]; ok {
		if err := json.Unmarshal(value, &header.Algorithm); err != nil {
			return nil, fmt.Errorf("%w: header alg: %v", ErrMalformedToken, err)
		}
	}
	if header.Algorithm != Algorithm {
		return nil, fmt.Errorf("%w: token alg %q", ErrUnsupportedAlgorithm, header.Algorithm)
	}

	header.Chain = make([]string, len(entries))
	for i, entry := range entries {
		if err := json.Unmarshal(entry, &header.Chain[i]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedCertificate, i, err)
		}
	}

	return &header, nil
}

// leafKey derives the verification key from the leaf and imports it back,
// so the key that checks the token is the one a JWK consumer would see.
func leafKey(leaf *x509.Certificate) (*jwk.VerificationKey, *rsa.PublicKey, error) {
	pub, ok := leaf.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("%w: leaf key is %T, want RSA", ErrUnsupportedAlgorithm, leaf.PublicKey)
	}

	key, err := jwk.NewRSA(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: leaf key: %w", ErrMalformedCertificate, err)
	}
	imported, err := key.PublicKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: leaf key: %w", ErrMalformedCertificate, err)
	}

	return key, imported, nil
}

func (v *Verifier) verifySignature(segments []string, pub *rsa.PublicKey) error {
	sig, err := v.parser.DecodeSegment(segments[2])
	if err != nil {
		return fmt.Errorf("%w: signature: %v", ErrMalformedToken, err)
	}

	signingString := segments[0] + "." + segments[1]
	if err := v.method.Verify(signingString, sig, pub); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

func (v *Verifier) decodePayload(segment string) (Payload, error) {
	raw, err := v.parser.DecodeSegment(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedPayload)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedPayload)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after payload", ErrMalformedPayload)
	}

	return payload, nil
}
