// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"fmt"
)

// SupportedSignatureAlgorithm is the only algorithm a signed link may declare:
// sha256WithRSAEncryption (1.2.840.113549.1.1.11), RSASSA-PKCS1-v1_5.
const SupportedSignatureAlgorithm = x509.SHA256WithRSA

var (
	// ErrEmptyChain indicates a chain without any embedded certificate.
	ErrEmptyChain = errors.New("x509chain: chain has no certificates")

	// ErrNoAnchor indicates a chain built without a trust anchor.
	ErrNoAnchor = errors.New("x509chain: trust anchor is required")

	// ErrUnsupportedAlgorithm indicates a link signed with anything other than
	// [SupportedSignatureAlgorithm].
	ErrUnsupportedAlgorithm = errors.New("x509chain: unsupported signature algorithm")

	// ErrBadSignature indicates an issuer key that does not verify the signed
	// certificate's signature.
	ErrBadSignature = errors.New("x509chain: signature verification failed")
)

// LinkError reports the first chain link that failed. Index is the position
// of the signed certificate; its issuer is at Index+1.
type LinkError struct {
	Index   int
	Subject string
	Issuer  string
	Err     error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("x509chain: link %d (%q signed by %q): %v", e.Index, e.Subject, e.Issuer, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// Chain is a verification path for a token: the certificates embedded in the
// token header followed by the trust anchor.
//
// Certs[0] is the leaf that signed the token and Certs[len(Certs)-1] is the
// anchor. A Chain is never modified after [New] returns, so it may be read
// from several goroutines.
type Chain struct {
	Certs []*x509.Certificate
}

// New creates a Chain from the embedded certificates and the trust anchor.
//
// The anchor is appended positionally. It is not compared against the last
// embedded certificate and it is trusted as the final issuer without any
// check of its own.
//
// Parameters:
//   - embedded: Certificates from the token header, leaf first
//   - anchor: Trust anchor supplied by the operator
//
// Returns:
//   - *Chain: New Chain instance
//   - error: [ErrEmptyChain] or [ErrNoAnchor]
func New(embedded []*x509.Certificate, anchor *x509.Certificate) (*Chain, error) {
	if len(embedded) == 0 {
		return nil, ErrEmptyChain
	}
	if anchor == nil {
		return nil, ErrNoAnchor
	}

	certs := make([]*x509.Certificate, 0, len(embedded)+1)
	certs = append(certs, embedded...)
	certs = append(certs, anchor)
	return &Chain{Certs: certs}, nil
}

// Leaf returns the certificate that signed the token.
func (ch *Chain) Leaf() *x509.Certificate { return ch.Certs[0] }

// Anchor returns the trust anchor.
func (ch *Chain) Anchor() *x509.Certificate { return ch.Certs[len(ch.Certs)-1] }

// Links returns the number of (signed, issuer) pairs in the chain.
func (ch *Chain) Links() int { return len(ch.Certs) - 1 }

// CheckAlgorithms ensures every signed certificate in the chain declares
// [SupportedSignatureAlgorithm]. The anchor is the final issuer and is never
// checked as a signed certificate.
//
// Returns:
//   - error: *[LinkError] wrapping [ErrUnsupportedAlgorithm] for the first offending link
func (ch *Chain) CheckAlgorithms() error {
	for i := range ch.Links() {
		if err := checkAlgorithm(ch.Certs[i]); err != nil {
			return ch.linkError(i, err)
		}
	}
	return nil
}

// VerifySignatures checks each link from the leaf upward and stops at the
// first failure. No prefix of a failing chain is reported as trusted.
//
// Returns:
//   - error: *[LinkError] wrapping [ErrBadSignature] for the first failing link
func (ch *Chain) VerifySignatures() error {
	for i := range ch.Links() {
		if err := checkSignature(ch.Certs[i], ch.Certs[i+1]); err != nil {
			return ch.linkError(i, err)
		}
	}
	return nil
}

// Verify runs [Chain.CheckAlgorithms] over the whole chain and only then
// [Chain.VerifySignatures], so an unsupported algorithm anywhere in the
// chain is reported before any signature is computed.
func (ch *Chain) Verify() error {
	if err := ch.CheckAlgorithms(); err != nil {
		return err
	}
	return ch.VerifySignatures()
}

func checkAlgorithm(signed *x509.Certificate) error {
	if signed.SignatureAlgorithm != SupportedSignatureAlgorithm {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, signed.SignatureAlgorithm)
	}
	return nil
}

// checkSignature verifies signed's signature over its TBS bytes with the
// issuer's key. CheckSignature is used rather than CheckSignatureFrom so
// that issuer basic constraints are not part of the decision.
func checkSignature(signed, issuer *x509.Certificate) error {
	if err := issuer.CheckSignature(signed.SignatureAlgorithm, signed.RawTBSCertificate, signed.Signature); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}

func (ch *Chain) linkError(i int, err error) *LinkError {
	return &LinkError{
		Index:   i,
		Subject: ch.Certs[i].Subject.CommonName,
		Issuer:  ch.Certs[i+1].Subject.CommonName,
		Err:     err,
	}
}
