// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509test builds throwaway certificate hierarchies and x5c-signed
// tokens for tests. Nothing here touches the network or the file system.
package x509test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Node is a certificate together with the private key of its subject.
type Node struct {
	Cert *x509.Certificate
	Key  crypto.Signer
}

// RSAKey returns the node's key as an RSA key, failing the test otherwise.
func (n *Node) RSAKey(tb testing.TB) *rsa.PrivateKey {
	tb.Helper()
	k, ok := n.Key.(*rsa.PrivateKey)
	if !ok {
		tb.Fatalf("x509test: node %q does not hold an RSA key", n.Cert.Subject.CommonName)
	}
	return k
}

// Option adjusts how a certificate is issued.
type Option func(*issueOptions)

type issueOptions struct {
	sigAlg x509.SignatureAlgorithm
	ecKey  bool
	leaf   bool
}

// WithSignatureAlgorithm sets the algorithm the issuer signs with.
func WithSignatureAlgorithm(alg x509.SignatureAlgorithm) Option {
	return func(o *issueOptions) { o.sigAlg = alg }
}

// WithECDSAKey gives the subject a P-256 key instead of an RSA key.
func WithECDSAKey() Option {
	return func(o *issueOptions) { o.ecKey = true }
}

// AsLeaf issues an end-entity certificate (not a CA).
func AsLeaf() Option {
	return func(o *issueOptions) { o.leaf = true }
}

// NewRoot creates a self-signed RSA root.
func NewRoot(tb testing.TB, cn string, opts ...Option) *Node {
	tb.Helper()
	return issue(tb, nil, cn, opts)
}

// Issue creates a certificate for cn signed by n.
func (n *Node) Issue(tb testing.TB, cn string, opts ...Option) *Node {
	tb.Helper()
	return issue(tb, n, cn, opts)
}

func issue(tb testing.TB, parent *Node, cn string, opts []Option) *Node {
	tb.Helper()

	o := issueOptions{sigAlg: x509.SHA256WithRSA}
	for _, opt := range opts {
		opt(&o)
	}

	var key crypto.Signer
	var err error
	if o.ecKey {
		key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	} else {
		key, err = rsa.GenerateKey(rand.Reader, 2048)
	}
	if err != nil {
		tb.Fatalf("x509test: generate key for %q: %v", cn, err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		tb.Fatalf("x509test: serial: %v", err)
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(24 * time.Hour),
		SignatureAlgorithm:    o.sigAlg,
		BasicConstraintsValid: true,
		IsCA:                  !o.leaf,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	if o.leaf {
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	}

	issuerCert, issuerKey := tmpl, key
	if parent != nil {
		issuerCert, issuerKey = parent.Cert, parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, issuerCert, key.Public(), issuerKey)
	if err != nil {
		tb.Fatalf("x509test: create certificate %q: %v", cn, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("x509test: parse certificate %q: %v", cn, err)
	}

	return &Node{Cert: cert, Key: key}
}

// Certs returns the certificates of nodes in the given order.
func Certs(nodes ...*Node) []*x509.Certificate {
	certs := make([]*x509.Certificate, 0, len(nodes))
	for _, n := range nodes {
		certs = append(certs, n.Cert)
	}
	return certs
}

// Entries encodes certificates as "x5c" header entries.
func Entries(certs ...*x509.Certificate) []string {
	entries := make([]string, 0, len(certs))
	for _, c := range certs {
		entries = append(entries, base64.StdEncoding.EncodeToString(c.Raw))
	}
	return entries
}

// SignToken mints an RS256 token over claims with the given chain in its
// "x5c" header.
func SignToken(tb testing.TB, key *rsa.PrivateKey, chain []*x509.Certificate, claims map[string]any) string {
	tb.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims(claims))
	token.Header["x5c"] = Entries(chain...)

	signed, err := token.SignedString(key)
	if err != nil {
		tb.Fatalf("x509test: sign token: %v", err)
	}
	return signed
}

// SignRaw mints an RS256-signed compact token from an arbitrary header and
// raw payload bytes. It is used to build tokens that a well-behaved issuer
// would never produce.
func SignRaw(tb testing.TB, key *rsa.PrivateKey, header map[string]any, payload []byte) string {
	tb.Helper()

	h, err := json.Marshal(header)
	if err != nil {
		tb.Fatalf("x509test: marshal header: %v", err)
	}

	signingString := base64.RawURLEncoding.EncodeToString(h) + "." + base64.RawURLEncoding.EncodeToString(payload)
	sig, err := jwt.SigningMethodRS256.Sign(signingString, key)
	if err != nil {
		tb.Fatalf("x509test: sign raw token: %v", err)
	}
	return signingString + "." + base64.RawURLEncoding.EncodeToString(sig)
}

// TamperSignature returns cert re-parsed from DER in which one byte of the
// signature value has been flipped. The TBS bytes are untouched, so only the
// signature check against the issuer can fail.
func TamperSignature(tb testing.TB, cert *x509.Certificate, index int) *x509.Certificate {
	tb.Helper()

	raw := append([]byte(nil), cert.Raw...)
	// The signature BIT STRING is the last element of the certificate.
	off := len(raw) - len(cert.Signature) + index%len(cert.Signature)
	raw[off] ^= 0x01

	tampered, err := x509.ParseCertificate(raw)
	if err != nil {
		tb.Fatalf("x509test: reparse tampered certificate: %v", err)
	}
	return tampered
}
