// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrInvalidBase64 indicates a chain entry that is not standard base64.
	ErrInvalidBase64 = errors.New("x509certs: invalid base64 chain entry")

	// ErrEmptyEntry indicates a chain entry that decodes to zero bytes.
	ErrEmptyEntry = errors.New("x509certs: empty chain entry")
)

// Certificate provides methods to decode and encode [X.509] certificates.
// It maintains internal configuration such as the certificate block type.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// isPEM checks if the data is in PEM format.
func (c *Certificate) isPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// Decode decodes a single certificate from data.
//
// PEM input yields the first CERTIFICATE block. Raw input is tried as DER and
// then as a PKCS7 bundle, in which case the first certificate of the bundle is
// returned. Input that is neither fails with [ErrParseCertificate].
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.isPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// DecodeEntry decodes one "x5c" header entry: standard base64 wrapping a
// single DER certificate. Unlike [Certificate.Decode] there is no PEM or
// PKCS7 fallback.
func (c *Certificate) DecodeEntry(entry string) (*x509.Certificate, error) {
	der, err := base64.StdEncoding.DecodeString(entry)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	if len(der) == 0 {
		return nil, ErrEmptyEntry
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCertificate, err)
	}
	return cert, nil
}

// DecodeEntries decodes every "x5c" entry in order. The first failure aborts
// the whole decode and names the entry index.
func (c *Certificate) DecodeEntries(entries []string) ([]*x509.Certificate, error) {
	certs := make([]*x509.Certificate, 0, len(entries))
	for i, entry := range entries {
		cert, err := c.DecodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeMultiplePEM encodes multiple certificates to PEM format, one block
// per certificate in the given order.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}
