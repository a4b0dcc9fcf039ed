// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/certs"
	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/x509test"
)

const (
	invalidPEM = `
-----BEGIN INVALID-----
MIIEmTCCBD+gAwIBAgIRANFjRCmF+Y2bUYHbhxwkEpowCgYIKoZIzj0EAwIwgY8x
-----END INVALID-----
`

	invalidCERT = `
-----BEGIN CERTIFICATE-----
MIIBIjANBgkqhkiG9w0BAQEFAAOCAQ8AMIIBCgKCAQEAz6e5VV5F8rF2sFJ0Q4vA
-----END CERTIFICATE-----
`
)

func TestCertificateOperations(t *testing.T) {
	root := x509test.NewRoot(t, "Test Root")
	leaf := root.Issue(t, "Test Signer", x509test.AsLeaf())

	tests := []struct {
		name     string
		testFunc func(t *testing.T, decoder *x509certs.Certificate)
	}{
		{
			name: "Decode PEM Anchor",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				cert, err := decoder.Decode(decoder.EncodePEM(root.Cert))
				require.NoError(t, err, "Decode() error")

				assert.True(t, root.Cert.Equal(cert), "decoded certificate does not match original")
				assert.Equal(t, "Test Root", cert.Subject.CommonName)
			},
		},
		{
			name: "Decode DER Anchor",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				cert, err := decoder.Decode(root.Cert.Raw)
				require.NoError(t, err, "Decode() error")

				assert.True(t, root.Cert.Equal(cert), "decoded certificate does not match original")
			},
		},
		{
			name: "Decode First Block Of Bundle",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				bundle := decoder.EncodeMultiplePEM([]*x509.Certificate{leaf.Cert, root.Cert})

				cert, err := decoder.Decode(bundle)
				require.NoError(t, err, "Decode() error")

				assert.True(t, leaf.Cert.Equal(cert), "expected the first certificate of the bundle")
			},
		},
		{
			name: "Entry Round Trip",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				entry := x509test.Entries(leaf.Cert)[0]

				cert, err := decoder.DecodeEntry(entry)
				require.NoError(t, err, "DecodeEntry() error")

				assert.True(t, leaf.Cert.Equal(cert), "original and decoded certificates are not equal")
			},
		},
		{
			name: "Entries Keep Order",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				entries := x509test.Entries(leaf.Cert, root.Cert)
				require.Len(t, entries, 2)

				certs, err := decoder.DecodeEntries(entries)
				require.NoError(t, err, "DecodeEntries() error")
				require.Len(t, certs, 2)

				assert.True(t, leaf.Cert.Equal(certs[0]))
				assert.True(t, root.Cert.Equal(certs[1]))
			},
		},
	}

	decoder := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, decoder)
		})
	}
}

func TestDecodeCertificate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "Invalid PEM Block",
			input:    invalidPEM,
			expected: x509certs.ErrInvalidBlockType,
		},
		{
			name:     "Invalid Certificate",
			input:    invalidCERT,
			expected: x509certs.ErrParseCertificate,
		},
		{
			name:     "Invalid DER Data",
			input:    "not a certificate",
			expected: x509certs.ErrParseCertificate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := x509certs.New()
			_, err := decoder.Decode([]byte(tt.input))
			assert.Equal(t, tt.expected, err, "expected specific error")
		})
	}
}

func TestDecodeEntry_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "Not Base64",
			input:    "%%%not-base64%%%",
			expected: x509certs.ErrInvalidBase64,
		},
		{
			name:     "URL Alphabet Rejected",
			input:    "-_-_",
			expected: x509certs.ErrInvalidBase64,
		},
		{
			name:     "Empty",
			input:    "",
			expected: x509certs.ErrEmptyEntry,
		},
		{
			name:     "Not DER",
			input:    base64.StdEncoding.EncodeToString([]byte("definitely not DER")),
			expected: x509certs.ErrParseCertificate,
		},
	}

	decoder := x509certs.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.DecodeEntry(tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestDecodeEntries_ReportsIndex(t *testing.T) {
	root := x509test.NewRoot(t, "Test Root")
	decoder := x509certs.New()

	entries := []string{x509test.Entries(root.Cert)[0], "!!"}
	certs, err := decoder.DecodeEntries(entries)

	assert.Nil(t, certs, "no partial result on failure")
	require.Error(t, err)
	assert.ErrorIs(t, err, x509certs.ErrInvalidBase64)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestCertificate_EncodeMultiplePEM(t *testing.T) {
	decoder := x509certs.New()
	cert := x509test.NewRoot(t, "Test Root").Cert

	tests := []struct {
		name         string
		certs        []*x509.Certificate
		expectBlocks int
	}{
		{
			name:         "Single Certificate",
			certs:        []*x509.Certificate{cert},
			expectBlocks: 1,
		},
		{
			name:         "Multiple Certificates",
			certs:        []*x509.Certificate{cert, cert},
			expectBlocks: 2,
		},
		{
			name:         "Empty List",
			certs:        []*x509.Certificate{},
			expectBlocks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := decoder.EncodeMultiplePEM(tt.certs)

			if tt.expectBlocks == 0 {
				assert.Empty(t, encoded, "expected empty result")
				return
			}

			blockCount := 0
			rest := encoded
			for len(rest) > 0 {
				block, remainder := pem.Decode(rest)
				if block == nil {
					break
				}
				assert.Equal(t, "CERTIFICATE", block.Type)
				blockCount++
				rest = remainder
			}

			assert.Equal(t, tt.expectBlocks, blockCount, "expected correct number of PEM blocks")
		})
	}
}
