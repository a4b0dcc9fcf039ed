// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the chain as an ASCII tree, leaf first.
//
// Each line shows the subject common name and the role of the certificate.
// The tree is meant for chains that have already passed [Chain.Verify].
//
// Returns:
//   - string: ASCII tree representation of the certificate chain
func (ch *Chain) RenderASCIITree() string {
	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		result.WriteString(fmt.Sprintf("%s[✓] %s (%s)\n", connector, cert.Subject.CommonName, ch.getCertificateRole(i)))
	}

	return result.String()
}

// RenderTable renders the chain as a markdown table.
//
// It displays role, subject, issuer, signature algorithm, validity end and
// key size for each certificate using tablewriter.
//
// Returns:
//   - string: Markdown table representation of the certificate chain
func (ch *Chain) RenderTable() string {
	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Signature", "Valid Until", "Key"})

	var rows [][]string
	for i, cert := range ch.Certs {
		algo, bits := publicKeyInfo(cert)
		key := "unknown"
		if bits > 0 {
			key = fmt.Sprintf("%d-bit %s", bits, algo)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.SignatureAlgorithm.String(),
			cert.NotAfter.Format("2006-01-02"),
			key,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts the chain to structured JSON, including the
// "signed_by" relationship of every link.
//
// Returns:
//   - []byte: JSON representation of the certificate chain
//   - error: Error if JSON marshaling fails
func (ch *Chain) ToVisualizationJSON() ([]byte, error) {
	type CertificateVizData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		PublicKeyAlgorithm string    `json:"publicKeyAlgorithm"`
		KeySize            int       `json:"keySize"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
	}

	type RelationshipData struct {
		FromIndex int    `json:"fromIndex"`
		ToIndex   int    `json:"toIndex"`
		Type      string `json:"type"`
	}

	type VisualizationData struct {
		ChainLength   int                  `json:"chainLength"`
		Certificates  []CertificateVizData `json:"certificates"`
		Relationships []RelationshipData   `json:"relationships"`
	}

	data := VisualizationData{
		ChainLength:   len(ch.Certs),
		Certificates:  make([]CertificateVizData, len(ch.Certs)),
		Relationships: make([]RelationshipData, 0, max(len(ch.Certs)-1, 0)),
	}

	for i, cert := range ch.Certs {
		algo, bits := publicKeyInfo(cert)
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               ch.getCertificateRole(i),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: algo,
			KeySize:            bits,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
		}
	}

	for i := 0; i < len(ch.Certs)-1; i++ {
		data.Relationships = append(data.Relationships, RelationshipData{
			FromIndex: i,
			ToIndex:   i + 1,
			Type:      "signed_by",
		})
	}

	return json.MarshalIndent(data, "", "  ")
}

// publicKeyInfo returns the public key algorithm name and size in bits.
func publicKeyInfo(cert *x509.Certificate) (string, int) {
	switch pubKey := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return "RSA", pubKey.Size() * 8
	case *ecdsa.PublicKey:
		return "ECDSA", pubKey.Curve.Params().BitSize
	case ed25519.PublicKey:
		return "Ed25519", 256
	default:
		return "unknown", 0
	}
}

// getCertificateRole determines the role of a certificate by its position.
func (ch *Chain) getCertificateRole(index int) string {
	switch index {
	case len(ch.Certs) - 1:
		return "Trust Anchor"
	case 0:
		return "Token Signer"
	default:
		return "Intermediate CA"
	}
}
