// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package source

import (
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/x5c-jwt-verifier/src/internal/x509/certs"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// DefaultMaxSize bounds a single anchor or token read.
const DefaultMaxSize = 4 << 20

var (
	// ErrIO matches every failure to read an input.
	ErrIO = errors.New("source: input unreadable")

	// ErrEmptyToken indicates token input that is empty after trimming.
	ErrEmptyToken = errors.New("source: token is empty")
)

// TrustAnchorLoader loads the certificate every chain must end at.
type TrustAnchorLoader interface {
	LoadAnchor(path string) (*x509.Certificate, error)
}

// TokenSource loads the raw text of a token.
type TokenSource interface {
	LoadToken(path string) (string, error)
}

// ReadError describes a failed read of a named input.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("source: read %s: %v", e.Path, e.Err) }

func (e *ReadError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers need not know about ReadError.
func (e *ReadError) Is(target error) bool { return target == ErrIO }

// Loader reads anchors and tokens from the file system or from Stdin.
// It implements both [TrustAnchorLoader] and [TokenSource].
type Loader struct {
	// Stdin is read when a token path is empty or "-".
	Stdin io.Reader
	// MaxSize is the largest input accepted, in bytes.
	MaxSize int64

	decoder *x509certs.Certificate
}

// New creates a Loader reading standard input from os.Stdin.
func New() *Loader {
	return &Loader{
		Stdin:   os.Stdin,
		MaxSize: DefaultMaxSize,
		decoder: x509certs.New(),
	}
}

// LoadAnchor reads and decodes a trust anchor. PEM is the expected format;
// DER and PKCS7 files are accepted too.
//
// Parameters:
//   - path: Location of the certificate file
//
// Returns:
//   - *x509.Certificate: The trust anchor
//   - error: A [ReadError] or a decode error annotated with path
func (l *Loader) LoadAnchor(path string) (*x509.Certificate, error) {
	data, err := l.readFile(path)
	if err != nil {
		return nil, err
	}

	cert, err := l.decoder.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "trust anchor %s", path)
	}
	return cert, nil
}

// LoadToken reads token text from path, or from Stdin when path is empty
// or [Stdin]. Surrounding whitespace is removed.
func (l *Loader) LoadToken(path string) (string, error) {
	if path == "" || path == Stdin {
		return l.ReadToken(l.Stdin, "<stdin>")
	}

	data, err := l.readFile(path)
	if err != nil {
		return "", err
	}
	return trimToken(data, path)
}

// ReadToken reads token text from r. The name is used in error messages.
func (l *Loader) ReadToken(r io.Reader, name string) (string, error) {
	if r == nil {
		return "", errors.WithStack(&ReadError{Path: name, Err: os.ErrInvalid})
	}

	data, err := gc.ReadAll(r, l.MaxSize)
	if err != nil {
		return "", errors.WithStack(&ReadError{Path: name, Err: err})
	}
	return trimToken(data, name)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}
	defer f.Close()

	data, err := gc.ReadAll(f, l.MaxSize)
	if err != nil {
		return nil, errors.WithStack(&ReadError{Path: path, Err: err})
	}
	return data, nil
}

func trimToken(data []byte, name string) (string, error) {
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", errors.Wrap(ErrEmptyToken, name)
	}
	return token, nil
}
