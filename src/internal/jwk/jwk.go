// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package jwk

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"math"
	"math/big"
)

const (
	// KeyTypeRSA is the "kty" value of an RSA key.
	KeyTypeRSA = "RSA"

	// AlgorithmRS256 is the only "alg" value a [VerificationKey] carries.
	AlgorithmRS256 = "RS256"
)

var (
	// ErrNonPositive indicates an attempt to encode zero or a negative integer.
	ErrNonPositive = errors.New("jwk: integer must be positive")

	// ErrInvalidEncoding indicates a key number that is not valid base64.
	ErrInvalidEncoding = errors.New("jwk: invalid base64 key number")

	// ErrNonMinimal indicates a key number with a leading zero byte or no bytes at all.
	ErrNonMinimal = errors.New("jwk: key number is not minimally encoded")

	// ErrKeyType indicates a key whose "kty" is not RSA.
	ErrKeyType = errors.New("jwk: unsupported key type")

	// ErrAlgorithm indicates a key whose "alg" is not RS256.
	ErrAlgorithm = errors.New("jwk: unsupported key algorithm")

	// ErrExponentRange indicates a public exponent that does not fit the platform int.
	ErrExponentRange = errors.New("jwk: public exponent out of range")
)

// VerificationKey is an RSA public key in JWK form.
type VerificationKey struct {
	KeyType   string `json:"kty"`
	Algorithm string `json:"alg"`
	N         string `json:"n"`
	E         string `json:"e"`
}

// ByteLen returns the number of bytes needed to hold x without a leading zero byte.
func ByteLen(x *big.Int) int { return (x.BitLen() + 7) / 8 }

// EncodeUint writes x as a minimal big-endian byte string and returns its
// standard base64 encoding.
//
// Parameters:
//   - x: Positive integer to encode
//
// Returns:
//   - string: Base64 of the big-endian bytes of x
//   - error: [ErrNonPositive] if x is nil, zero, or negative
func EncodeUint(x *big.Int) (string, error) {
	if x == nil || x.Sign() <= 0 {
		return "", ErrNonPositive
	}

	buf := x.FillBytes(make([]byte, ByteLen(x)))
	return base64.StdEncoding.EncodeToString(buf), nil
}

// DecodeUint reverses [EncodeUint]. It rejects encodings with a leading zero
// byte so that every integer has exactly one accepted form.
func DecodeUint(s string) (*big.Int, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	if len(buf) == 0 || buf[0] == 0 {
		return nil, ErrNonMinimal
	}
	return new(big.Int).SetBytes(buf), nil
}

// NewRSA builds an RS256 verification key from the public numbers of pub.
func NewRSA(pub *rsa.PublicKey) (*VerificationKey, error) {
	n, err := EncodeUint(pub.N)
	if err != nil {
		return nil, err
	}
	e, err := EncodeUint(big.NewInt(int64(pub.E)))
	if err != nil {
		return nil, err
	}

	return &VerificationKey{
		KeyType:   KeyTypeRSA,
		Algorithm: AlgorithmRS256,
		N:         n,
		E:         e,
	}, nil
}

// PublicKey imports the key back into an [rsa.PublicKey].
//
// The import is strict: the key type and algorithm must match what [NewRSA]
// produces and both numbers must be minimally encoded.
func (k *VerificationKey) PublicKey() (*rsa.PublicKey, error) {
	if k.KeyType != KeyTypeRSA {
		return nil, ErrKeyType
	}
	if k.Algorithm != AlgorithmRS256 {
		return nil, ErrAlgorithm
	}

	n, err := DecodeUint(k.N)
	if err != nil {
		return nil, err
	}
	e, err := DecodeUint(k.E)
	if err != nil {
		return nil, err
	}
	if !e.IsInt64() || e.Int64() > math.MaxInt32 {
		return nil, ErrExponentRange
	}

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}
