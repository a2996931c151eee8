// Package cryptox holds the vault's cryptographic primitives: master-key
// derivation, authenticated field encryption and random password generation.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of the derived AES-256 key.
	KeySize = 32
	// SaltSize is the length of the random salt generated at setup.
	SaltSize = 32
	// KDFIterations is the PBKDF2 work factor used for the master key.
	KDFIterations = 600_000
)

// DeriveKey stretches the master password into a 32 byte key using
// PBKDF2-HMAC-SHA256. The same password and salt always yield the same key.
func DeriveKey(password string, salt []byte) []byte {
	return DeriveKeyIter(password, salt, KDFIterations)
}

// DeriveKeyIter is DeriveKey with an explicit iteration count.
func DeriveKeyIter(password string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(password), salt, iterations, KeySize, sha256.New)
}
