package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// NonceSize is the AES-GCM nonce length prepended to every sealed blob.
const NonceSize = 12

// ErrAuthFailure is the only error Open returns. Malformed input, a wrong key
// and tampered ciphertext are deliberately indistinguishable.
var ErrAuthFailure = errors.New("decryption failed")

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

// Seal encrypts plaintext with AES-256-GCM under key and returns
// base64(nonce || ciphertext || tag). Every call draws a fresh nonce.
func Seal(plaintext string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("seal: invalid key size %d", len(key))
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", fmt.Errorf("seal: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("seal: nonce: %w", err)
	}

	// nonce doubles as the destination prefix
	out := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Any failure yields ErrAuthFailure.
func Open(blob string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", ErrAuthFailure
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", ErrAuthFailure
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", ErrAuthFailure
	}

	if len(raw) < NonceSize+aesgcm.Overhead() {
		return "", ErrAuthFailure
	}

	plaintext, err := aesgcm.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return "", ErrAuthFailure
	}

	return string(plaintext), nil
}
