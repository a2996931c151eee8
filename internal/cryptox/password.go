package cryptox

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
	// Symbols is the punctuation set mixed in when symbols are requested.
	Symbols = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

var errBadLength = errors.New("password length must be positive")

// GeneratePassword returns a random string of the requested length drawn
// uniformly from letters and digits, plus Symbols when symbols is true.
func GeneratePassword(length int, symbols bool) (string, error) {
	if length <= 0 {
		return "", errBadLength
	}

	alphabet := letters + digits
	if symbols {
		alphabet += Symbols
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}
