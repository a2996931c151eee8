// Package auth issues and verifies the bearer tokens handed out on unlock.
// A token only correlates a transport caller with the live session; the
// derived key held in memory is what actually gates vault access.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "passvault"

// Claims carries only registered claims; ID holds the random session id.
type Claims struct {
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenIssuer signs tokens with secret (HS256). When secret is empty a
// random per-process secret is generated, so tokens never survive a restart.
func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	if len(secret) == 0 {
		secret = common.GenerateRandByteArray(32)
	}
	return &TokenIssuer{secret: secret, validity: validity, now: time.Now}
}

// Issue returns a new signed token with a fresh session id.
func (i *TokenIssuer) Issue() (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})

	return token.SignedString(i.secret)
}

// Verify checks signature, algorithm and expiry and returns the session id.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.ID, nil
}
