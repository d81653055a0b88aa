package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is how long an issued token stays usable. Tokens are
// stateless and cannot be revoked before they expire.
const TokenValidity = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers both bad signatures and expired tokens; the
	// caller cannot tell which, so neither can a probing client.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidSubject is returned when the token verifies but its subject
	// is not a user ID.
	ErrInvalidSubject = errors.New("invalid user ID in token")
)

// GenerateToken signs an HS256 token asserting the user's identity until
// now + validity.
func GenerateToken(userID uuid.UUID, secret []byte, validity time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry, then parses the subject back
// into a user ID.
func ParseToken(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidSubject
	}

	return userID, nil
}
