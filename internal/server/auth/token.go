// Package auth implements the authentication core: the access-token codec,
// the password hasher, the token extractor, and the request identity resolver.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of an access token. The registered claims
// carry the subject (username) and the expiry instant.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 access token with sub=subject and
// exp=now+validityDuration.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseSubject verifies the token signature and expiry and returns the
// subject claim. Expired tokens yield common.ErrTokenExpired; every other
// failure (bad signature, malformed structure, missing subject) yields
// common.ErrInvalidToken. The two values exist so callers can log the cause;
// the resolver collapses both into one outcome.
//
// Expiry is strict: a token whose exp equals the verification instant is
// already invalid (no leeway is configured).
func ParseSubject(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
