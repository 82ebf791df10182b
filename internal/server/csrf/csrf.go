// Package csrf mints and verifies anti-forgery tokens. Each token is a
// short-lived HS256 JWT whose subject is bound to the caller's access token
// (or "guest" for anonymous sessions), so a token stolen from one session
// cannot be replayed in another.
package csrf

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forumkit/forumkit/internal/common"
)

// GuestSubject is the binding used for requests without an access token.
const GuestSubject = "guest"

func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks the signature and expiry and confirms the token is
// bound to the expected subject. Any failure maps to ErrCSRFTokenMismatch;
// the caller does not need to distinguish why the token was rejected.
func VerifyToken(tokenString string, subject string, secretKey []byte) error {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return common.ErrCSRFTokenMismatch
	}

	if !token.Valid || claims.Subject != subject {
		return common.ErrCSRFTokenMismatch
	}

	return nil
}
