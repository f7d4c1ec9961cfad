package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 token whose subject is userID. The API only
// verifies tokens; this exists for local tooling and tests.
func GenerateJWT(userID, secret, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	if secret == "" {
		return "", fmt.Errorf("signing secret is required")
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
