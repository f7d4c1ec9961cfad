package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	now := time.Now()
	signed, err := GenerateJWT("user-1", "secret", "team-cfo", time.Hour, now)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "team-cfo", claims.Issuer)
}

func TestGenerateJWT_RequiresSubjectAndSecret(t *testing.T) {
	_, err := GenerateJWT("", "secret", "", time.Hour, time.Now())
	assert.Error(t, err)
	_, err = GenerateJWT("user-1", "", "", time.Hour, time.Now())
	assert.Error(t, err)
}
