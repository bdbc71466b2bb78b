package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("battery staple", hash))
	assert.False(t, CheckPasswordHash("correct horse", ""))
}

func TestJWTRoundTrip(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := GenerateJWT("user-1", "secret", 7*24*time.Hour, "pfm_backend", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), expiresAt, time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, _, err := GenerateJWT("user-1", "secret", time.Hour, "pfm_backend", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
