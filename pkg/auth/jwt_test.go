package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, auth.TokenTTL-time.Minute)
	assert.LessOrEqual(t, ttl, auth.TokenTTL)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := auth.GenerateToken("jane@example.com")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = auth.ValidateToken(tampered)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	claims := auth.Claims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestWrongSigningKeyRejected(t *testing.T) {
	claims := auth.Claims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong-pass"))
}
