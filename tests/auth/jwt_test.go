package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/perfcycle/review-api/internal/auth"
	"github.com/perfcycle/review-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const devSecret = "test-dev-secret"

func signHMAC(t *testing.T, claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func defaultClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"email": "alice@example.com",
		"name":  "Alice",
		"sub":   "subject-123",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func newDevValidator() *auth.JWTValidator {
	return auth.NewJWTValidator(&config.AuthConfig{DevSecret: devSecret})
}

func TestJWTValidator_ValidateToken(t *testing.T) {
	t.Run("valid dev token", func(t *testing.T) {
		validator := newDevValidator()
		token := signHMAC(t, defaultClaims(), devSecret)

		identity, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", identity.Email)
		assert.Equal(t, "Alice", identity.DisplayName)
		assert.Equal(t, "subject-123", identity.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		validator := newDevValidator()
		claims := defaultClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signHMAC(t, claims, devSecret)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		validator := newDevValidator()
		token := signHMAC(t, defaultClaims(), "some-other-secret")

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("HMAC rejected without dev secret", func(t *testing.T) {
		validator := auth.NewJWTValidator(&config.AuthConfig{})
		token := signHMAC(t, defaultClaims(), devSecret)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing email claim", func(t *testing.T) {
		validator := newDevValidator()
		claims := defaultClaims()
		delete(claims, "email")
		token := signHMAC(t, claims, devSecret)

		_, err := validator.ValidateToken(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("email falls back to upn claim", func(t *testing.T) {
		validator := newDevValidator()
		claims := defaultClaims()
		delete(claims, "email")
		claims["upn"] = "bob@example.com"
		token := signHMAC(t, claims, devSecret)

		identity, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", identity.Email)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		validator := auth.NewJWTValidator(&config.AuthConfig{
			DevSecret: devSecret,
			Audience:  "api://review-api",
		})
		claims := defaultClaims()
		claims["aud"] = "api://someone-else"
		token := signHMAC(t, claims, devSecret)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("audience match", func(t *testing.T) {
		validator := auth.NewJWTValidator(&config.AuthConfig{
			DevSecret: devSecret,
			Audience:  "api://review-api",
		})
		claims := defaultClaims()
		claims["aud"] = "api://review-api"
		token := signHMAC(t, claims, devSecret)

		_, err := validator.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		validator := auth.NewJWTValidator(&config.AuthConfig{
			DevSecret: devSecret,
			Issuer:    "https://login.example.com/",
		})
		claims := defaultClaims()
		claims["iss"] = "https://evil.example.net/"
		token := signHMAC(t, claims, devSecret)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		validator := newDevValidator()
		_, err := validator.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
