package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-that-is-long-enough",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(GenerateTokenInput{
		UserID: userID,
		Email:  "ada@example.com",
		Role:   "user",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "storefront-test", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateTokenErrors(t *testing.T) {
	svc := newTestService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:     "a-completely-different-secret-value",
			Expiration: time.Hour,
			Issuer:     "storefront-test",
		})
		token, _, err := other.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-that-is-long-enough",
			Expiration: -time.Minute,
			Issuer:     "storefront-test",
		})
		token, _, err := expired.GenerateToken(GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret-key-that-is-long-enough"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}
