package http

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTTokenService_VerifyToken(t *testing.T) {
	secret := "test-secret"
	svc := NewJWTTokenService(secret, nopLogger{})
	userID := uuid.New()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("valid", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     exp.Unix(),
		})

		payload, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, payload.UserID)
		assert.True(t, exp.Equal(payload.ExpiresAt))
	})

	tests := []struct {
		name   string
		key    string
		claims jwt.MapClaims
	}{
		{
			name:   "wrong secret",
			key:    "other-secret",
			claims: jwt.MapClaims{"user_id": userID.String(), "exp": exp.Unix()},
		},
		{
			name:   "missing exp",
			key:    secret,
			claims: jwt.MapClaims{"user_id": userID.String()},
		},
		{
			name:   "expired",
			key:    secret,
			claims: jwt.MapClaims{"user_id": userID.String(), "exp": time.Now().Add(-time.Minute).Unix()},
		},
		{
			name:   "missing user_id",
			key:    secret,
			claims: jwt.MapClaims{"exp": exp.Unix()},
		},
		{
			name:   "malformed user_id",
			key:    secret,
			claims: jwt.MapClaims{"user_id": "42", "exp": exp.Unix()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := signToken(t, jwt.SigningMethodHS256, []byte(tt.key), tt.claims)
			_, err := svc.VerifyToken(token)
			assert.Error(t, err)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}
