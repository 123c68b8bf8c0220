package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
}

func TestJWTVerifier_ValidateToken(t *testing.T) {
	verifier := NewJWTVerifier(&config.JWTConfig{Secret: testSecret})
	userID := uuid.New()
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{
			name:  "valid",
			token: userToken(t, userID),
		},
		{
			name:    "empty",
			token:   "",
			wantErr: "token string is empty",
		},
		{
			name:    "malformed",
			token:   "not.a.jwt",
			wantErr: "malformed token",
		},
		{
			name: "expired",
			token: signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			}),
			wantErr: "token expired",
		},
		{
			name: "no expiry",
			token: signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject: userID.String(),
			}),
			wantErr: "failed to parse token",
		},
		{
			name: "wrong secret",
			token: signToken(t, "another-secret", jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject: userID.String(), ExpiresAt: future,
			}),
			wantErr: "invalid token signature",
		},
		{
			name: "wrong algorithm",
			token: signToken(t, testSecret, jwt.SigningMethodHS512, jwt.RegisteredClaims{
				Subject: userID.String(), ExpiresAt: future,
			}),
			wantErr: "invalid token signature",
		},
		{
			name: "subject not a uuid",
			token: signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject: "jane", ExpiresAt: future,
			}),
			wantErr: "token subject is not a user ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.ValidateToken(tt.token)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.GetUserID())
		})
	}
}

func TestJWTVerifier_IssuerAndAudience(t *testing.T) {
	verifier := NewJWTVerifier(&config.JWTConfig{
		Secret:   testSecret,
		Issuer:   "https://auth.example.com",
		Audience: "authenticated",
	})
	userID := uuid.New()
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	good := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(), ExpiresAt: future,
		Issuer: "https://auth.example.com", Audience: jwt.ClaimStrings{"authenticated"},
	})
	claims, err := verifier.ValidateToken(good)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	wrongAudience := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(), ExpiresAt: future,
		Issuer: "https://auth.example.com", Audience: jwt.ClaimStrings{"anon"},
	})
	_, err = verifier.ValidateToken(wrongAudience)
	assert.Error(t, err)

	wrongIssuer := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: userID.String(), ExpiresAt: future,
		Issuer: "https://evil.example.com", Audience: jwt.ClaimStrings{"authenticated"},
	})
	_, err = verifier.ValidateToken(wrongIssuer)
	assert.Error(t, err)
}

func TestJWTVerifier_Leeway(t *testing.T) {
	verifier := NewJWTVerifier(&config.JWTConfig{Secret: testSecret, Leeway: time.Minute})
	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-10 * time.Second)),
	})
	_, err := verifier.ValidateToken(token)
	assert.NoError(t, err)
}
