package server

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// Claims are the claims of an access token issued by the hosted auth provider.
// The subject is the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
	Email  string    `json:"email,omitempty"`
	UserID uuid.UUID `json:"-"`
}

// GetUserID returns the user ID from the claims.
// This implements the middleware.UserIDGetter interface.
func (c *Claims) GetUserID() uuid.UUID {
	return c.UserID
}

// JWTVerifier validates HS256 access tokens. It never issues tokens.
type JWTVerifier struct {
	config *config.JWTConfig
	parser *jwt.Parser
}

// NewJWTVerifier creates a verifier for cfg
func NewJWTVerifier(cfg *config.JWTConfig) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &JWTVerifier{config: cfg, parser: jwt.NewParser(opts...)}
}

// ValidateToken validates a JWT token and returns the claims.
func (v *JWTVerifier) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(v.config.Secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("token subject is not a user ID: %w", err)
	}
	claims.UserID = userID
	return claims, nil
}

// AsTokenValidator adapts the verifier to middleware.TokenValidator
func (v *JWTVerifier) AsTokenValidator() middleware.TokenValidator {
	return tokenValidator{v}
}

type tokenValidator struct {
	verifier *JWTVerifier
}

func (t tokenValidator) ValidateToken(tokenString string) (middleware.UserIDGetter, error) {
	claims, err := t.verifier.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
