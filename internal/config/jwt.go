package config

import (
	"fmt"
	"os"
	"time"
)

// JWTConfig holds what is needed to verify bearer tokens issued by the hosted auth provider.
// Tokens are never issued here.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads AUTH_JWT_SECRET (required), AUTH_JWT_ISSUER, AUTH_JWT_AUDIENCE and
// AUTH_JWT_LEEWAY (default: 30s).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required but not set")
	}

	leeway := 30 * time.Second
	if raw := os.Getenv("AUTH_JWT_LEEWAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_JWT_LEEWAY: %v", err)
		}
		leeway = d
	}

	cfg := &JWTConfig{
		Secret:   secret,
		Issuer:   os.Getenv("AUTH_JWT_ISSUER"),
		Audience: os.Getenv("AUTH_JWT_AUDIENCE"),
		Leeway:   leeway,
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET cannot be empty")
	}
	if c.Leeway < 0 {
		return fmt.Errorf("AUTH_JWT_LEEWAY must not be negative, got: %s", c.Leeway)
	}
	return nil
}
