package config

import (
	"fmt"
	"time"
)

// DefaultJWTExpirationHours is the token lifetime when none is configured.
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// Validate requires a secret and a lifetime of at least one hour.
func (c JWTConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// Expiration returns the token lifetime.
func (c JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
