// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/server/auth"
)

// DefaultSecretKey is the development signing secret set by LoadDefaults.
// Anyone who has the source can forge tokens for a server that keeps it.
const DefaultSecretKey = "dev-secret-key-change-me"

// Config holds runtime settings for the user service.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the REST API.
//   - EndpointAddrGRPC: bind address for the gRPC endpoint (health only).
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing tokens (HS256). Do not use test defaults in prod.
//   - TokenTTL: token lifetime.
//   - BcryptCost: work factor for password hashes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	DatabaseDSN      string
	SecretKey        string
	TokenTTL         time.Duration
	BcryptCost       int
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.TokenTTL = 1 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// Validate rejects settings the token service would refuse at start.
func (c *Config) Validate() error {
	if len(c.SecretKey) < auth.MinSecretLength {
		return fmt.Errorf("secret key must be at least %d bytes", auth.MinSecretLength)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("token ttl must not be negative, got %s", c.TokenTTL)
	}
	return nil
}

// UsesDefaultSecret reports whether the signing secret was left at the
// development default.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
// args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
