// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (store, auth) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Store Backends

const (
	// BackendMemory keeps documents in process memory. Development and tests only.
	BackendMemory = "memory"
	// BackendRedis stores documents in Redis hashes with pub/sub change signals.
	BackendRedis = "redis"
	// BackendPostgres stores documents as jsonb rows with LISTEN/NOTIFY signals.
	BackendPostgres = "postgres"
)

// # Sync Modes

const (
	// SyncLive keeps the mirror subscribed to store change signals.
	SyncLive = "live"
	// SyncManual refreshes the mirror only on explicit refresh actions.
	SyncManual = "manual"
)

// # Rejection Policies

const (
	// RejectRetain keeps rejected groups in the store with status "rejected".
	RejectRetain = "retain"
	// RejectDelete removes rejected groups from the store outright.
	RejectDelete = "delete"
)

// # Configuration Schema

// Config holds all runtime configuration for the GroupMela admin API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document store backend: memory, redis, or postgres.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	// Relational Database (PostgreSQL, documents backend)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis: documents backend and admin sessions). Optional
	// outside the redis backend; without it sessions fall back to memory.
	RedisURL string `env:"REDIS_URL"`

	// Mirror sync policy: live (continuous subscription) or manual (explicit refresh).
	SyncMode string `env:"SYNC_MODE" envDefault:"live"`

	// Rejection policy: retain (keep with status "rejected") or delete.
	RejectionPolicy string `env:"REJECTION_POLICY" envDefault:"retain"`

	// Admin principal. The password is supplied pre-hashed (bcrypt); plain-text
	// credentials never live in the environment or the store.
	AdminUsername     string `env:"ADMIN_USERNAME,required"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`

	// Cryptographic keys for session token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects enum values the rest of the system would misinterpret.
func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.StoreBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required when STORE_BACKEND=postgres")
	}

	if c.StoreBackend == BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("config: REDIS_URL is required when STORE_BACKEND=redis")
	}

	switch c.SyncMode {
	case SyncLive, SyncManual:
	default:
		return fmt.Errorf("config: unknown SYNC_MODE %q", c.SyncMode)
	}

	switch c.RejectionPolicy {
	case RejectRetain, RejectDelete:
	default:
		return fmt.Errorf("config: unknown REJECTION_POLICY %q", c.RejectionPolicy)
	}

	return nil
}

// AllowedExtraOrigins returns the additional CORS origins from EXTRA_ORIGINS,
// a comma-separated list. Staging consoles live on non-groupmela hosts.
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}
	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
