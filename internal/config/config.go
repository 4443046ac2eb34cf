// Package config loads application settings from the environment.
//
// Settings are read once at startup into a Config struct that main passes
// down to the components that need it. Nothing in this codebase reads
// environment variables after startup — there is no package-level settings
// cache to invalidate or mock around in tests.
//
// A .env file in the working directory is loaded first (if present) so local
// development doesn't need exported shell variables. Real environment
// variables win over .env entries, which is godotenv's default behaviour.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server needs.
type Config struct {
	Port int

	// SecretKey signs access tokens. Required, at least 16 characters.
	// Generate with: openssl rand -hex 32
	SecretKey string

	// Algorithm is the HMAC signing method for tokens: HS256, HS384 or HS512.
	Algorithm string

	// AccessTokenTTL is how long an issued access token stays valid.
	AccessTokenTTL time.Duration

	// DatabasePath is the SQLite database file, or ":memory:" for tests.
	DatabasePath string
}

// Load reads the .env file (if any) and the environment, applies defaults,
// and validates the result.
func Load() (Config, error) {
	// Ignore the error: a missing .env file is the normal case in production,
	// where settings come from real environment variables.
	_ = godotenv.Load()

	cfg := Config{
		Port:           8080,
		Algorithm:      "HS256",
		AccessTokenTTL: 30 * time.Minute,
		DatabasePath:   "data/habitap.db",
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if len(cfg.SecretKey) < 16 {
		return Config{}, fmt.Errorf("config: SECRET_KEY must be set and at least 16 characters")
	}

	if alg := os.Getenv("ALGORITHM"); alg != "" {
		cfg.Algorithm = alg
	}
	switch cfg.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("config: unsupported ALGORITHM %q (want HS256, HS384 or HS512)", cfg.Algorithm)
	}

	if minStr := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); minStr != "" {
		minutes, err := strconv.Atoi(minStr)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("config: invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", minStr)
		}
		cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		cfg.DatabasePath = path
	}

	return cfg, nil
}
