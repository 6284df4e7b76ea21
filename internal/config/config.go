package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the process reads from the environment. It is built
// once in main and passed down explicitly.
type Config struct {
	Addr          string
	DatabasePath  string
	AdminID       string
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "minton.db"),
		AdminID:       os.Getenv("ADMIN_ID"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      24 * time.Hour,
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if cfg.AdminID == "" || cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_ID and ADMIN_PASSWORD must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
