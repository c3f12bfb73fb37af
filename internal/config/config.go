// Package config reads the server settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-only-secret"

type Config struct {
	DatabaseURL    string
	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	AllowedOrigins []string
	LogLevel       string
	Env            string
	ScoringConfig  string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	SnapshotSchedule string
}

func (c Config) Development() bool { return c.Env != "production" }

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// LoadDotEnv loads files into the environment without overriding variables
// that are already set. It reports whether anything was loaded.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// FromEnv builds the configuration from environment variables and defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             getenv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AllowedOrigins:   splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		Env:              getenv("APP_ENV", "development"),
		ScoringConfig:    os.Getenv("SCORING_CONFIG"),
		SnapshotSchedule: getenv("SNAPSHOT_SCHEDULE", "@monthly"),
	}

	var err error
	if cfg.JWTTTL, err = time.ParseDuration(getenv("JWT_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.AuthRateLimitRPS, err = strconv.ParseFloat(getenv("AUTH_RATE_LIMIT_RPS", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid AUTH_RATE_LIMIT_RPS: %w", err)
	}
	if cfg.AuthRateLimitBurst, err = strconv.Atoi(getenv("AUTH_RATE_LIMIT_BURST", "5")); err != nil {
		return Config{}, fmt.Errorf("invalid AUTH_RATE_LIMIT_BURST: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.Development() {
			return Config{}, errors.New("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
