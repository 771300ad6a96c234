package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port             string
	Env              string
	LogLevel         slog.Level
	DBDriver         string
	DatabaseDSN      string
	JWTSecret        string
	JWTExpiry        time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	GenerateMaxCount int
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/passgen?parseTime=true"),
		JWTSecret:        getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:        30 * 24 * time.Hour,
		RateLimitRPS:     10,
		RateLimitBurst:   20,
		GenerateMaxCount: 50,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var err error
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		if cfg.JWTExpiry, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("JWT_EXPIRY: %w", err)
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if cfg.RateLimitBurst, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
	}
	if v := os.Getenv("GENERATE_MAX_COUNT"); v != "" {
		if cfg.GenerateMaxCount, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("GENERATE_MAX_COUNT: %w", err)
		}
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
