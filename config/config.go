// Package config loads application configuration from environment
// variables with sensible defaults for a single-laptop deployment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageBackend selects where the roster and voucher log are persisted.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageFile     StorageBackend = "file"
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
)

// IsValid checks that the backend is known.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageFile, StorageRedis, StoragePostgres:
		return true
	default:
		return false
	}
}

// Config holds all application configuration.
type Config struct {
	// Policy
	Threshold   int
	AmountPence int

	// Storage
	Storage      StorageBackend
	FilePath     string
	RedisHost    string
	RedisPort    int
	RedisPass    string
	RedisDB      int
	RedisTimeout time.Duration
	PostgresURL  string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Threshold:    getEnvInt("COMMENDATION_THRESHOLD", 5),
		AmountPence:  getEnvInt("VOUCHER_AMOUNT_PENCE", 290),
		Storage:      StorageBackend(getEnv("STORAGE_BACKEND", "file")),
		FilePath:     getEnv("STORAGE_FILE_PATH", "data/merit-cafe.json"),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnvInt("REDIS_PORT", 6379),
		RedisPass:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisTimeout: getEnvDuration("REDIS_TIMEOUT", 5*time.Second),
		PostgresURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Threshold <= 0 {
		return nil, fmt.Errorf("COMMENDATION_THRESHOLD must be positive, got %d", cfg.Threshold)
	}
	if cfg.AmountPence <= 0 {
		return nil, fmt.Errorf("VOUCHER_AMOUNT_PENCE must be positive, got %d", cfg.AmountPence)
	}
	if !cfg.Storage.IsValid() {
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage)
	}
	if cfg.Storage == StoragePostgres && cfg.PostgresURL == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres backend")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
