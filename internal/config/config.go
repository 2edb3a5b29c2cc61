// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBPath is the filesystem path of the embedded database. The write-ahead
	// journal lives next to it.
	DBPath string
	// DBPoolSize is the maximum number of concurrent connection slots.
	DBPoolSize int
	// DBAcquireTimeout bounds how long a caller waits for a pool slot.
	DBAcquireTimeout time.Duration
	// DBBusyRetries is the number of retries on transient lock contention.
	DBBusyRetries int
	// DBBusyBackoff is the initial backoff between busy retries; it doubles on
	// each attempt.
	DBBusyBackoff time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// CipherAlgorithm selects the AEAD construct for secret payloads
	// ("aes-gcm" or "chacha20-poly1305").
	CipherAlgorithm string

	// APIKeyDefaultTTL is the default lifetime applied to newly issued API
	// keys. Zero means keys never expire.
	APIKeyDefaultTTL time.Duration

	// RateLimitEnabled indicates whether rate limiting for authenticated endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per principal.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBPath:           env.GetString("DB_PATH", defaultDBPath()),
		DBPoolSize:       env.GetInt("DB_POOL_SIZE", 8),
		DBAcquireTimeout: env.GetDuration("DB_ACQUIRE_TIMEOUT_MS", 5000, time.Millisecond),
		DBBusyRetries:    env.GetInt("DB_BUSY_RETRIES", 5),
		DBBusyBackoff:    env.GetDuration("DB_BUSY_BACKOFF_MS", 10, time.Millisecond),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Crypto
		CipherAlgorithm: env.GetString("CIPHER_ALGORITHM", "aes-gcm"),

		// API keys
		APIKeyDefaultTTL: env.GetDuration("API_KEY_DEFAULT_TTL_DAYS", 0, 24*time.Hour),

		// Rate Limiting (authenticated endpoints)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "keyfort"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks that the configuration holds only enumerated, sane options.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DBPath, validation.Required),
		validation.Field(&c.DBPoolSize, validation.Required, validation.Min(1)),
		validation.Field(&c.DBAcquireTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.DBBusyRetries, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.CipherAlgorithm, validation.In("aes-gcm", "chacha20-poly1305")),
		validation.Field(&c.MetricsPort, validation.Min(1), validation.Max(65535)),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// defaultDBPath places the store under the user's home directory, matching the
// single co-located database plus journal layout.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "keyfort.db"
	}
	return filepath.Join(home, ".keyfort", "keyfort.db")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
