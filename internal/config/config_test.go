package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 8, cfg.DBPoolSize)
	assert.Equal(t, 5*time.Second, cfg.DBAcquireTimeout)
	assert.Equal(t, 5, cfg.DBBusyRetries)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "aes-gcm", cfg.CipherAlgorithm)
	assert.Zero(t, cfg.APIKeyDefaultTTL)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test-keyfort.db")
	t.Setenv("DB_POOL_SIZE", "4")
	t.Setenv("CIPHER_ALGORITHM", "chacha20-poly1305")
	t.Setenv("API_KEY_DEFAULT_TTL_DAYS", "30")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "/tmp/test-keyfort.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.DBPoolSize)
	assert.Equal(t, "chacha20-poly1305", cfg.CipherAlgorithm)
	assert.Equal(t, 30*24*time.Hour, cfg.APIKeyDefaultTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerHost:       "127.0.0.1",
			ServerPort:       8080,
			DBPath:           "/tmp/keyfort.db",
			DBPoolSize:       8,
			DBAcquireTimeout: time.Second,
			DBBusyRetries:    5,
			LogLevel:         "info",
			CipherAlgorithm:  "aes-gcm",
			MetricsNamespace: "keyfort",
			MetricsPort:      8081,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("unknown algorithm rejected", func(t *testing.T) {
		cfg := valid()
		cfg.CipherAlgorithm = "rot13"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown log level rejected", func(t *testing.T) {
		cfg := valid()
		cfg.LogLevel = "trace"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero pool size rejected", func(t *testing.T) {
		cfg := valid()
		cfg.DBPoolSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing db path rejected", func(t *testing.T) {
		cfg := valid()
		cfg.DBPath = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestGetGinMode(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	assert.Equal(t, "debug", cfg.GetGinMode())

	cfg.LogLevel = "info"
	assert.Equal(t, "release", cfg.GetGinMode())
}
