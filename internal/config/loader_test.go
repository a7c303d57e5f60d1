package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoading(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", config.Environment)
		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, 100, config.Sessions.MaxSessions)
		assert.Equal(t, 60, config.Sessions.TTLMinutes)
		assert.Equal(t, 30, config.Data.DefaultPeriodDays)
		assert.Empty(t, config.Cache.Addr)
	})

	t.Run("env var precedence", func(t *testing.T) {
		os.Setenv("SHIFTSUITE_PORT", "7777")
		os.Setenv("SHIFTSUITE_LOG_LEVEL", "warn")
		os.Setenv("SHIFTSUITE_SESSIONS_MAX_SESSIONS", "5")
		defer func() {
			os.Unsetenv("SHIFTSUITE_PORT")
			os.Unsetenv("SHIFTSUITE_LOG_LEVEL")
			os.Unsetenv("SHIFTSUITE_SESSIONS_MAX_SESSIONS")
		}()

		config, err := Load()
		require.NoError(t, err)

		// Environment variables should override file/defaults
		assert.Equal(t, 7777, config.Port)
		assert.Equal(t, "warn", config.LogLevel)
		assert.Equal(t, 5, config.Sessions.MaxSessions)
	})
}

func TestConfigValidation(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port: 8080,
			Sessions: SessionsConfig{
				MaxSessions:            100,
				TTLMinutes:             60,
				CleanupIntervalMinutes: 10,
			},
			Data: DataConfig{DefaultPeriodDays: 30},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateConfig(base()))
	})

	t.Run("bad port", func(t *testing.T) {
		c := base()
		c.Port = 0
		assert.Error(t, validateConfig(c))
	})

	t.Run("zero max sessions", func(t *testing.T) {
		c := base()
		c.Sessions.MaxSessions = 0
		assert.Error(t, validateConfig(c))
	})

	t.Run("zero period days", func(t *testing.T) {
		c := base()
		c.Data.DefaultPeriodDays = 0
		assert.Error(t, validateConfig(c))
	})

	t.Run("malformed cache addr", func(t *testing.T) {
		c := base()
		c.Cache.Addr = "not-a-host-port"
		assert.Error(t, validateConfig(c))
	})

	t.Run("valid cache addr", func(t *testing.T) {
		c := base()
		c.Cache.Addr = "localhost:6379"
		assert.NoError(t, validateConfig(c))
	})
}
