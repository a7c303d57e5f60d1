package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load resolves configuration from, in ascending priority: built-in
// defaults, an optional config.yaml, and SHIFTSUITE_* environment variables.
// A missing file is fine; an unreadable or invalid one is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/shift-suite/")
	v.AddConfigPath("./configs/")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SHIFTSUITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")

	v.SetDefault("sessions.max_sessions", 100)
	v.SetDefault("sessions.ttl_minutes", 60)
	v.SetDefault("sessions.cleanup_interval_minutes", 10)

	// Empty addr keeps the process on the in-memory cache fallback.
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.db", 0)

	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.non_operating_roles", []string{})
	v.SetDefault("data.default_period_days", 30)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Tenant-ID", "X-Session-ID", "X-User-ID"})
	v.SetDefault("cors.exposed_headers", []string{"X-Rate-Limit-Remaining", "X-Session-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 3600)
}
