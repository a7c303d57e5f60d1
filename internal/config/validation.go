package config

import (
	"fmt"
	"net"
)

// validateConfig rejects configurations that would make the core misbehave
// silently, so bad settings fail at startup instead of at first request.
func validateConfig(c *Config) error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.Sessions.MaxSessions < 1 {
		return fmt.Errorf("sessions.max_sessions must be at least 1, got %d", c.Sessions.MaxSessions)
	}
	if c.Sessions.TTLMinutes < 1 {
		return fmt.Errorf("sessions.ttl_minutes must be at least 1, got %d", c.Sessions.TTLMinutes)
	}
	if c.Sessions.CleanupIntervalMinutes < 1 {
		return fmt.Errorf("sessions.cleanup_interval_minutes must be at least 1, got %d", c.Sessions.CleanupIntervalMinutes)
	}

	if c.Cache.Addr != "" {
		if err := validateCacheNode(c.Cache.Addr); err != nil {
			return err
		}
	}

	if c.Data.DefaultPeriodDays < 1 {
		return fmt.Errorf("data.default_period_days must be at least 1, got %d", c.Data.DefaultPeriodDays)
	}

	return nil
}

// validateCacheNode validates Valkey node format
func validateCacheNode(node string) error {
	host, _, err := net.SplitHostPort(node)
	if err != nil {
		return fmt.Errorf("cache.addr must be in format host:port: %w", err)
	}
	if host == "" {
		return fmt.Errorf("cache.addr must include host")
	}
	return nil
}
