package config

type Config struct {
	Environment string `mapstructure:"environment" yaml:"environment"`
	Port        int    `mapstructure:"port" yaml:"port"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	Sessions SessionsConfig `mapstructure:"sessions" yaml:"sessions"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Data     DataConfig     `mapstructure:"data" yaml:"data"`
	CORS     CORSConfig     `mapstructure:"cors" yaml:"cors"`
}

// SessionsConfig bounds the in-process session partition store.
type SessionsConfig struct {
	// MaxSessions caps concurrent session partitions; inserting past the
	// cap evicts the least recently used partition.
	MaxSessions int `mapstructure:"max_sessions" yaml:"max_sessions"`
	// TTLMinutes is the idle time after which a partition becomes eligible
	// for cleanup.
	TTLMinutes int `mapstructure:"ttl_minutes" yaml:"ttl_minutes"`
	// CleanupIntervalMinutes is how often the periodic cleanup job runs.
	CleanupIntervalMinutes int `mapstructure:"cleanup_interval_minutes" yaml:"cleanup_interval_minutes"`
}

// CacheConfig configures the shared Valkey report cache. An empty addr keeps
// the process on the in-memory fallback.
type CacheConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	TTL      int    `mapstructure:"ttl" yaml:"ttl"` // seconds
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// DataConfig locates scenario data and tunes the shortage calculation.
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	// NonOperatingRoles lists sentinel role names excluded from allocation
	// aggregation. Empty falls back to the built-in sentinel.
	NonOperatingRoles []string `mapstructure:"non_operating_roles" yaml:"non_operating_roles"`
	// DefaultPeriodDays is used when a compute request omits the period.
	DefaultPeriodDays int `mapstructure:"default_period_days" yaml:"default_period_days"`
}

// CORSConfig handles Cross-Origin Resource Sharing
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}
