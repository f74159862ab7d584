package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
// For the sqlite driver URL is a file path or ":memory:".
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL         string `mapstructure:"url" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication settings.
// An empty JWTSecret disables bearer authentication on the API.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// Enabled reports whether bearer authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// ReviewConfig contains review scheduling settings.
type ReviewConfig struct {
	EasyIntervalDays   int `mapstructure:"easy_interval_days" validate:"gte=1"`
	MediumIntervalDays int `mapstructure:"medium_interval_days" validate:"gte=1"`
	HardIntervalDays   int `mapstructure:"hard_interval_days" validate:"gte=1"`
	DefaultQueueLimit  int `mapstructure:"default_queue_limit" validate:"gte=1"`
}

// JobsConfig contains background job settings.
// An empty schedule disables the job.
type JobsConfig struct {
	DueDigestSchedule string `mapstructure:"due_digest_schedule" validate:"omitempty,cronspec"`
}
