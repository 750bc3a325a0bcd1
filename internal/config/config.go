// Package config loads application configuration from flags,
// environment variables and YAML config files, in that precedence.
package config

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig configures the persistence backend.
type StorageConfig struct {
	// Backend is json, sqlite or postgres.
	Backend string `mapstructure:"backend"`

	// Dir is the data directory for the file-backed backends.
	Dir string `mapstructure:"dir"`

	// DSN is the postgres connection string.
	DSN string `mapstructure:"dsn"`

	// UserID scopes rows in the row stores.
	UserID string `mapstructure:"user_id"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// TasksConfig configures task behavior.
type TasksConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	ActivityCap     int    `mapstructure:"activity_cap"`
}
