package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for inconsistencies.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", cfg.Log.Level, "must be debug, info, warn or error"})
	}

	switch cfg.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, ValidationError{"log.format", cfg.Log.Format, "must be auto, text or json"})
	}

	switch cfg.Storage.Backend {
	case "json", "sqlite", "postgres":
	default:
		errs = append(errs, ValidationError{"storage.backend", cfg.Storage.Backend, "must be json, sqlite or postgres"})
	}
	if cfg.Storage.Backend == "postgres" {
		if cfg.Storage.DSN == "" {
			errs = append(errs, ValidationError{"storage.dsn", "", "required for the postgres backend"})
		}
		if cfg.Storage.UserID == "" {
			errs = append(errs, ValidationError{"storage.user_id", "", "required for the postgres backend"})
		}
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, ValidationError{"server.port", cfg.Server.Port, "must be between 1 and 65535"})
	}

	if cfg.Tasks.ActivityCap < 1 {
		errs = append(errs, ValidationError{"tasks.activity_cap", cfg.Tasks.ActivityCap, "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
