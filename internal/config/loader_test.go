package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoader_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "auto" {
		t.Fatalf("log defaults = %+v", cfg.Log)
	}
	if cfg.Storage.Backend != "json" {
		t.Fatalf("storage.backend = %q, want json", cfg.Storage.Backend)
	}
	if cfg.Server.Port != 8787 {
		t.Fatalf("server.port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Tasks.DefaultCategory != "personal" || cfg.Tasks.ActivityCap != 200 {
		t.Fatalf("tasks defaults = %+v", cfg.Tasks)
	}
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("storage:\n  backend: sqlite\n  dir: /tmp/flow\nserver:\n  port: 9000\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Dir != "/tmp/flow" {
		t.Fatalf("storage = %+v", cfg.Storage)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("server.port = %d, want 9000", cfg.Server.Port)
	}
	// Untouched sections keep their defaults.
	if cfg.Log.Level != "info" {
		t.Fatalf("log.level = %q, want info", cfg.Log.Level)
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("TASKFLOW_STORAGE_BACKEND", "postgres")
	chdir(t, t.TempDir())

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != "postgres" {
		t.Fatalf("storage.backend = %q, want postgres", cfg.Storage.Backend)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Log:     LogConfig{Level: "info", Format: "auto"},
		Storage: StorageConfig{Backend: "json"},
		Server:  ServerConfig{Port: 8787},
		Tasks:   TasksConfig{ActivityCap: 200},
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = "postgres"; c.Storage.UserID = "u" }},
		{"postgres without user", func(c *Config) { c.Storage.Backend = "postgres"; c.Storage.DSN = "postgres://x" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad cap", func(c *Config) { c.Tasks.ActivityCap = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := Validate(&cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
