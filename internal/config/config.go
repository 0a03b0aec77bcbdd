// Package config loads service settings from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// RawDir is the directory scanned for incoming report files.
	RawDir string `koanf:"raw_dir"`
	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`
	// ExportDir receives the Excel and CSV exports.
	ExportDir string `koanf:"export_dir"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// ExportEnabled controls whether a processing run also refreshes the
	// export files.
	ExportEnabled bool `koanf:"export_enabled"`
}

// Load reads configuration from environment variables, applying defaults
// where unset. Variables map directly: RAW_DIR, DB_PATH, EXPORT_DIR,
// LOG_LEVEL, LOG_FORMAT, EXPORT_ENABLED.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg, k)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config, k *koanf.Koanf) {
	if cfg.RawDir == "" {
		cfg.RawDir = "data/raw"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "data/incidents.db"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "data/exports"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	// A bool zero value is indistinguishable from an explicit "false", so
	// the default is keyed on variable presence.
	if !k.Exists("export_enabled") {
		cfg.ExportEnabled = true
	}
}

// Validate checks that every setting holds a usable value.
func (c *Config) Validate() error {
	if c.RawDir == "" {
		return fmt.Errorf("RAW_DIR is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	return nil
}
