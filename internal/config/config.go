// Package config loads tool configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tool configuration.
type Config struct {
	// Verbosity selects output detail: 0 names only, 1 adds offsets and
	// sizes, 2 adds decoded records.
	Verbosity int `yaml:"verbosity"`
	// Strict makes lenient decode paths (undersized REJECT tables) fail.
	Strict  bool          `yaml:"strict"`
	Logging LoggingConfig `yaml:"logging"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`
	// Format is the log output format: "json" or "console".
	Format string `yaml:"format"`
}

// CatalogConfig holds lump catalog settings.
type CatalogConfig struct {
	// Path is the SQLite database file the catalog command writes to.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Verbosity: 1,
		Logging:   LoggingConfig{Level: "info", Format: "console"},
		Catalog:   CatalogConfig{Path: "wadcatalog.db"},
	}
}

// Load reads a YAML config file, filling unset fields from Default. A
// missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity must be 0-2, got %d", c.Verbosity)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path must not be empty")
	}
	return nil
}
