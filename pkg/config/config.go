// Package config defines the phpfix run configuration and its YAML loader.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the project root.
const DefaultFileName = ".phpfix.yaml"

// DefaultCacheSize is the default capacity of the file-content cache.
const DefaultCacheSize = 256

// ErrInvalidConfig indicates a config file that parsed but fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings for one phpfix run.
// Flags override file values; the zero-value fields fall back to defaults
// during Validate.
type Config struct {
	// Root is the project root directory. Issue paths are resolved
	// relative to it.
	Root string `yaml:"root"`

	// Jobs is the number of files processed in parallel.
	// Zero means one worker per CPU.
	Jobs int `yaml:"jobs"`

	// Backup enables sidecar backups before rewriting a file.
	Backup bool `yaml:"backup"`

	// CacheSize is the capacity of the file-content cache.
	CacheSize int `yaml:"cache_size"`

	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		Root:      ".",
		CacheSize: DefaultCacheSize,
		LogLevel:  "info",
	}
}

// Load reads a YAML config file. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate normalizes the config and rejects nonsensical values.
func (c *Config) Validate() error {
	if c.Root == "" {
		c.Root = "."
	}
	if c.CacheSize <= 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must be >= 0, got %d", ErrInvalidConfig, c.Jobs)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// ProjectPath resolves a logical (report-relative) file path against the
// project root. Absolute paths are returned unchanged.
func (c *Config) ProjectPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, rel)
}
