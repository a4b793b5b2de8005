// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"multilabel-go/domain/schema"
	"multilabel-go/infrastructure/logging"
)

// FileName is the configuration file name inside the per-user config directory.
const FileName = "config.yaml"

// Config is the application configuration.
type Config struct {
	Schema  SchemaConfig  `yaml:"schema"`
	Log     LogConfig     `yaml:"log"`
	Window  WindowConfig  `yaml:"window"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

// SchemaConfig locates the schema file read at startup.
type SchemaConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// WindowConfig sets the initial main window size.
type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// MongoDBConfig configures the optional annotation mirror.
type MongoDBConfig struct {
	Enabled        bool          `yaml:"enabled"`
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	Dataset        string        `yaml:"dataset"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	PingTimeout    time.Duration `yaml:"ping_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{Path: schema.DefaultPath},
		Log:    LogConfig{Level: "info"},
		Window: WindowConfig{Width: 1580, Height: 750},
		MongoDB: MongoDBConfig{
			Enabled:        false,
			URI:            "mongodb://localhost:27017",
			Database:       "multilabel",
			Collection:     "annotation",
			Dataset:        "default",
			ConnectTimeout: 10 * time.Second,
			PingTimeout:    5 * time.Second,
		},
	}
}

// DefaultPath returns os.UserConfigDir()/multilabel/config.yaml, or a path
// relative to the working directory when no user config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, logging.AppDir, FileName)
}

// Load reads the file at path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Schema.Path == "" {
		return fmt.Errorf("schema.path must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.MongoDB.Enabled {
		if c.MongoDB.URI == "" {
			return fmt.Errorf("mongodb.uri is required when mongodb is enabled")
		}
		if c.MongoDB.Database == "" || c.MongoDB.Collection == "" {
			return fmt.Errorf("mongodb.database and mongodb.collection are required when mongodb is enabled")
		}
		if c.MongoDB.ConnectTimeout <= 0 || c.MongoDB.PingTimeout <= 0 {
			return fmt.Errorf("mongodb timeouts must be positive")
		}
	}
	return nil
}
