// Package config provides configuration for gemgate server binaries.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (when a path is given)
//  3. Validation
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for an SCGI server binary.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds SCGI listener settings.
type ServerConfig struct {
	Network       string        `yaml:"network"`         // "tcp" or "unix", default: "tcp"
	Address       string        `yaml:"address"`         // default: ":4000"
	MaxHeaderSize int           `yaml:"max_header_size"` // default: 16384
	ReadTimeout   time.Duration `yaml:"read_timeout"`    // default: none
	WriteTimeout  time.Duration `yaml:"write_timeout"`   // default: none
}

// LoggingConfig holds request logging settings.
type LoggingConfig struct {
	Colored bool `yaml:"colored"` // default: false
}

// MetricsConfig holds the Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Address string `yaml:"address"` // default: ":9090"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Network:       "tcp",
			Address:       ":4000",
			MaxHeaderSize: 16 * 1024,
		},
		Metrics: MetricsConfig{
			Address: ":9090",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Network != "tcp" && c.Server.Network != "unix" {
		return fmt.Errorf("config: server.network must be \"tcp\" or \"unix\", got %q", c.Server.Network)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("config: server.address must not be empty")
	}
	if c.Server.MaxHeaderSize <= 0 {
		return fmt.Errorf("config: server.max_header_size must be positive, got %d", c.Server.MaxHeaderSize)
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("config: metrics.address must not be empty when metrics are enabled")
	}
	return nil
}
