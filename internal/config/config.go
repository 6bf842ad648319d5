// Package config loads stellium configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ReportConfig controls report file output.
type ReportConfig struct {
	// Dir is the directory report files are written to
	Dir string `yaml:"dir"`

	// HTML enables rendering an HTML report alongside markdown
	HTML bool `yaml:"html"`
}

// Config represents stellium configuration options.
type Config struct {
	// DataDir overrides the embedded knowledge data with on-disk JSON files
	// (one file per domain). Empty means embedded data only.
	DataDir string `yaml:"data_dir"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory run logs are written to
	LogDir string `yaml:"log_dir"`

	// Level is the default interpretation level (basic, full)
	Level string `yaml:"level"`

	// HouseSystem is a display label for the house system charts were
	// computed with (the engine itself is house-system agnostic)
	HouseSystem string `yaml:"house_system"`

	// Report contains report output configuration
	Report ReportConfig `yaml:"report"`
}

// DefaultConfigPath is where LoadDefault looks for configuration.
const DefaultConfigPath = ".stellium/config.yaml"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     "",
		LogLevel:    "info",
		LogDir:      ".stellium/logs",
		Level:       "full",
		HouseSystem: "placidus",
		Report: ReportConfig{
			Dir:  ".stellium/reports",
			HTML: false,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads configuration from DefaultConfigPath in the current
// working directory.
func LoadDefault() (*Config, error) {
	return LoadConfig(DefaultConfigPath)
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	switch c.Level {
	case "", "basic", "full":
	default:
		return fmt.Errorf("invalid interpretation level %q", c.Level)
	}

	if c.DataDir != "" {
		info, err := os.Stat(c.DataDir)
		if err != nil {
			return fmt.Errorf("data_dir %s: %w", c.DataDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data_dir %s is not a directory", c.DataDir)
		}
	}

	return nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
