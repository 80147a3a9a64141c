// config.go - Configuration management for the parameter generator
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/findora-crypto/zei/xfr"
)

// Config represents the generator configuration
type Config struct {
	// Where SRS cache files are written and reused
	CacheDir string `json:"cache_dir"`

	// Transaction shapes to assemble parameters for
	Shapes []xfr.CircuitShape `json:"shapes"`

	// Overwrite policy when cached SRS capacities are too small
	AllowRegenerate bool `json:"allow_regenerate"`

	// Logging
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CacheDir: "params",
		Shapes: []xfr.CircuitShape{
			{NPayers: 1, NPayees: 2, TreeDepth: 8, AuxGenCount: 64},
			{NPayers: 2, NPayees: 2, TreeDepth: 8, AuxGenCount: 64},
		},
		AllowRegenerate: false,
		LogLevel:        "info",
	}
}

// LoadConfig loads configuration from file or creates default
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		var config Config
		if err := json.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		return &config, nil
	}

	// Create default config and save it
	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}
	return config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("cache_dir must not be empty")
	}
	if len(c.Shapes) == 0 {
		return fmt.Errorf("at least one transaction shape is required")
	}
	for i, s := range c.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}
