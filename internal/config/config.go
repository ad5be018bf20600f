// Package config loads the feedback loop configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config defines the feedback loop configuration.
type Config struct {
	// DBPath is the location of the outcome SQLite database.
	DBPath string `yaml:"db_path"`
	// WindowDays is the default rolling window for queries and reports.
	WindowDays int `yaml:"window_days"`
	// MinSamples is the minimum attempts before a category enters the
	// guidance priority lists.
	MinSamples int `yaml:"min_samples"`
	// HighSuccessThreshold is the success rate for prioritizing a category.
	HighSuccessThreshold float64 `yaml:"high_success_threshold"`
	// LowSuccessThreshold is the success rate below which a category is
	// de-emphasized.
	LowSuccessThreshold float64 `yaml:"low_success_threshold"`
	// FastResolveRatio flags fast-resolving categories in guidance text.
	FastResolveRatio float64 `yaml:"fast_resolve_ratio"`
}

// Default returns the default configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		DBPath:               filepath.Join(home, ".seedloop", "outcomes.db"),
		WindowDays:           30,
		MinSamples:           3,
		HighSuccessThreshold: 0.7,
		LowSuccessThreshold:  0.4,
		FastResolveRatio:     0.7,
	}
}

// Load reads a YAML config file, applying defaults for unset fields. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
