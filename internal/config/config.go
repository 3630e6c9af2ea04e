// Package config loads the optional YAML configuration file accepted by
// cmd/outline2c's `-config` flag: default output path, debug flag, and a
// list of extra include search directories.
//
// Grounded on viant-linager/analyzer/analyzer_test.go's direct use of
// gopkg.in/yaml.v3 (yaml.Unmarshal into a plain struct) for structured
// config/test fixtures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults that CLI flags may override (explicit flags win;
// see cmd/outline2c's flag-merge logic).
type Config struct {
	Output      string   `yaml:"output"`
	Debug       bool     `yaml:"debug"`
	IncludeDirs []string `yaml:"include_dirs"`
	// MaxArenaBytes caps the arena the driver parses this run's source
	// into; zero (the default) leaves it unbounded. Set this to reach
	// spec.md §7's OOM error path on a deliberately small input instead of
	// exhausting process memory (see internal/arena.NewBounded).
	MaxArenaBytes int `yaml:"max_arena_bytes"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &c, nil
}

// Merge returns a Config with every zero-valued field of c replaced by the
// corresponding field of defaults, implementing "explicit flags win."
func (c Config) Merge(defaults *Config) Config {
	if defaults == nil {
		return c
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if !c.Debug {
		c.Debug = defaults.Debug
	}
	if len(c.IncludeDirs) == 0 {
		c.IncludeDirs = defaults.IncludeDirs
	}
	if c.MaxArenaBytes == 0 {
		c.MaxArenaBytes = defaults.MaxArenaBytes
	}
	return c
}
