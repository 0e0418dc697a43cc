/*
PURPOSE:
  Defines the configuration structure and loading logic for Tokbench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of dataset path, sample count, output options.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - CLI flags override whatever the file says.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default config files fall back to DefaultConfig silently.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should match the reference tool (1000 pairs, latency hint).

USAGE:
  cfg, err := config.Load("tokbench.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for Tokbench.
type Config struct {
	// Model is the tokenizer identifier: a model name ("gpt-4o") or a
	// raw encoding name ("cl100k_base"). Usually set from the CLI arg.
	Model string `yaml:"model"`
	// Dataset is the path to a ShareGPT-style JSON dump. Empty means
	// use the built-in synthetic corpus.
	Dataset   string `yaml:"dataset"`
	NumPairs  int    `yaml:"num_pairs"`
	OutputDir string `yaml:"output_dir"`
	// Jobs overrides the number of in-flight async requests. 0 derives
	// it from Hint.
	Jobs int `yaml:"jobs"`
	// Hint is "latency" or "throughput".
	Hint string `yaml:"hint"`
	// Seed fixes the sampling order; 0 means derive from wall clock.
	Seed   int64 `yaml:"seed"`
	Warmup bool  `yaml:"warmup"`

	LogScale   bool `yaml:"log_scale"`
	DumpStats  bool `yaml:"dump_latency_stats"`
	StageStats bool `yaml:"print_stage_stats"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		NumPairs:  1000,
		OutputDir: ".",
		Hint:      "latency",
		Warmup:    true,
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		// Search for defaults
		defaults := []string{"tokbench.yaml", "tokbench.conf"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name // record which file we loaded
				found = true
				break
			}
		}
		if !found {
			// No config file found, return default
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model id is required")
	}
	if c.NumPairs < 1 {
		return fmt.Errorf("num_pairs must be at least 1, got %d", c.NumPairs)
	}
	if c.Hint != "latency" && c.Hint != "throughput" {
		return fmt.Errorf("hint must be \"latency\" or \"throughput\", got %q", c.Hint)
	}
	return nil
}
