// Package config loads the CLI configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// GenerateConfig controls synthetic log generation.
type GenerateConfig struct {
	Users        int   `yaml:"users" validate:"min=1"`
	Interactions int   `yaml:"interactions" validate:"min=1"`
	Seed         int64 `yaml:"seed"`
}

// OutputConfig names the rendered artifacts.
type OutputConfig struct {
	Dot   string `yaml:"dot" validate:"required"`
	Image string `yaml:"image" validate:"required"`
}

// Config is the full CLI configuration.
type Config struct {
	Input     string         `yaml:"input" validate:"required"`
	Output    OutputConfig   `yaml:"output"`
	Workers   int            `yaml:"workers" validate:"min=0"`
	LogLevel  string         `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	OpenImage bool           `yaml:"open_image"`
	Generate  GenerateConfig `yaml:"generate"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: "interactions.csv",
		Output: OutputConfig{
			Dot:   "graph.dot",
			Image: "graph.png",
		},
		Workers:   0, // 0 = one worker per CPU
		LogLevel:  "info",
		OpenImage: true,
		Generate: GenerateConfig{
			Users:        140,
			Interactions: 500,
			Seed:         1,
		},
	}
}

// Load reads and validates a YAML config file. An empty path yields the
// defaults; file values override defaults field by field.
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
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
