// Package config loads CLI configuration from YAML files.
// The config only carries defaults for the command line; library callers
// configure the service directly through its options.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/docsign-io/docsign/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Config holds defaults for document rendering and signing.
type Config struct {
	Page   PageConfig   `yaml:"page"`
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
}

// PageConfig defines default page geometry.
type PageConfig struct {
	Format      string  `yaml:"format"`      // "a4", "letter", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // millimeters, all sides
}

// RenderConfig defines rendering behavior.
type RenderConfig struct {
	TimeoutSeconds int  `yaml:"timeoutSeconds"` // 0 = library default
	Strict         bool `yaml:"strict"`         // reject input that sanitization would change
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // default output directory (empty = alongside input)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Page: PageConfig{
			Format:      "a4",
			Orientation: "portrait",
			Margin:      20,
		},
	}
}

// Load reads and validates a config file. A missing file is an error;
// callers that treat the config as optional should check the path first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config-level constraints. Page geometry is validated
// again by the library when the settings are applied.
func (c *Config) Validate() error {
	if c.Render.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: %d seconds", ErrInvalidTimeout, c.Render.TimeoutSeconds)
	}
	return nil
}
