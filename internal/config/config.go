package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes the single npm-distributed CLI that verso manages.
type Config struct {
	// Package is the npm package name, e.g. "typescript".
	Package string `yaml:"package"`
	// Binary is the executable name the package ships, e.g. "tsc".
	Binary string `yaml:"binary"`
	// BinDir hosts the activation symlink. Relative values are resolved
	// against the managed root.
	BinDir string `yaml:"bin_dir"`
	// Npm is the package-manager executable to invoke.
	Npm string `yaml:"npm"`
	// Registry is the npm registry base URL for version lookups.
	Registry string `yaml:"registry"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Package:  "typescript",
		Binary:   "tsc",
		Npm:      "npm",
		Registry: "https://registry.npmjs.org",
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise
// returns the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot identify the managed tool.
func (c Config) Validate() error {
	if c.Package == "" {
		return errors.New("config: package must not be empty")
	}
	if c.Binary == "" {
		return errors.New("config: binary must not be empty")
	}
	if c.Npm == "" {
		return errors.New("config: npm executable must not be empty")
	}
	if c.Registry == "" {
		return errors.New("config: registry must not be empty")
	}
	return nil
}
