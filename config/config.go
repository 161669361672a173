// Package config loads the optional suite-wide YAML configuration file
// (.gobdd.yml) that seeds SuiteOptions, following the same yaml.v3
// unmarshal-into-struct pattern ormasoftchile-gert's cmd/gert/main.go uses
// for its runbook/provider config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of .gobdd.yml.
type Config struct {
	FeaturesPath string   `yaml:"features_path"`
	Tags         []string `yaml:"tags"`
	CaseSensitive bool    `yaml:"case_sensitive"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{FeaturesPath: "features/*.feature"}
}

// Load reads and parses path. A missing file is not an error: Default is
// returned instead, since a suite is expected to run with no configuration
// file at all (spec.md carries no mandatory config format).
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
