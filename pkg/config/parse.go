package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a scenario from YAML bytes, applies defaults and
// validates it. This is the entry point for callers holding the scenario
// as a payload rather than a file.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
	}

	cfg.ApplyDefaults()
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &cfg, nil
}

// ParseYAMLString parses a scenario from a YAML string
func ParseYAMLString(yamlText string) (*Config, error) {
	return ParseYAML([]byte(yamlText))
}
