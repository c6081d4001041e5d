package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/imgsuite/internal/scenario"
)

// Tool identifies the image tool invocations are dispatched to.
type Tool struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// Conversion configures the scenario's format-conversion step.
type Conversion struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type Cache struct {
	Enabled    bool   `yaml:"enabled"`
	Address    string `yaml:"address"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

type ServiceConfig struct {
	Port       int        `yaml:"port"`
	Tool       Tool       `yaml:"tool"`
	ImageDir   string     `yaml:"imageDir"`
	Samples    []string   `yaml:"samples"`
	Conversion Conversion `yaml:"conversion"`
	Database   Database   `yaml:"database"`
	Cache      Cache      `yaml:"cache"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	// Validate tool and sample configuration
	if err := validateTool(config.Tool); err != nil {
		return nil, fmt.Errorf("invalid tool configuration: %w", err)
	}
	if err := validateSamples(config.Samples); err != nil {
		return nil, fmt.Errorf("invalid sample configuration: %w", err)
	}

	return &config, nil
}

// validateTool ensures the tool type is known and externally dispatched tools
// name a binary
func validateTool(tool Tool) error {
	switch tool.Type {
	case scenario.ToolTypeExternal:
		if tool.Path == "" {
			return fmt.Errorf("tool path must be set for type %q", tool.Type)
		}
	case scenario.ToolTypeBuiltin:
		// No binary needed
	default:
		return fmt.Errorf("unknown tool type: %q", tool.Type)
	}
	return nil
}

// validateSamples ensures all sample entries are non-empty and unique
func validateSamples(samples []string) error {
	seenNames := make(map[string]bool)

	for i, sample := range samples {
		// Validate name is not empty
		if sample == "" {
			return fmt.Errorf("sample at index %d is empty", i)
		}

		// Validate name is unique
		if seenNames[sample] {
			return fmt.Errorf("duplicate sample name: %s", sample)
		}
		seenNames[sample] = true
	}

	return nil
}
