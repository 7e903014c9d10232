package config

import "fmt"

// BaseConfig holds the identity fields shared by every deployment of the
// service: its name and the environment it runs in.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults fills in sensible defaults for a local development run.
func (c *BaseConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "nestora-api"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// IsProduction reports whether the service runs in the production
// environment.
func (c *BaseConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the base configuration for consistency.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch c.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
}
