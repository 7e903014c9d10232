package config

import (
	"fmt"

	"github.com/nestora/nestora-api/auth/password"
	"github.com/nestora/nestora-api/auth/token"
	"github.com/nestora/nestora-api/database"
	"github.com/nestora/nestora-api/logger"
	"github.com/nestora/nestora-api/observability"
	"github.com/nestora/nestora-api/server"
)

// AuthConfig groups the token and password-hashing configuration.
type AuthConfig struct {
	JWT      token.Config    `yaml:"jwt" mapstructure:"jwt"`
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// App is the root configuration for the nestora backend.
type App struct {
	BaseConfig    `yaml:",inline" mapstructure:",squash"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Auth          AuthConfig           `yaml:"auth" mapstructure:"auth"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills in zero-value fields across all sections.
func (c *App) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "nestora-api"
	}
	c.BaseConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.JWT.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks all sections. A missing JWT secret is a fatal
// configuration error: the service must not start without it.
func (c *App) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Auth.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Auth.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
