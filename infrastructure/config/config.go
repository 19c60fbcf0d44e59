package config

import (
	"fmt"
	"strings"
)

// Load reads .env files, parses the environment, applies defaults and
// validates the result. Each call builds a fresh Config.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error
// Use this for application initialization where errors are fatal
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Environment detection methods
func (c *Config) IsLocal() bool {
	env := strings.ToLower(c.Environment)
	return env == "local" || env == "development" || env == "dev"
}

func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

func isProduction(environment string) bool {
	env := strings.ToLower(environment)
	return env == "production" || env == "prod"
}

func (c *Config) IsTest() bool {
	env := strings.ToLower(c.Environment)
	return env == "test" || env == "testing"
}

// HasProvisioning reports whether any resource is listed for provisioning
func (c *Config) HasProvisioning() bool {
	p := c.Storage.Provision
	return len(p.Containers)+len(p.Queues)+len(p.Tables) > 0
}
