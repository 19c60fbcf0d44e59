package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var errors []string

	// Core validations
	if c.ServiceName == "" {
		errors = append(errors, "SERVICE_NAME is required")
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errors = append(errors, fmt.Sprintf("invalid LOG_LEVEL: %s (must be debug, info, warn or error)", c.LogLevel))
	}

	// Validate adapters
	if err := c.Adapters.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate storage
	if err := c.Storage.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate observability
	if err := c.Observability.Validate(c.Adapters); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates adapter configuration
func (a *AdapterConfig) Validate() error {
	validLogger := map[string]bool{"stdout": true}
	if !validLogger[a.Logger] {
		return fmt.Errorf("invalid logger adapter: %s (must be stdout)", a.Logger)
	}

	validMetrics := map[string]bool{"stdout": true, "prometheus": true}
	if !validMetrics[a.Metrics] {
		return fmt.Errorf("invalid metrics adapter: %s (must be stdout or prometheus)", a.Metrics)
	}

	return nil
}

// Validate validates Storage configuration. The connection string itself is
// not parsed here; that happens when the storage factory is built.
func (s *StorageConfig) Validate() error {
	if s.MaxRetries < 0 {
		return fmt.Errorf("STORAGE_MAX_RETRIES cannot be negative")
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("STORAGE_TIMEOUT must be positive")
	}
	if s.RetryDelay <= 0 {
		return fmt.Errorf("STORAGE_RETRY_DELAY must be positive")
	}
	if s.MaxRetryDelay < s.RetryDelay {
		return fmt.Errorf("STORAGE_MAX_RETRY_DELAY cannot be less than STORAGE_RETRY_DELAY")
	}

	switch s.Auth {
	case AuthConnectionString:
		if s.Azure.ConnectionString == "" {
			return fmt.Errorf("AZURE_STORAGE_CONNECTION_STRING is required for connection_string auth")
		}
	case AuthSharedKey:
		if s.Azure.AccountName == "" || s.Azure.AccountKey == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY are required for shared_key auth")
		}
	case AuthAzureAD:
		if s.Azure.AccountName == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required for azure_ad auth")
		}
	case AuthDevelopment:
	case "":
		return fmt.Errorf("AZURE_STORAGE_AUTH could not be determined; set AZURE_STORAGE_CONNECTION_STRING or AZURE_STORAGE_ACCOUNT")
	default:
		return fmt.Errorf("invalid AZURE_STORAGE_AUTH: %s (must be connection_string, shared_key, azure_ad or development)", s.Auth)
	}

	if s.Auth == AuthSharedKey || s.Auth == AuthAzureAD {
		if s.Azure.Protocol != "http" && s.Azure.Protocol != "https" {
			return fmt.Errorf("AZURE_STORAGE_PROTOCOL must be http or https")
		}
		if s.Azure.EndpointSuffix == "" {
			return fmt.Errorf("AZURE_STORAGE_ENDPOINT_SUFFIX is required")
		}
	}

	return nil
}

// Validate validates Observability configuration
func (o *ObservabilityConfig) Validate(adapters AdapterConfig) error {
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be text or json)", o.LogFormat)
	}
	if adapters.Metrics == "prometheus" && o.MetricsNamespace == "" {
		return fmt.Errorf("METRICS_NAMESPACE is required for prometheus metrics")
	}
	return nil
}
