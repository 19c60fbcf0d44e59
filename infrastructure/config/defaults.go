package config

import (
	"time"
)

// DefaultConfig returns a complete configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Core settings
		Environment: "development",
		ServiceName: "azstorage",
		LogLevel:    "info",
		Version:     "1.0.0",

		// Component configurations with defaults
		Adapters:      DefaultAdapterConfig(),
		Storage:       DefaultStorageConfig(),
		Observability: DefaultObservabilityConfig(),
	}
}

// DefaultAdapterConfig returns default adapter selection
func DefaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		Logger:  "stdout",
		Metrics: "stdout",
	}
}

// DefaultStorageConfig returns the emulator account with SDK-like retry settings
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Auth:          AuthDevelopment,
		MaxRetries:    3,
		Timeout:       30 * time.Second,
		RetryDelay:    4 * time.Second,
		MaxRetryDelay: 60 * time.Second,
		Azure:         DefaultAzureConfig(),
	}
}

// DefaultAzureConfig returns public-cloud endpoint settings
func DefaultAzureConfig() AzureConfig {
	return AzureConfig{
		Protocol:       "https",
		EndpointSuffix: "core.windows.net",
	}
}

// DefaultObservabilityConfig returns sensible defaults for observability configuration
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogFormat:        "text",
		MetricsNamespace: "azstorage",
	}
}

// applyDefaults applies environment-specific defaults
func applyDefaults(cfg *Config) {
	if cfg.Adapters.Logger == "" {
		cfg.Adapters.Logger = "stdout"
	}
	if cfg.Adapters.Metrics == "" {
		if cfg.IsProduction() {
			cfg.Adapters.Metrics = "prometheus"
		} else {
			cfg.Adapters.Metrics = "stdout"
		}
	}

	if cfg.Storage.Auth == "" {
		cfg.Storage.Auth = inferAuth(cfg)
	}

}

// Production gets more retries and JSON logs unless the operator set
// STORAGE_MAX_RETRIES or LOG_FORMAT explicitly.
func defaultMaxRetries(production bool) int {
	if production {
		return 5
	}
	return 3
}

func defaultLogFormat(production bool) string {
	if production {
		return "json"
	}
	return "text"
}

// inferAuth picks an auth mode from whichever credentials are present.
// Returns "" when nothing usable is configured outside local environments.
func inferAuth(cfg *Config) string {
	az := cfg.Storage.Azure
	switch {
	case az.ConnectionString != "":
		return AuthConnectionString
	case az.AccountName != "" && az.AccountKey != "":
		return AuthSharedKey
	case az.AccountName != "":
		return AuthAzureAD
	case cfg.IsLocal() || cfg.IsTest():
		return AuthDevelopment
	default:
		return ""
	}
}
