package config

import (
	"github.com/vesla0x1/azstorage/utils"
)

// parse reads configuration from environment variables
func parse() (*Config, error) {
	environment := utils.GetEnv("ENVIRONMENT", "local")
	production := isProduction(environment)

	cfg := &Config{
		// Core
		Environment: environment,
		ServiceName: utils.GetEnv("SERVICE_NAME", "azstorage"),
		LogLevel:    utils.GetEnv("LOG_LEVEL", "info"),
		Version:     utils.GetEnv("SERVICE_VERSION", "1.0.0"),

		// Adapter selection
		Adapters: AdapterConfig{
			Logger:  utils.GetEnv("ADAPTER_LOGGER", ""),
			Metrics: utils.GetEnv("ADAPTER_METRICS", ""),
		},

		// Storage Configuration
		Storage: StorageConfig{
			Auth:          utils.GetEnv("AZURE_STORAGE_AUTH", ""),
			MaxRetries:    utils.GetEnvInt("STORAGE_MAX_RETRIES", defaultMaxRetries(production)),
			Timeout:       utils.GetEnvDuration("STORAGE_TIMEOUT", "30s"),
			RetryDelay:    utils.GetEnvDuration("STORAGE_RETRY_DELAY", "4s"),
			MaxRetryDelay: utils.GetEnvDuration("STORAGE_MAX_RETRY_DELAY", "60s"),
			Azure: AzureConfig{
				ConnectionString: utils.GetEnvFirst([]string{"AZURE_STORAGE_CONNECTION_STRING", "AzureWebJobsStorage"}, ""),
				AccountName:      utils.GetEnv("AZURE_STORAGE_ACCOUNT", ""),
				AccountKey:       utils.GetEnvFirst([]string{"AZURE_STORAGE_KEY", "AZURE_STORAGE_ACCESS_KEY"}, ""),
				Protocol:         utils.GetEnv("AZURE_STORAGE_PROTOCOL", "https"),
				EndpointSuffix:   utils.GetEnv("AZURE_STORAGE_ENDPOINT_SUFFIX", "core.windows.net"),
			},
			Provision: ProvisionConfig{
				Containers: utils.GetEnvList("STORAGE_CONTAINERS"),
				Queues:     utils.GetEnvList("STORAGE_QUEUES"),
				Tables:     utils.GetEnvList("STORAGE_TABLES"),
			},
		},

		// Observability Configuration
		Observability: ObservabilityConfig{
			LogFormat:        utils.GetEnv("LOG_FORMAT", defaultLogFormat(production)),
			MetricsNamespace: utils.GetEnv("METRICS_NAMESPACE", "azstorage"),
		},
	}

	return cfg, nil
}
