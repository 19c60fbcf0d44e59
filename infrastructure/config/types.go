package config

import (
	"time"
)

// Storage authentication modes
const (
	AuthConnectionString = "connection_string"
	AuthSharedKey        = "shared_key"
	AuthAzureAD          = "azure_ad"
	AuthDevelopment      = "development"
)

// Config holds all application configuration
type Config struct {
	// Core settings
	Environment string
	ServiceName string
	LogLevel    string
	Version     string

	// Adapter selection
	Adapters AdapterConfig

	// Component configurations
	Storage       StorageConfig
	Observability ObservabilityConfig
}

// AdapterConfig specifies which implementations to use
type AdapterConfig struct {
	Logger  string // "stdout"
	Metrics string // "stdout", "prometheus"
}

// StorageConfig holds the storage account and SDK pipeline settings
type StorageConfig struct {
	// One of the Auth* constants; derived from the other fields when empty
	Auth string

	// Forwarded to the SDK retry policy
	MaxRetries    int
	Timeout       time.Duration // per try
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	Azure     AzureConfig
	Provision ProvisionConfig
}

// AzureConfig holds account credentials
type AzureConfig struct {
	ConnectionString string
	AccountName      string
	AccountKey       string
	Protocol         string
	EndpointSuffix   string
}

// ProvisionConfig lists resources that must exist before the service starts
type ProvisionConfig struct {
	Containers []string
	Queues     []string
	Tables     []string
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	LogFormat        string // "text", "json"
	MetricsNamespace string
}
