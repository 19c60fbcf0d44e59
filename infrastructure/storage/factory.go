package infrastorage

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/domain/account"
	"github.com/vesla0x1/azstorage/infrastructure/config"
	"github.com/vesla0x1/azstorage/infrastructure/storage/azure"
)

// newTokenCredential builds the credential for azure_ad auth. Tests replace it.
var newTokenCredential = func() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

// CreateStorageFactory builds the account selected by cfg.Storage.Auth and
// returns a factory for it. obs may be nil, in which case handle operations
// are neither logged nor measured.
func CreateStorageFactory(cfg *config.Config, obs ports.Observability) (ports.StorageFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	opts := []azure.Option{azure.WithRetry(retryOptions(&cfg.Storage))}

	var logger ports.Logger
	if obs != nil {
		l, metrics, err := obs.ComponentsScoped("storage")
		if err != nil {
			return nil, fmt.Errorf("failed to get observability components: %w", err)
		}
		logger = l
		opts = append(opts, azure.WithLogger(l), azure.WithMetrics(metrics))
	}

	acct, err := buildAccount(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Creating Azure storage factory",
			"auth", cfg.Storage.Auth,
			"account", acct.Name(),
			"credential", acct.Kind().String())
	}

	factory, err := azure.New(acct, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage factory: %w", err)
	}
	return factory, nil
}

func buildAccount(s *config.StorageConfig) (*account.Account, error) {
	endpointOpts := []account.Option{
		account.WithProtocol(s.Azure.Protocol),
		account.WithEndpointSuffix(s.Azure.EndpointSuffix),
	}

	switch s.Auth {
	case config.AuthConnectionString:
		return account.Parse(s.Azure.ConnectionString)

	case config.AuthSharedKey:
		acct, err := account.NewSharedKey(s.Azure.AccountName, s.Azure.AccountKey, endpointOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key account: %w", err)
		}
		return acct, nil

	case config.AuthAzureAD:
		cred, err := newTokenCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure AD credential: %w", err)
		}
		acct, err := account.NewTokenCredential(s.Azure.AccountName, cred, endpointOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure AD account: %w", err)
		}
		return acct, nil

	case config.AuthDevelopment:
		return account.DevelopmentStorage(), nil

	default:
		return nil, fmt.Errorf("unsupported storage auth: %s", s.Auth)
	}
}

// retryOptions maps config onto the SDK retry policy. The SDK reads
// MaxRetries 0 as "use the default", so zero retries is sent as -1.
func retryOptions(s *config.StorageConfig) policy.RetryOptions {
	maxRetries := int32(s.MaxRetries)
	if maxRetries == 0 {
		maxRetries = -1
	}

	return policy.RetryOptions{
		MaxRetries:    maxRetries,
		TryTimeout:    s.Timeout,
		RetryDelay:    s.RetryDelay,
		MaxRetryDelay: s.MaxRetryDelay,
	}
}
