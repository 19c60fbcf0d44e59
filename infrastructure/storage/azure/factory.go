package azure

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/domain/account"
)

// Factory hands out handles to containers, queues and tables of one account.
// It is immutable after construction and safe for concurrent use.
type Factory struct {
	account *account.Account

	blob  *service.Client
	queue *azqueue.ServiceClient
	table *aztables.ServiceClient

	logger  ports.Logger
	metrics ports.Metrics
}

var _ ports.StorageFactory = (*Factory)(nil)

// NewFromConnectionString parses connStr and builds a Factory for the account
// it describes. A malformed string yields an *account.ConfigurationError.
func NewFromConnectionString(connStr string, opts ...Option) (*Factory, error) {
	acct, err := account.Parse(connStr)
	if err != nil {
		return nil, err
	}
	return New(acct, opts...)
}

// New builds a Factory for acct. The account is used as given. Service
// clients are created for every endpoint the account has; a service without
// an endpoint still hands out handles, but their operations fail with
// ErrEndpointNotConfigured.
func New(acct *account.Account, opts ...Option) (*Factory, error) {
	if acct == nil {
		return nil, ErrNilAccount
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	f := &Factory{
		account: acct,
		logger:  o.logger,
		metrics: o.metrics,
	}

	co := o.clientOptions()
	var err error

	if endpoint := acct.BlobEndpoint(); endpoint != "" {
		if f.blob, err = newBlobClient(acct, endpoint, co); err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}
	if endpoint := acct.QueueEndpoint(); endpoint != "" {
		if f.queue, err = newQueueClient(acct, endpoint, co); err != nil {
			return nil, fmt.Errorf("failed to create queue client: %w", err)
		}
	}
	if endpoint := acct.TableEndpoint(); endpoint != "" {
		if f.table, err = newTableClient(acct, endpoint, co); err != nil {
			return nil, fmt.Errorf("failed to create table client: %w", err)
		}
	}

	return f, nil
}

// Account returns the account every handle addresses
func (f *Factory) Account() *account.Account {
	return f.account
}

// GetBlobContainer returns a handle to the named container
func (f *Factory) GetBlobContainer(name string) ports.BlobContainer {
	return f.Container(name)
}

// GetQueue returns a handle to the named queue
func (f *Factory) GetQueue(name string) ports.Queue {
	return f.Queue(name)
}

// GetTable returns a handle to the named table
func (f *Factory) GetTable(name string) ports.Table {
	return f.Table(name)
}

// Container is GetBlobContainer returning the concrete type
func (f *Factory) Container(name string) *Container {
	c := &Container{resource: f.resource("container", name, f.account.BlobEndpoint())}
	if f.blob != nil {
		c.client = f.blob.NewContainerClient(name)
	}
	return c
}

// Queue is GetQueue returning the concrete type
func (f *Factory) Queue(name string) *Queue {
	q := &Queue{resource: f.resource("queue", name, f.account.QueueEndpoint())}
	if f.queue != nil {
		q.client = f.queue.NewQueueClient(name)
	}
	return q
}

// Table is GetTable returning the concrete type
func (f *Factory) Table(name string) *Table {
	t := &Table{resource: f.resource("table", name, f.account.TableEndpoint())}
	if f.table != nil {
		t.service = f.table
		t.client = f.table.NewClient(name)
	}
	return t
}

func (f *Factory) resource(kind, name, endpoint string) resource {
	url := ""
	if endpoint != "" {
		url = endpoint + "/" + name
	}
	return resource{
		kind:    kind,
		name:    name,
		account: f.account.Name(),
		url:     url,
		logger:  f.logger,
		metrics: f.metrics,
	}
}

func newBlobClient(acct *account.Account, endpoint string, co azcore.ClientOptions) (*service.Client, error) {
	opts := &azblob.ClientOptions{ClientOptions: co}

	var (
		client *azblob.Client
		err    error
	)
	switch acct.Kind() {
	case account.CredentialSharedKey:
		cred, cerr := azblob.NewSharedKeyCredential(acct.Name(), acct.Key())
		if cerr != nil {
			return nil, cerr
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL(endpoint), cred, opts)
	case account.CredentialToken:
		client, err = azblob.NewClient(serviceURL(endpoint), acct.TokenCredential(), opts)
	case account.CredentialSAS:
		client, err = azblob.NewClientWithNoCredential(withSAS(serviceURL(endpoint), acct.SAS()), opts)
	default:
		client, err = azblob.NewClientWithNoCredential(serviceURL(endpoint), opts)
	}
	if err != nil {
		return nil, err
	}
	return client.ServiceClient(), nil
}

func newQueueClient(acct *account.Account, endpoint string, co azcore.ClientOptions) (*azqueue.ServiceClient, error) {
	opts := &azqueue.ClientOptions{ClientOptions: co}

	switch acct.Kind() {
	case account.CredentialSharedKey:
		cred, err := azqueue.NewSharedKeyCredential(acct.Name(), acct.Key())
		if err != nil {
			return nil, err
		}
		return azqueue.NewServiceClientWithSharedKeyCredential(serviceURL(endpoint), cred, opts)
	case account.CredentialToken:
		return azqueue.NewServiceClient(serviceURL(endpoint), acct.TokenCredential(), opts)
	case account.CredentialSAS:
		return azqueue.NewServiceClientWithNoCredential(withSAS(serviceURL(endpoint), acct.SAS()), opts)
	default:
		return azqueue.NewServiceClientWithNoCredential(serviceURL(endpoint), opts)
	}
}

func newTableClient(acct *account.Account, endpoint string, co azcore.ClientOptions) (*aztables.ServiceClient, error) {
	opts := &aztables.ClientOptions{ClientOptions: co}

	switch acct.Kind() {
	case account.CredentialSharedKey:
		cred, err := aztables.NewSharedKeyCredential(acct.Name(), acct.Key())
		if err != nil {
			return nil, err
		}
		return aztables.NewServiceClientWithSharedKey(endpoint, cred, opts)
	case account.CredentialToken:
		return aztables.NewServiceClient(endpoint, acct.TokenCredential(), opts)
	case account.CredentialSAS:
		return aztables.NewServiceClientWithNoCredential(withSAS(endpoint, acct.SAS()), opts)
	default:
		return aztables.NewServiceClientWithNoCredential(endpoint, opts)
	}
}

// serviceURL adds the trailing slash the blob and queue clients expect
func serviceURL(endpoint string) string {
	if strings.HasSuffix(endpoint, "/") {
		return endpoint
	}
	return endpoint + "/"
}

func withSAS(endpoint, sas string) string {
	if sas == "" {
		return endpoint
	}
	return endpoint + "?" + sas
}
