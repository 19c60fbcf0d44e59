// Package account models the credentials and endpoints of one Azure Storage
// account. An Account is immutable once built and is safe to share between
// goroutines.
package account

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Service identifies one of the storage services an account exposes
type Service string

const (
	ServiceBlob  Service = "blob"
	ServiceQueue Service = "queue"
	ServiceTable Service = "table"
	ServiceFile  Service = "file"
)

// CredentialKind describes how requests against the account are authorized
type CredentialKind int

const (
	CredentialAnonymous CredentialKind = iota
	CredentialSharedKey
	CredentialSAS
	CredentialToken
)

func (k CredentialKind) String() string {
	switch k {
	case CredentialSharedKey:
		return "shared_key"
	case CredentialSAS:
		return "sas"
	case CredentialToken:
		return "token"
	default:
		return "anonymous"
	}
}

const (
	DefaultProtocol       = "https"
	DefaultEndpointSuffix = "core.windows.net"

	// Well-known Azurite / storage emulator account
	DevelopmentAccountName = "devstoreaccount1"
	DevelopmentAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
	developmentHost        = "http://127.0.0.1"
)

var developmentPorts = map[Service]int{
	ServiceBlob:  10000,
	ServiceQueue: 10001,
	ServiceTable: 10002,
}

// Account is the authenticated handle to a storage account
type Account struct {
	name        string
	key         string
	sas         string
	token       azcore.TokenCredential
	kind        CredentialKind
	development bool
	endpoints   map[Service]string
}

// Option customizes endpoint construction for NewSharedKey and NewTokenCredential
type Option func(*endpointOptions)

type endpointOptions struct {
	protocol  string
	suffix    string
	overrides map[Service]string
}

// WithProtocol sets the scheme used for derived endpoints. Empty keeps the default.
func WithProtocol(protocol string) Option {
	return func(o *endpointOptions) {
		if protocol != "" {
			o.protocol = protocol
		}
	}
}

// WithEndpointSuffix sets the DNS suffix used for derived endpoints. Empty keeps the default.
func WithEndpointSuffix(suffix string) Option {
	return func(o *endpointOptions) {
		if suffix != "" {
			o.suffix = suffix
		}
	}
}

// WithEndpoint overrides the endpoint of a single service
func WithEndpoint(svc Service, endpoint string) Option {
	return func(o *endpointOptions) {
		o.overrides[svc] = endpoint
	}
}

// NewSharedKey builds an account authorized with its name and base64 key
func NewSharedKey(name, key string, opts ...Option) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyAccountName
	}
	if key == "" {
		return nil, ErrEmptyAccountKey
	}
	if _, err := base64.StdEncoding.DecodeString(key); err != nil {
		return nil, fmt.Errorf("account key is not valid base64: %w", err)
	}

	return &Account{
		name:      name,
		key:       key,
		kind:      CredentialSharedKey,
		endpoints: deriveEndpoints(name, opts...),
	}, nil
}

// NewTokenCredential builds an account authorized through Microsoft Entra ID
func NewTokenCredential(name string, cred azcore.TokenCredential, opts ...Option) (*Account, error) {
	if name == "" {
		return nil, ErrEmptyAccountName
	}
	if cred == nil {
		return nil, ErrNilCredential
	}

	return &Account{
		name:      name,
		token:     cred,
		kind:      CredentialToken,
		endpoints: deriveEndpoints(name, opts...),
	}, nil
}

// DevelopmentStorage returns the local storage emulator account
func DevelopmentStorage() *Account {
	return developmentAccount(developmentHost)
}

func developmentAccount(host string) *Account {
	endpoints := make(map[Service]string, len(developmentPorts))
	for svc, port := range developmentPorts {
		endpoints[svc] = fmt.Sprintf("%s:%d/%s", host, port, DevelopmentAccountName)
	}

	return &Account{
		name:        DevelopmentAccountName,
		key:         DevelopmentAccountKey,
		kind:        CredentialSharedKey,
		development: true,
		endpoints:   endpoints,
	}
}

func deriveEndpoints(name string, opts ...Option) map[Service]string {
	o := &endpointOptions{
		protocol:  DefaultProtocol,
		suffix:    DefaultEndpointSuffix,
		overrides: make(map[Service]string),
	}
	for _, opt := range opts {
		opt(o)
	}

	endpoints := make(map[Service]string, 4)
	for _, svc := range []Service{ServiceBlob, ServiceQueue, ServiceTable, ServiceFile} {
		if override, ok := o.overrides[svc]; ok {
			endpoints[svc] = strings.TrimSuffix(override, "/")
			continue
		}
		endpoints[svc] = fmt.Sprintf("%s://%s.%s.%s", o.protocol, name, svc, o.suffix)
	}
	return endpoints
}

// Name returns the account name; empty for SAS-only accounts built from explicit endpoints
func (a *Account) Name() string { return a.name }

// Key returns the base64 shared key, if any
func (a *Account) Key() string { return a.key }

// SAS returns the shared access signature without a leading '?'
func (a *Account) SAS() string { return a.sas }

// TokenCredential returns the Entra ID credential, if any
func (a *Account) TokenCredential() azcore.TokenCredential { return a.token }

// Kind reports how requests are authorized
func (a *Account) Kind() CredentialKind { return a.kind }

// IsDevelopment reports whether this is the storage emulator account
func (a *Account) IsDevelopment() bool { return a.development }

// Endpoint returns the base URL of a service, or "" if the account has none
func (a *Account) Endpoint(svc Service) string { return a.endpoints[svc] }

func (a *Account) BlobEndpoint() string  { return a.Endpoint(ServiceBlob) }
func (a *Account) QueueEndpoint() string { return a.Endpoint(ServiceQueue) }
func (a *Account) TableEndpoint() string { return a.Endpoint(ServiceTable) }

// String describes the account without exposing secrets
func (a *Account) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("name=%s", a.name))
	parts = append(parts, fmt.Sprintf("credential=%s", a.kind))
	for _, svc := range []Service{ServiceBlob, ServiceQueue, ServiceTable} {
		if ep := a.endpoints[svc]; ep != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", svc, ep))
		}
	}
	return "Account{" + strings.Join(parts, " ") + "}"
}
