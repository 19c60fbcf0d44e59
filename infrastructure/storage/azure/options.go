package azure

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/vesla0x1/azstorage/application/ports"
)

// Option configures a Factory
type Option func(*options)

type options struct {
	retry     *policy.RetryOptions
	transport policy.Transporter
	logger    ports.Logger
	metrics   ports.Metrics
}

// WithRetry replaces the SDK retry policy used by every client
func WithRetry(retry policy.RetryOptions) Option {
	return func(o *options) {
		o.retry = &retry
	}
}

// WithTransport sends every request through t instead of the default HTTP client
func WithTransport(t policy.Transporter) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithHTTPClient is WithTransport for a plain *http.Client
func WithHTTPClient(c *http.Client) Option {
	return WithTransport(c)
}

// WithLogger sets the logger used by handle operations
func WithLogger(l ports.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics sink used by handle operations
func WithMetrics(m ports.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func (o *options) clientOptions() azcore.ClientOptions {
	var co azcore.ClientOptions
	if o.retry != nil {
		co.Retry = *o.retry
	}
	if o.transport != nil {
		co.Transport = o.transport
	}
	return co
}
