package azure

import (
	"fmt"
	"time"

	"github.com/vesla0x1/azstorage/application/ports"
)

// resource carries the addressing shared by all handle types
type resource struct {
	kind    string
	name    string
	account string
	url     string

	logger  ports.Logger
	metrics ports.Metrics
}

// Name returns the resource name
func (r resource) Name() string { return r.name }

// AccountName returns the name of the account the resource lives in
func (r resource) AccountName() string { return r.account }

// URL returns the resource URL without any SAS token, or "" when the
// account has no endpoint for this service
func (r resource) URL() string { return r.url }

func (r resource) notConfigured() error {
	return fmt.Errorf("%s %q: %s %w", r.kind, r.name, r.kind, ErrEndpointNotConfigured)
}

// done records the outcome of op and wraps err, if any, with the resource name
func (r resource) done(op string, start time.Time, result string, err error) error {
	tags := map[string]string{
		"account": r.account,
		"result":  result,
	}

	if r.metrics != nil {
		r.metrics.RecordHistogram(fmt.Sprintf("storage.%s.%s", r.kind, op), time.Since(start).Seconds(), tags)
	}

	if err != nil {
		if r.metrics != nil {
			r.metrics.IncrementCounter(fmt.Sprintf("storage.%s.errors", r.kind), map[string]string{
				"account":   r.account,
				"operation": op,
			})
		}
		if r.logger != nil {
			r.logger.Error("storage operation failed",
				"kind", r.kind,
				"operation", op,
				"name", r.name,
				"account", r.account,
				"error", err)
		}
		return fmt.Errorf("%s %s %q: %w", op, r.kind, r.name, err)
	}

	if r.logger != nil {
		r.logger.Debug("storage operation completed",
			"kind", r.kind,
			"operation", op,
			"name", r.name,
			"account", r.account,
			"result", result,
			"duration", time.Since(start))
	}
	return nil
}
