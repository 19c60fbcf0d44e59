// Package observability builds the logger and metrics selected in config
// and hands out copies scoped to a component.
package observability

import (
	"errors"
	"fmt"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/infrastructure/config"
)

var (
	errLoggerMissing  = errors.New("logger not initialized")
	errMetricsMissing = errors.New("metrics not initialized")
)

type observability struct {
	logger  ports.Logger
	metrics ports.Metrics

	// service-level tags attached to every scoped logger and metric
	tags map[string]string
}

var _ ports.Observability = (*observability)(nil)

// CreateObservability builds the adapters named in cfg.Adapters
func CreateObservability(cfg *config.Config, opts ...Option) (ports.Observability, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	s := newSinks(opts)

	logger, err := createLogger(cfg, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create observability: %w", err)
	}
	metrics, err := createMetrics(cfg, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create observability: %w", err)
	}

	return newObservability(cfg, logger, metrics), nil
}

func newObservability(cfg *config.Config, logger ports.Logger, metrics ports.Metrics) *observability {
	return &observability{
		logger:  logger,
		metrics: metrics,
		tags: map[string]string{
			"service": cfg.ServiceName,
			"version": cfg.Version,
			"env":     cfg.Environment,
		},
	}
}

func (o *observability) Components() (ports.Logger, ports.Metrics, error) {
	logger, err := o.Logger()
	if err != nil {
		return nil, nil, err
	}
	metrics, err := o.Metrics()
	if err != nil {
		return nil, nil, err
	}
	return logger, metrics, nil
}

func (o *observability) ComponentsScoped(component string) (ports.Logger, ports.Metrics, error) {
	logger, err := o.LoggerScoped(component)
	if err != nil {
		return nil, nil, err
	}
	metrics, err := o.MetricsScoped(component)
	if err != nil {
		return nil, nil, err
	}
	return logger, metrics, nil
}

func (o *observability) Logger() (ports.Logger, error) {
	if o.logger == nil {
		return nil, errLoggerMissing
	}
	return o.logger, nil
}

// LoggerScoped adds service, version, env and component fields
func (o *observability) LoggerScoped(component string) (ports.Logger, error) {
	if o.logger == nil {
		return nil, errLoggerMissing
	}

	fields := make(map[string]interface{}, len(o.tags)+1)
	for k, v := range o.scope(component) {
		fields[k] = v
	}
	return o.logger.WithFields(fields), nil
}

func (o *observability) Metrics() (ports.Metrics, error) {
	if o.metrics == nil {
		return nil, errMetricsMissing
	}
	return o.metrics, nil
}

// MetricsScoped adds service, version, env and component tags
func (o *observability) MetricsScoped(component string) (ports.Metrics, error) {
	if o.metrics == nil {
		return nil, errMetricsMissing
	}
	return o.metrics.WithTags(o.scope(component)), nil
}

func (o *observability) scope(component string) map[string]string {
	tags := make(map[string]string, len(o.tags)+1)
	for k, v := range o.tags {
		tags[k] = v
	}
	tags["component"] = component
	return tags
}
