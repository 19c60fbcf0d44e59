package observability

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/infrastructure/config"
	prom "github.com/vesla0x1/azstorage/infrastructure/observability/adapters/prometheus"
	"github.com/vesla0x1/azstorage/infrastructure/observability/adapters/stdout"
)

// Option configures the sinks used by CreateObservability
type Option func(*sinks)

type sinks struct {
	out io.Writer
	reg prometheus.Registerer
}

// WithOutput sends stdout logs and metrics to w
func WithOutput(w io.Writer) Option {
	return func(s *sinks) {
		s.out = w
	}
}

// WithRegisterer registers prometheus collectors on reg instead of the default registry
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *sinks) {
		s.reg = reg
	}
}

func newSinks(opts []Option) sinks {
	s := sinks{
		out: os.Stdout,
		reg: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func createLogger(cfg *config.Config, s sinks) (ports.Logger, error) {
	switch cfg.Adapters.Logger {
	case "stdout", "":
		return stdout.NewLogger(s.out, cfg.LogLevel, cfg.Observability.LogFormat == "json"), nil
	default:
		return nil, fmt.Errorf("unsupported logger adapter: %s", cfg.Adapters.Logger)
	}
}

func createMetrics(cfg *config.Config, s sinks) (ports.Metrics, error) {
	switch cfg.Adapters.Metrics {
	case "stdout", "":
		return stdout.NewMetrics(s.out), nil
	case "prometheus":
		return prom.NewMetrics(cfg.Observability.MetricsNamespace, s.reg), nil
	default:
		return nil, fmt.Errorf("unsupported metrics adapter: %s", cfg.Adapters.Metrics)
	}
}
