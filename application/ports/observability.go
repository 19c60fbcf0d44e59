package ports

type Observability interface {
	// Components returns the root logger and metrics without scoping
	Components() (Logger, Metrics, error)

	// ComponentsScoped returns logger and metrics scoped to a specific component
	ComponentsScoped(component string) (Logger, Metrics, error)

	// Logger returns the root logger
	Logger() (Logger, error)

	// LoggerScoped returns a logger scoped to a specific component
	LoggerScoped(component string) (Logger, error)

	// Metrics returns the root metrics
	Metrics() (Metrics, error)

	// MetricsScoped returns metrics scoped to a specific component
	MetricsScoped(component string) (Metrics, error)
}

// Logger defines the interface for structured logging.
// Fields are passed as alternating key/value pairs.
type Logger interface {
	// Debug logs detail useful only while diagnosing a problem
	Debug(msg string, fields ...interface{})

	// Info logs normal operations
	Info(msg string, fields ...interface{})

	// Warn logs recoverable problems
	Warn(msg string, fields ...interface{})

	// Error logs failures; pass the error under the "error" key
	Error(msg string, fields ...interface{})

	// WithFields returns a new Logger with the given fields added to all subsequent logs
	WithFields(fields map[string]interface{}) Logger
}

// Metrics defines the interface for recording application metrics.
type Metrics interface {
	// IncrementCounter increments a counter metric by 1.
	IncrementCounter(name string, tags map[string]string)

	// RecordHistogram records a value in a histogram distribution.
	RecordHistogram(name string, value float64, tags map[string]string)

	// RecordGauge records a point-in-time measurement.
	RecordGauge(name string, value float64, tags map[string]string)

	// WithTags returns a new Metrics instance with additional default tags
	WithTags(tags map[string]string) Metrics
}
