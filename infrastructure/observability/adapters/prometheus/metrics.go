// Package prometheus exposes ports.Metrics through the Prometheus client
// library. Collectors are created on first use and registered with the
// supplied registerer; metric names are prefixed with the namespace and
// dots or dashes become underscores.
package prometheus

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vesla0x1/azstorage/application/ports"
)

// vecs holds collectors shared by every Metrics derived via WithTags
type vecs struct {
	mu         sync.Mutex
	reg        prometheus.Registerer
	namespace  string
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	gauges     map[string]*prometheus.GaugeVec
}

// Metrics implements ports.Metrics
type Metrics struct {
	tags map[string]string
	vecs *vecs
}

// NewMetrics creates a Prometheus-backed metrics sink. A nil registerer
// means prometheus.DefaultRegisterer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Metrics{
		tags: make(map[string]string),
		vecs: &vecs{
			reg:        reg,
			namespace:  sanitize(namespace),
			counters:   make(map[string]*prometheus.CounterVec),
			histograms: make(map[string]*prometheus.HistogramVec),
			gauges:     make(map[string]*prometheus.GaugeVec),
		},
	}
}

func (m *Metrics) IncrementCounter(name string, tags map[string]string) {
	labels := m.combineTags(tags)
	vec := m.vecs.counter(sanitize(name)+"_total", labelNames(labels))
	vec.With(labels).Inc()
}

func (m *Metrics) RecordHistogram(name string, value float64, tags map[string]string) {
	labels := m.combineTags(tags)
	vec := m.vecs.histogram(sanitize(name), labelNames(labels))
	vec.With(labels).Observe(value)
}

func (m *Metrics) RecordGauge(name string, value float64, tags map[string]string) {
	labels := m.combineTags(tags)
	vec := m.vecs.gauge(sanitize(name), labelNames(labels))
	vec.With(labels).Set(value)
}

// WithTags returns a Metrics that adds tags as constant labels
func (m *Metrics) WithTags(tags map[string]string) ports.Metrics {
	return &Metrics{
		tags: m.combineTags(tags),
		vecs: m.vecs,
	}
}

func (m *Metrics) combineTags(tags map[string]string) prometheus.Labels {
	labels := make(prometheus.Labels, len(m.tags)+len(tags))
	for k, v := range m.tags {
		labels[sanitize(k)] = v
	}
	for k, v := range tags {
		labels[sanitize(k)] = v
	}
	return labels
}

func (v *vecs) counter(name string, labels []string) *prometheus.CounterVec {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := vecKey(name, labels)
	if vec, ok := v.counters[key]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: v.namespace,
		Name:      name,
		Help:      "Counter " + name,
	}, labels)
	vec = register(v.reg, vec)
	v.counters[key] = vec
	return vec
}

func (v *vecs) histogram(name string, labels []string) *prometheus.HistogramVec {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := vecKey(name, labels)
	if vec, ok := v.histograms[key]; ok {
		return vec
	}

	// Default buckets: 0.005 to 10 seconds
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: v.namespace,
		Name:      name,
		Help:      "Histogram " + name,
		Buckets:   prometheus.DefBuckets,
	}, labels)
	vec = register(v.reg, vec)
	v.histograms[key] = vec
	return vec
}

func (v *vecs) gauge(name string, labels []string) *prometheus.GaugeVec {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := vecKey(name, labels)
	if vec, ok := v.gauges[key]; ok {
		return vec
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: v.namespace,
		Name:      name,
		Help:      "Gauge " + name,
	}, labels)
	vec = register(v.reg, vec)
	v.gauges[key] = vec
	return vec
}

// register adds c to reg. If an identical collector is already registered
// that one is returned instead. Other registration failures leave c
// unregistered but still usable.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func labelNames(labels prometheus.Labels) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func vecKey(name string, labels []string) string {
	return name + "|" + strings.Join(labels, ",")
}

var replacer = strings.NewReplacer(".", "_", "-", "_", " ", "_")

func sanitize(name string) string {
	return replacer.Replace(name)
}
