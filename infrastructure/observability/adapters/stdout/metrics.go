package stdout

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vesla0x1/azstorage/application/ports"
)

// store is shared between a Metrics value and everything derived from it via WithTags
type store struct {
	mu         sync.RWMutex
	counters   map[string]int64
	histograms map[string][]float64
	gauges     map[string]float64
}

// Metrics implements ports.Metrics by printing each sample and keeping
// running values in memory.
type Metrics struct {
	tags   map[string]string
	logger *log.Logger
	store  *store
}

// NewMetrics creates a metrics sink writing to out (stdout when nil)
func NewMetrics(out io.Writer) *Metrics {
	if out == nil {
		out = os.Stdout
	}

	return &Metrics{
		tags:   make(map[string]string),
		logger: log.New(out, "", 0),
		store: &store{
			counters:   make(map[string]int64),
			histograms: make(map[string][]float64),
			gauges:     make(map[string]float64),
		},
	}
}

func (m *Metrics) IncrementCounter(name string, tags map[string]string) {
	allTags := m.combineTags(tags)
	key := buildKey(name, allTags)

	m.store.mu.Lock()
	m.store.counters[key]++
	value := m.store.counters[key]
	m.store.mu.Unlock()

	m.logMetric("COUNTER", name, float64(value), allTags)
}

func (m *Metrics) RecordHistogram(name string, value float64, tags map[string]string) {
	allTags := m.combineTags(tags)
	key := buildKey(name, allTags)

	m.store.mu.Lock()
	m.store.histograms[key] = append(m.store.histograms[key], value)
	count := len(m.store.histograms[key])
	m.store.mu.Unlock()

	m.logger.Printf("%s [METRIC] HISTOGRAM %s=%.4f count=%d%s",
		time.Now().UTC().Format(time.RFC3339), name, value, count, formatTags(allTags))
}

func (m *Metrics) RecordGauge(name string, value float64, tags map[string]string) {
	allTags := m.combineTags(tags)
	key := buildKey(name, allTags)

	m.store.mu.Lock()
	m.store.gauges[key] = value
	m.store.mu.Unlock()

	m.logMetric("GAUGE", name, value, allTags)
}

// WithTags returns a new Metrics instance with additional tags
func (m *Metrics) WithTags(tags map[string]string) ports.Metrics {
	return &Metrics{
		tags:   m.combineTags(tags),
		logger: m.logger,
		store:  m.store, // Share the same storage
	}
}

// GetCounter returns the current value of a counter (useful for testing).
// tags must include the default tags of the instance that recorded it.
func (m *Metrics) GetCounter(name string, tags map[string]string) int64 {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.counters[buildKey(name, m.combineTags(tags))]
}

// GetHistogram returns all values recorded for a histogram (useful for testing)
func (m *Metrics) GetHistogram(name string, tags map[string]string) []float64 {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	values := m.store.histograms[buildKey(name, m.combineTags(tags))]
	result := make([]float64, len(values))
	copy(result, values)
	return result
}

// GetGauge returns the current value of a gauge (useful for testing)
func (m *Metrics) GetGauge(name string, tags map[string]string) float64 {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.gauges[buildKey(name, m.combineTags(tags))]
}

func (m *Metrics) logMetric(metricType string, name string, value float64, tags map[string]string) {
	m.logger.Printf("%s [METRIC] %s %s=%.2f%s",
		time.Now().UTC().Format(time.RFC3339), metricType, name, value, formatTags(tags))
}

// combineTags merges default tags with provided tags
func (m *Metrics) combineTags(tags map[string]string) map[string]string {
	allTags := make(map[string]string, len(m.tags)+len(tags))
	for k, v := range m.tags {
		allTags[k] = v
	}
	for k, v := range tags {
		allTags[k] = v
	}
	return allTags
}

// buildKey creates a stable key for a metric with tags
func buildKey(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	return fmt.Sprintf("%s{%s}", name, strings.Join(sortedPairs(tags, ":"), ","))
}

func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(sortedPairs(tags, "="), " ")
}

func sortedPairs(tags map[string]string, sep string) []string {
	pairs := make([]string, 0, len(tags))
	for k, v := range tags {
		pairs = append(pairs, k+sep+v)
	}
	sort.Strings(pairs)
	return pairs
}
