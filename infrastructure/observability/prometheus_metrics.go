// Package observability provides metrics collection backed by
// Prometheus, implementing the ports.MetricsCollector interface.
package observability

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eduxlabs/llnd-engine/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements ports.MetricsCollector on a Prometheus
// registry. Metric vectors are created lazily on first use, keyed by
// metric name and label set, so callers do not pre-declare metrics.
//
// Concurrency: safe for concurrent use; vector creation is guarded by a
// mutex and recording goes through Prometheus's own synchronization.
type PrometheusCollector struct {
	registerer prometheus.Registerer
	namespace  string

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusCollector creates a collector registering metrics under
// the given namespace. A nil registerer uses the default registry.
func NewPrometheusCollector(namespace string, registerer prometheus.Registerer) *PrometheusCollector {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &PrometheusCollector{
		registerer: registerer,
		namespace:  namespace,
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

// sanitize converts a metric name to a valid Prometheus identifier.
func sanitize(name string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name)
}

// splitLabels returns the sorted label names and their values in
// matching order. Sorting keeps the vector key stable regardless of map
// iteration order.
func splitLabels(labels map[string]string) ([]string, []string) {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]string, len(names))
	for i, name := range names {
		values[i] = labels[name]
	}
	return names, values
}

func vecKey(metric string, labelNames []string) string {
	return metric + "{" + strings.Join(labelNames, ",") + "}"
}

// RecordLatency records an operation duration in seconds on a histogram
// named after the operation.
func (c *PrometheusCollector) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	c.RecordHistogram(sanitize(operation)+"_duration_seconds", duration.Seconds(), labels)
}

// RecordCounter adds value to the named counter.
func (c *PrometheusCollector) RecordCounter(metric string, value float64, labels map[string]string) {
	metric = sanitize(metric)
	names, values := splitLabels(labels)

	c.mu.Lock()
	key := vecKey(metric, names)
	vec, ok := c.counters[key]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      metric,
		}, names)
		c.registerer.MustRegister(vec)
		c.counters[key] = vec
	}
	c.mu.Unlock()

	vec.WithLabelValues(values...).Add(value)
}

// RecordGauge sets the named gauge to value.
func (c *PrometheusCollector) RecordGauge(metric string, value float64, labels map[string]string) {
	metric = sanitize(metric)
	names, values := splitLabels(labels)

	c.mu.Lock()
	key := vecKey(metric, names)
	vec, ok := c.gauges[key]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      metric,
		}, names)
		c.registerer.MustRegister(vec)
		c.gauges[key] = vec
	}
	c.mu.Unlock()

	vec.WithLabelValues(values...).Set(value)
}

// RecordHistogram observes value on the named histogram with default
// buckets.
func (c *PrometheusCollector) RecordHistogram(metric string, value float64, labels map[string]string) {
	metric = sanitize(metric)
	names, values := splitLabels(labels)

	c.mu.Lock()
	key := vecKey(metric, names)
	vec, ok := c.histograms[key]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      metric,
			Buckets:   prometheus.DefBuckets,
		}, names)
		c.registerer.MustRegister(vec)
		c.histograms[key] = vec
	}
	c.mu.Unlock()

	vec.WithLabelValues(values...).Observe(value)
}
