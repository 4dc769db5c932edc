// Package ports defines the interfaces through which the scoring engine
// talks to infrastructure: benchmark configuration storage, the external
// rubric collaborator, and metrics collection. Implementations live
// under infrastructure/.
package ports

import (
	"context"
	"time"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// ConfigStore resolves versioned benchmark and placement configuration
// snapshots. Implementations could read from a database, a config
// service, or embedded fallback files; the engine only sees immutable
// snapshots.
type ConfigStore interface {
	// ActiveBenchmark returns the active benchmark configuration for a
	// proficiency level. The boolean reports whether the returned config
	// came from the primary source (true) or a built-in fallback (false).
	// It returns domain.ErrConfigNotFound when neither exists.
	ActiveBenchmark(ctx context.Context, level string) (domain.BenchmarkConfig, bool, error)

	// Placement returns the active placement configuration: cutoff
	// tables, equivalent-score mapping, and integrity policy.
	Placement(ctx context.Context) (domain.PlacementConfig, error)

	// CourseRules returns the versioned course-suitability rule set for
	// the traffic-light evaluator.
	CourseRules(ctx context.Context) (domain.CourseRuleSet, error)
}

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus, OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like scoring runs, review
	// flags, errors, etc.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	// This is useful for tracking values like the confidence of the most
	// recent writing assessment.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like composite scores or
	// stage latencies.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
