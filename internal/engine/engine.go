// Package engine implements the deterministic scoring pipeline: item
// grading, domain aggregation, ACSF band inference, classification, and
// the configurable override ladder. The pipeline is a pure function of
// its inputs; identical (config, questions, responses) always produce an
// identical result.
package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// Engine scores assessment attempts against a benchmark configuration.
//
// Concurrency: Engine is stateless and safe for concurrent use. Multiple
// goroutines can call Score simultaneously without synchronization.
//
// Observability: emits an OpenTelemetry span per scoring run and, when a
// metrics collector is configured, records run counts and latency.
type Engine struct {
	tracer  trace.Tracer
	metrics ports.MetricsCollector
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithMetrics attaches a metrics collector to the engine.
func WithMetrics(m ports.MetricsCollector) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates a scoring engine.
func New(opts ...Option) *Engine {
	e := &Engine{tracer: otel.Tracer("scoring-engine")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score grades an attempt end to end: items, domains, weighted total,
// classification, overrides, and risk flags. The returned result embeds
// the config version so the run can be reproduced later from stored
// inputs.
//
// The context is used for tracing only; scoring itself performs no I/O.
func (e *Engine) Score(ctx context.Context, cfg domain.BenchmarkConfig, questions []domain.Question, responses []domain.Response) (domain.ScoringResult, error) {
	_, span := e.tracer.Start(ctx, "Engine.Score",
		trace.WithAttributes(
			attribute.String("benchmark.level", cfg.Level),
			attribute.String("benchmark.version", cfg.Version),
			attribute.Int("questions.count", len(questions)),
			attribute.Int("responses.count", len(responses)),
		),
	)
	defer span.End()

	start := time.Now()

	items, err := ScoreItems(questions, responses, &cfg)
	if err != nil {
		span.RecordError(err)
		return domain.ScoringResult{}, err
	}

	domainScores := AggregateDomains(items, &cfg)
	total := WeightedTotal(domainScores, cfg.Weights)

	base := ClassifyPercent(total, cfg.Thresholds)
	outcome, triggered, reason := ApplyOverrides(domainScores, base, &cfg)
	flags := CollectRiskFlags(domainScores, cfg.RiskThresholds)

	result := domain.ScoringResult{
		TotalScore:        total,
		OverallOutcome:    outcome,
		OverallLabel:      OutcomeLabel(cfg.Level, outcome),
		OverrideTriggered: triggered,
		OverrideReason:    reason,
		RiskFlags:         flags,
		DomainScores:      domainScores,
		ItemScores:        items,
		ConfigVersion:     cfg.Version,
	}

	span.SetAttributes(
		attribute.Float64("score.total", total),
		attribute.String("score.outcome", string(outcome)),
		attribute.Bool("score.override_triggered", triggered),
		attribute.Int("score.risk_flags", len(flags)),
	)

	if e.metrics != nil {
		labels := map[string]string{"level": cfg.Level, "outcome": string(outcome)}
		e.metrics.RecordCounter("scoring_runs_total", 1, labels)
		e.metrics.RecordLatency("engine.score", time.Since(start), labels)
		e.metrics.RecordHistogram("scoring_total_score", total, map[string]string{"level": cfg.Level})
	}

	return result, nil
}
