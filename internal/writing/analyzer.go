package writing

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// extendedScaleFactor weights the extended task's raw total in composite
// scoring.
const extendedScaleFactor = 1.5

// DefaultIntegrityPolicy returns the standard integrity thresholds:
// similarity above 10% is noted, above 25% forces review, and confidence
// below 65 forces review.
func DefaultIntegrityPolicy() domain.IntegrityPolicy {
	return domain.IntegrityPolicy{
		SimilarityReviewThreshold: 10,
		SimilarityHighThreshold:   25,
		LowConfidenceThreshold:    65,
	}
}

// Analyzer runs the writing pipeline. The external rubric collaborator
// is optional: without one, results carry deterministic scores with an
// availability flag and reduced confidence.
//
// Concurrency: Analyzer is stateless after construction and safe for
// concurrent use.
type Analyzer struct {
	rubric  ports.RubricScorer
	policy  domain.IntegrityPolicy
	tracer  trace.Tracer
	metrics ports.MetricsCollector
}

// AnalyzerOption configures optional Analyzer collaborators.
type AnalyzerOption func(*Analyzer)

// WithRubricScorer attaches the external rubric collaborator.
func WithRubricScorer(r ports.RubricScorer) AnalyzerOption {
	return func(a *Analyzer) { a.rubric = r }
}

// WithIntegrityPolicy overrides the default integrity thresholds.
func WithIntegrityPolicy(p domain.IntegrityPolicy) AnalyzerOption {
	return func(a *Analyzer) { a.policy = p }
}

// WithMetrics attaches a metrics collector to the analyzer.
func WithMetrics(m ports.MetricsCollector) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// NewAnalyzer creates a writing analyzer with the default integrity
// policy.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		policy: DefaultIntegrityPolicy(),
		tracer: otel.Tracer("writing-analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunRuleLayers executes layers 1 and 2 only: structural compliance and
// deterministic metrics plus rule scores. Exposed separately so callers
// can obtain the deterministic baseline without the external verdict.
func RunRuleLayers(submission domain.WritingSubmission, prompt domain.WritingPromptContext) (domain.WritingDomainScores, domain.RuleMetrics) {
	metrics := ComputeMetrics(submission.Text)

	structural := checkStructural(
		submission.Text,
		submission.TaskType,
		metrics.WordCount,
		metrics.ParagraphCount,
		prompt.Requirements(),
	)
	metrics.PromptCoverage = structural.coverage
	metrics.StructuralPass = structural.pass
	metrics.StructuralNotes = structural.notes

	return ScoreFromRules(metrics, submission.TaskType), metrics
}

// Analyze runs the full five-layer pipeline on one submission. A rubric
// collaborator failure is downgraded to a deterministic-only result, not
// an error; only an empty submission fails the call.
func (a *Analyzer) Analyze(ctx context.Context, submission domain.WritingSubmission, prompt domain.WritingPromptContext, integrity domain.IntegritySignals) (domain.WritingScoringResult, error) {
	ctx, span := a.tracer.Start(ctx, "Analyzer.Analyze",
		trace.WithAttributes(
			attribute.String("submission.id", submission.SubmissionID),
			attribute.String("submission.task_type", string(submission.TaskType)),
		),
	)
	defer span.End()

	if strings.TrimSpace(submission.Text) == "" {
		span.RecordError(domain.ErrEmptySubmission)
		return domain.WritingScoringResult{}, domain.ErrEmptySubmission
	}

	start := time.Now()

	ruleScores, metrics := RunRuleLayers(submission, prompt)

	// Layer 3: external rubric verdict, advisory and optional.
	var external *domain.WritingDomainScores
	var justifications map[string]string
	var bandFromRubric string
	if a.rubric != nil {
		assessment, err := a.rubric.ScoreWriting(ctx, ports.RubricRequest{
			Submission: submission,
			Prompt:     prompt,
			RuleScores: ruleScores,
			Metrics:    metrics,
		})
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.Bool("rubric.unavailable", true))
		} else {
			scores := assessment.Scores
			external = &scores
			justifications = assessment.Justifications
			bandFromRubric = assessment.BandEstimate
		}
	}

	// Layer 4: reconciliation.
	finalScores, divergenceFlags := Reconcile(ruleScores, external)
	flags := append(append([]string{}, integrity.ExistingFlags...), divergenceFlags...)

	rawTotal := finalScores.RawTotal()
	scaledTotal := float64(rawTotal)
	if submission.TaskType == domain.TaskExtended {
		scaledTotal = float64(rawTotal) * extendedScaleFactor
	}

	// Layer 5: confidence and review routing. Confidence is computed
	// before the similarity and low-confidence flags are appended, so
	// those flags do not feed back into the score that raised them.
	confidence := ComputeConfidence(ruleScores, external, integrity, flags)

	needsReview := false
	reviewReason := ""
	for _, f := range divergenceFlags {
		if strings.Contains(f, "DIVERGENCE") {
			needsReview = true
			reviewReason = "flagged"
			break
		}
	}
	if integrity.SimilarityPercent > a.policy.SimilarityHighThreshold {
		needsReview = true
		reviewReason = "flagged"
		flags = append(flags, flagSimilarityHigh)
	} else if integrity.SimilarityPercent > a.policy.SimilarityReviewThreshold {
		flags = append(flags, flagSimilarityReview)
	}
	if confidence < a.policy.LowConfidenceThreshold {
		needsReview = true
		if reviewReason == "" {
			reviewReason = "flagged"
		}
		flags = append(flags, flagLowConfidence)
	}

	band := EstimateBand(rawTotal)
	if bandFromRubric != "" && external != nil {
		// The rubric's own band estimate is advisory; the raw total
		// remains authoritative for downstream mapping.
		span.SetAttributes(attribute.String("rubric.band_estimate", bandFromRubric))
	}

	result := domain.WritingScoringResult{
		RuleScores:     ruleScores,
		RuleMetrics:    metrics,
		ExternalScores: external,
		Justifications: justifications,
		FinalScores:    finalScores,
		RawTotal:       rawTotal,
		ScaledTotal:    scaledTotal,
		BandEstimate:   band,
		ACSFEstimate:   EstimateACSF(rawTotal),
		Confidence:     confidence,
		Flags:          flags,
		NeedsReview:    needsReview,
		ReviewReason:   reviewReason,
	}

	span.SetAttributes(
		attribute.Int("writing.raw_total", rawTotal),
		attribute.Int("writing.confidence", confidence),
		attribute.Bool("writing.needs_review", needsReview),
	)

	if a.metrics != nil {
		labels := map[string]string{"task_type": string(submission.TaskType)}
		a.recordMetrics(labels, confidence, needsReview, start)
	}

	return result, nil
}

func (a *Analyzer) recordMetrics(labels map[string]string, confidence int, needsReview bool, start time.Time) {
	a.metrics.RecordLatency("writing.analyze", time.Since(start), labels)
	a.metrics.RecordGauge("writing_confidence", float64(confidence), labels)
	if needsReview {
		a.metrics.RecordCounter("writing_reviews_total", 1, labels)
	}
}
