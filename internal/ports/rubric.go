package ports

import (
	"context"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// RubricRequest carries one writing submission to the external rubric
// collaborator along with everything the collaborator needs to mark it.
type RubricRequest struct {
	// Submission is the candidate text and task metadata.
	Submission domain.WritingSubmission

	// Prompt is the task prompt the submission responds to.
	Prompt domain.WritingPromptContext

	// RuleScores are the deterministic baseline scores, shared with the
	// collaborator as calibration context.
	RuleScores domain.WritingDomainScores

	// Metrics are the deterministic linguistic measurements.
	Metrics domain.RuleMetrics
}

// RubricScorer is the external rubric collaborator: given a submission
// it returns four domain scores with justifications. The collaborator is
// advisory; reconciliation in the writing pipeline decides how much of
// its verdict survives. Implementations must treat a failure as
// non-fatal and return an error the pipeline can downgrade to a
// deterministic-only result.
type RubricScorer interface {
	// ScoreWriting marks one submission against the analytic rubric.
	ScoreWriting(ctx context.Context, req RubricRequest) (domain.RubricAssessment, error)

	// Model returns the collaborator model identifier, for audit logs.
	Model() string
}
