package writing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

func scores(ta, cc, lr, gra int) domain.WritingDomainScores {
	return domain.WritingDomainScores{
		TaskAchievement:      ta,
		CoherenceCohesion:    cc,
		LexicalResource:      lr,
		GrammarRangeAccuracy: gra,
	}
}

// TestRoundHalfUp verifies the documented tie-break.
func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 4, roundHalfUp(3.5))
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, 2, roundHalfUp(2.4))
	assert.Equal(t, 3, roundHalfUp(2.6))
	assert.Equal(t, 0, roundHalfUp(0))
}

// TestReconcileNoExternal verifies the deterministic-only path keeps the
// rule scores and flags the absence.
func TestReconcileNoExternal(t *testing.T) {
	rule := scores(3, 3, 2, 4)
	final, flags := Reconcile(rule, nil)

	assert.Equal(t, rule, final)
	assert.Equal(t, []string{"LLM_UNAVAILABLE"}, flags)
}

// TestReconcileAgreement verifies small disagreements defer to the
// external verdict without flags.
func TestReconcileAgreement(t *testing.T) {
	rule := scores(3, 3, 3, 3)
	external := scores(3, 4, 2, 3)

	final, flags := Reconcile(rule, &external)
	assert.Equal(t, external, final)
	assert.Empty(t, flags)
}

// TestReconcileModerateGap verifies a two-point gap averages with
// half-up rounding and no flag.
func TestReconcileModerateGap(t *testing.T) {
	rule := scores(2, 3, 5, 3)
	external := scores(4, 5, 3, 3)

	final, flags := Reconcile(rule, &external)
	assert.Equal(t, scores(3, 4, 4, 3), final)
	assert.Empty(t, flags)
}

// TestReconcileDivergence verifies a three-point-plus gap averages and
// raises a per-domain divergence flag.
func TestReconcileDivergence(t *testing.T) {
	rule := scores(2, 3, 3, 3)
	external := scores(5, 3, 3, 3)

	final, flags := Reconcile(rule, &external)
	assert.Equal(t, 4, final.TaskAchievement, "average of 2 and 5 rounds up")
	require.Len(t, flags, 1)
	assert.Equal(t, "RULE_LLM_DIVERGENCE_TASK_ACHIEVEMENT", flags[0])
}

// TestComputeConfidence walks the deduction table.
func TestComputeConfidence(t *testing.T) {
	agreeing := scores(3, 3, 3, 3)

	t.Run("full agreement is full confidence", func(t *testing.T) {
		external := agreeing
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{}, nil)
		assert.Equal(t, 100, c)
	})

	t.Run("missing external verdict costs twenty", func(t *testing.T) {
		c := ComputeConfidence(agreeing, nil, domain.IntegritySignals{}, nil)
		assert.Equal(t, 80, c)
	})

	t.Run("large divergence costs fifteen per domain", func(t *testing.T) {
		external := scores(0, 3, 3, 3)
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{}, nil)
		assert.Equal(t, 85, c)
	})

	t.Run("moderate divergence costs five per domain", func(t *testing.T) {
		external := scores(5, 1, 3, 3)
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{}, nil)
		assert.Equal(t, 90, c)
	})

	t.Run("similarity tiers", func(t *testing.T) {
		external := agreeing
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{SimilarityPercent: 15}, nil)
		assert.Equal(t, 90, c)
		c = ComputeConfidence(agreeing, &external, domain.IntegritySignals{SimilarityPercent: 30}, nil)
		assert.Equal(t, 80, c)
	})

	t.Run("ai probability tiers", func(t *testing.T) {
		external := agreeing
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{AIGeneratedProb: 0.6}, nil)
		assert.Equal(t, 95, c)
		c = ComputeConfidence(agreeing, &external, domain.IntegritySignals{AIGeneratedProb: 0.9}, nil)
		assert.Equal(t, 85, c)
	})

	t.Run("flags deduct", func(t *testing.T) {
		external := agreeing
		flags := []string{"RULE_LLM_DIVERGENCE_LEXICAL_RESOURCE", "TIME_ANOMALY"}
		c := ComputeConfidence(agreeing, &external, domain.IntegritySignals{}, flags)
		assert.Equal(t, 85, c)
	})

	t.Run("clamps at zero", func(t *testing.T) {
		external := scores(0, 0, 0, 0)
		rule := scores(5, 5, 5, 5)
		signals := domain.IntegritySignals{SimilarityPercent: 90, AIGeneratedProb: 0.95}
		flags := []string{
			"RULE_LLM_DIVERGENCE_TASK_ACHIEVEMENT",
			"RULE_LLM_DIVERGENCE_COHERENCE_COHESION",
			"RULE_LLM_DIVERGENCE_LEXICAL_RESOURCE",
			"RULE_LLM_DIVERGENCE_GRAMMAR_RANGE_ACCURACY",
			"TIME_ANOMALY",
		}
		c := ComputeConfidence(rule, &external, signals, flags)
		assert.Equal(t, 0, c)
	})
}

// TestEstimateBand verifies the single-task band boundaries.
func TestEstimateBand(t *testing.T) {
	tests := []struct {
		raw  int
		want string
	}{
		{raw: 0, want: domain.BandA2},
		{raw: 6, want: domain.BandA2},
		{raw: 7, want: domain.BandB1},
		{raw: 10, want: domain.BandB1},
		{raw: 11, want: domain.BandB2},
		{raw: 14, want: domain.BandB2},
		{raw: 15, want: domain.BandC1},
		{raw: 20, want: domain.BandC1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimateBand(tt.raw), "raw %d", tt.raw)
	}
}

// TestEstimateACSF verifies the indicative ACSF mapping.
func TestEstimateACSF(t *testing.T) {
	assert.Equal(t, 2, EstimateACSF(5))
	assert.Equal(t, 3, EstimateACSF(8))
	assert.Equal(t, 4, EstimateACSF(12))
	assert.Equal(t, 5, EstimateACSF(18))
}

// TestCombinedBandFromRawTotal verifies the two-task band boundaries.
func TestCombinedBandFromRawTotal(t *testing.T) {
	tests := []struct {
		raw  float64
		want string
	}{
		{raw: 12, want: domain.BandA2},
		{raw: 13, want: domain.BandB1},
		{raw: 20, want: domain.BandB1},
		{raw: 21, want: domain.BandB2},
		{raw: 28, want: domain.BandB2},
		{raw: 29, want: domain.BandC1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CombinedBandFromRawTotal(tt.raw), "raw %.0f", tt.raw)
	}
}
