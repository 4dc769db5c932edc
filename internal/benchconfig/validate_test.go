package benchconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// failReason runs the validation and returns the rejection reason,
// failing the test when the config unexpectedly passes.
func failReason(t *testing.T, err error) string {
	t.Helper()
	var validationErr *domain.ConfigValidationError
	require.ErrorAs(t, err, &validationErr)
	return validationErr.Reason
}

// TestValidateBenchmark covers the snapshot invariants beyond struct
// tags: weight sum, threshold ordering, and rule well-formedness.
func TestValidateBenchmark(t *testing.T) {
	t.Run("valid snapshot passes", func(t *testing.T) {
		cfg := validBenchmark("5")
		assert.NoError(t, ValidateBenchmark(&cfg))
	})

	t.Run("missing required field fails struct validation", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.ConfigID = ""
		assert.Error(t, ValidateBenchmark(&cfg))
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.Weights[domain.DomainReading] = 0.5
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "domain weights sum to")
	})

	t.Run("tier thresholds must descend", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.Thresholds = domain.TierThresholds{Strong: 60, Meets: 65, Monitor: 50}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "tier thresholds not ordered")
	})

	t.Run("OR rule needs domain thresholds", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.OverrideRules.AutoSupport = []domain.AutoSupportRule{{Condition: domain.CondOR}}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "OR rule has no domain thresholds")
	})

	t.Run("SINGLE rule needs exactly one threshold", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.OverrideRules.AutoSupport = []domain.AutoSupportRule{{
			Condition: domain.CondSingle,
			Rules: []domain.DomainThreshold{
				{Domain: domain.DomainReading, Threshold: 60},
				{Domain: domain.DomainWriting, Threshold: 60},
			},
		}}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "SINGLE rule needs exactly one")
	})

	t.Run("ANY_2_CORE rule needs two core domains", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.OverrideRules.AutoSupport = []domain.AutoSupportRule{{
			Condition:   domain.CondAny2Core,
			CoreDomains: []domain.SkillDomain{domain.DomainReading},
			Threshold:   50,
		}}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "at least two core domains")
	})

	t.Run("single_below cap needs a domain", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.OverrideRules.MonitorCap = []domain.MonitorCapRule{{Condition: domain.CapSingleBelow, Threshold: 60}}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "single_below rule has no domain")
	})

	t.Run("multi_below cap needs a positive count", func(t *testing.T) {
		cfg := validBenchmark("5")
		cfg.OverrideRules.MonitorCap = []domain.MonitorCapRule{{Condition: domain.CapMultiBelow, Threshold: 60}}
		reason := failReason(t, ValidateBenchmark(&cfg))
		assert.Contains(t, reason, "multi_below rule needs a positive count")
	})
}

// TestCheckCutoffs covers table exhaustiveness: no inverted rows, no
// overlaps, no gaps.
func TestCheckCutoffs(t *testing.T) {
	tests := []struct {
		name    string
		rows    []domain.BandCutoff
		wantErr string
	}{
		{
			name: "contiguous table passes",
			rows: []domain.BandCutoff{
				{Min: 0, Max: 39.5, Band: domain.BandA2},
				{Min: 40, Max: 100, Band: domain.BandB1},
			},
		},
		{
			name: "unsorted input is tolerated",
			rows: []domain.BandCutoff{
				{Min: 40, Max: 100, Band: domain.BandB1},
				{Min: 0, Max: 39.5, Band: domain.BandA2},
			},
		},
		{
			name:    "empty table fails",
			rows:    nil,
			wantErr: "is empty",
		},
		{
			name: "inverted row fails",
			rows: []domain.BandCutoff{
				{Min: 40, Max: 30, Band: domain.BandA2},
			},
			wantErr: "below min",
		},
		{
			name: "overlapping rows fail",
			rows: []domain.BandCutoff{
				{Min: 0, Max: 40, Band: domain.BandA2},
				{Min: 40, Max: 100, Band: domain.BandB1},
			},
			wantErr: "overlap",
		},
		{
			name: "gap wider than one point fails",
			rows: []domain.BandCutoff{
				{Min: 0, Max: 38, Band: domain.BandA2},
				{Min: 40, Max: 100, Band: domain.BandB1},
			},
			wantErr: "gap between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCutoffs(tt.rows, "overall_cutoffs")
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestValidatePlacement verifies every table is checked and the
// equivalent map covers all four bands.
func TestValidatePlacement(t *testing.T) {
	valid := func() domain.PlacementConfig {
		store, err := NewStore()
		require.NoError(t, err)
		cfg, err := store.Placement(context.Background())
		require.NoError(t, err)
		return cfg
	}

	t.Run("embedded fallback passes", func(t *testing.T) {
		cfg := valid()
		assert.NoError(t, ValidatePlacement(&cfg))
	})

	t.Run("bad reading table is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.ReadingCutoffs = []domain.BandCutoff{
			{Min: 0, Max: 10, Band: domain.BandA2},
			{Min: 15, Max: 30, Band: domain.BandB1},
		}
		reason := failReason(t, ValidatePlacement(&cfg))
		assert.Contains(t, reason, "reading_cutoffs")
	})

	t.Run("bad acsf map is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.WritingACSFMap = []domain.ACSFCutoff{
			{Min: 0, Max: 20, Band: 2},
			{Min: 18, Max: 40, Band: 3},
		}
		reason := failReason(t, ValidatePlacement(&cfg))
		assert.Contains(t, reason, "writing_acsf_map")
	})

	t.Run("equivalent table must cover all bands", func(t *testing.T) {
		cfg := valid()
		delete(cfg.EquivalentTable, domain.BandC1)
		reason := failReason(t, ValidatePlacement(&cfg))
		assert.Contains(t, reason, "equivalent_table missing band C1")
	})
}

// TestValidateCourseRules verifies version and amber-type checks.
func TestValidateCourseRules(t *testing.T) {
	valid := func() domain.CourseRuleSet {
		store, err := NewStore()
		require.NoError(t, err)
		rs, err := store.CourseRules(context.Background())
		require.NoError(t, err)
		return rs
	}

	t.Run("embedded fallback passes", func(t *testing.T) {
		rs := valid()
		assert.NoError(t, ValidateCourseRules(&rs))
	})

	t.Run("missing version fails", func(t *testing.T) {
		rs := valid()
		rs.Version = ""
		assert.Error(t, ValidateCourseRules(&rs))
	})

	t.Run("unknown amber condition type fails", func(t *testing.T) {
		rs := valid()
		rs.Rules[0].Logic.AmberConditions = []domain.AmberCondition{{Type: "close_enough"}}
		reason := failReason(t, ValidateCourseRules(&rs))
		assert.Contains(t, reason, `unknown amber condition type "close_enough"`)
	})
}
