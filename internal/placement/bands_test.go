package placement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// testPlacementConfig mirrors the shipped tables: overall 0-100, reading
// 0-30, writing 0-40, with boundaries on the half-point grid.
func testPlacementConfig() domain.PlacementConfig {
	return domain.PlacementConfig{
		Version:           "placement-test-v1",
		SkillFloorEnabled: true,
		OverallCutoffs: []domain.BandCutoff{
			{Min: 0, Max: 39.5, Band: domain.BandA2},
			{Min: 40, Max: 64.5, Band: domain.BandB1},
			{Min: 65, Max: 84.5, Band: domain.BandB2},
			{Min: 85, Max: 100, Band: domain.BandC1},
		},
		ReadingCutoffs: []domain.BandCutoff{
			{Min: 0, Max: 11, Band: domain.BandA2},
			{Min: 12, Max: 18, Band: domain.BandB1},
			{Min: 19, Max: 25.5, Band: domain.BandB2},
			{Min: 26, Max: 30, Band: domain.BandC1},
		},
		WritingCutoffs: []domain.BandCutoff{
			{Min: 0, Max: 12, Band: domain.BandA2},
			{Min: 13, Max: 20, Band: domain.BandB1},
			{Min: 21, Max: 28, Band: domain.BandB2},
			{Min: 29, Max: 40, Band: domain.BandC1},
		},
		EquivalentTable: map[string]domain.EquivalentRange{
			domain.BandA2: {Low: "3.5", Mid: "4.0", High: "4.5"},
			domain.BandB1: {Low: "4.5", Mid: "5.0", High: "5.5"},
			domain.BandB2: {Low: "5.5", Mid: "6.0", High: "6.5"},
			domain.BandC1: {Low: "6.5", Mid: "7.0", High: "7.5+"},
		},
		ReadingACSFMap: []domain.ACSFCutoff{
			{Min: 0, Max: 11, Band: 2},
			{Min: 12, Max: 18, Band: 3},
			{Min: 19, Max: 25.5, Band: 4},
			{Min: 26, Max: 30, Band: 5},
		},
		WritingACSFMap: []domain.ACSFCutoff{
			{Min: 0, Max: 12, Band: 2},
			{Min: 13, Max: 20, Band: 3},
			{Min: 21, Max: 28, Band: 4},
			{Min: 29, Max: 40, Band: 5},
		},
		Integrity: domain.IntegrityPolicy{
			SimilarityReviewThreshold: 10,
			SimilarityHighThreshold:   25,
			LowConfidenceThreshold:    65,
		},
	}
}

func writingScores(ta, cc, lr, gra int) domain.WritingDomainScores {
	return domain.WritingDomainScores{
		TaskAchievement:      ta,
		CoherenceCohesion:    cc,
		LexicalResource:      lr,
		GrammarRangeAccuracy: gra,
	}
}

// TestMapperScoreSectionWeights verifies the composite arithmetic:
// grammar raw, reading 1.5x, task one raw, task two 1.5x.
func TestMapperScoreSectionWeights(t *testing.T) {
	m := NewMapper(testPlacementConfig())

	input := domain.PlacementInput{
		GrammarCorrect: 10,
		ReadingCorrect: 10,
		Task1:          writingScores(3, 3, 3, 3),
		Task2:          writingScores(2, 2, 2, 2),
	}

	result, err := m.Score(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.GrammarScore)
	assert.Equal(t, 15.0, result.ReadingScore)
	assert.Equal(t, 12.0, result.WritingTask1Score)
	assert.Equal(t, 12.0, result.WritingTask2Score)
	assert.Equal(t, 20.0, result.WritingRawTotal)
	assert.Equal(t, 49.0, result.CompositeScore)

	assert.Equal(t, domain.BandB1, result.OverallPreFloor)
	assert.Equal(t, domain.BandB1, result.ReadingBand)
	assert.Equal(t, domain.BandB1, result.WritingBand)
	assert.False(t, result.SkillFloorApplied)
	assert.Equal(t, domain.BandB1, result.OverallFinal)

	assert.Equal(t, 3, result.ReadingACSF)
	assert.Equal(t, 3, result.WritingACSF)
}

// TestMapperScoreSkillFloor verifies a weak single skill caps the
// overall band with a named reason.
func TestMapperScoreSkillFloor(t *testing.T) {
	m := NewMapper(testPlacementConfig())

	// Composite 65.5 lands in B2 but reading (9 correct = 13.5) is B1.
	input := domain.PlacementInput{
		GrammarCorrect: 18,
		ReadingCorrect: 9,
		Task1:          writingScores(4, 4, 4, 4),
		Task2:          writingScores(3, 3, 3, 3),
	}

	result, err := m.Score(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.BandB2, result.OverallPreFloor)
	assert.Equal(t, domain.BandB1, result.ReadingBand)
	assert.True(t, result.SkillFloorApplied)
	assert.Equal(t, domain.BandB1, result.OverallFinal)
	assert.Equal(t, "Capped by Reading", result.SkillFloorReason)
}

// TestMapperScoreSkillFloorBothSkills verifies the reason names both
// capping skills.
func TestMapperScoreSkillFloorBothSkills(t *testing.T) {
	m := NewMapper(testPlacementConfig())

	// Composite 68 is B2; reading 18 and writing 20 are both B1.
	input := domain.PlacementInput{
		GrammarCorrect: 20,
		ReadingCorrect: 12,
		Task1:          writingScores(0, 0, 0, 0),
		Task2:          writingScores(5, 5, 5, 5),
	}

	result, err := m.Score(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.BandB2, result.OverallPreFloor)
	require.True(t, result.SkillFloorApplied)
	assert.Equal(t, domain.BandB1, result.OverallFinal)
	assert.Equal(t, "Capped by Reading and Writing", result.SkillFloorReason)
}

// TestMapperScoreSkillFloorDisabled verifies the floor can be switched
// off by configuration.
func TestMapperScoreSkillFloorDisabled(t *testing.T) {
	cfg := testPlacementConfig()
	cfg.SkillFloorEnabled = false
	m := NewMapper(cfg)

	input := domain.PlacementInput{
		GrammarCorrect: 18,
		ReadingCorrect: 9,
		Task1:          writingScores(4, 4, 4, 4),
		Task2:          writingScores(3, 3, 3, 3),
	}

	result, err := m.Score(context.Background(), input)
	require.NoError(t, err)

	assert.False(t, result.SkillFloorApplied)
	assert.Equal(t, result.OverallPreFloor, result.OverallFinal)
}

// TestMapperScoreEquivalentPosition verifies the low/mid/high selection
// inside the band's range.
func TestMapperScoreEquivalentPosition(t *testing.T) {
	m := NewMapper(testPlacementConfig())

	tests := []struct {
		name  string
		input domain.PlacementInput
		want  string
	}{
		{
			// Composite 45, low in the B1 row.
			name: "low in band",
			input: domain.PlacementInput{
				GrammarCorrect: 12, ReadingCorrect: 10,
				Task1: writingScores(3, 3, 3, 3), Task2: writingScores(1, 1, 1, 1),
			},
			want: "4.5",
		},
		{
			// Composite 51, mid in the B1 row.
			name: "mid in band",
			input: domain.PlacementInput{
				GrammarCorrect: 18, ReadingCorrect: 10,
				Task1: writingScores(3, 3, 3, 3), Task2: writingScores(1, 1, 1, 1),
			},
			want: "5.0",
		},
		{
			// Composite 62, high in the B1 row; the writing skill is B2
			// but the floored final band stays B1.
			name: "high in band",
			input: domain.PlacementInput{
				GrammarCorrect: 15, ReadingCorrect: 10,
				Task1: writingScores(5, 5, 5, 5), Task2: writingScores(2, 2, 2, 2),
			},
			want: "5.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := m.Score(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, domain.BandB1, result.OverallFinal)
			assert.Equal(t, tt.want, result.EquivalentScore)
		})
	}
}

// TestMapperScoreAuditTrail verifies every pipeline decision is logged.
func TestMapperScoreAuditTrail(t *testing.T) {
	m := NewMapper(testPlacementConfig())

	result, err := m.Score(context.Background(), domain.PlacementInput{
		GrammarCorrect: 10, ReadingCorrect: 10,
		Task1: writingScores(3, 3, 3, 3), Task2: writingScores(2, 2, 2, 2),
	})
	require.NoError(t, err)

	steps := make([]string, 0, len(result.Audit))
	for _, s := range result.Audit {
		steps = append(steps, s.Step)
	}
	assert.Equal(t, []string{"section_scores", "bands_pre_floor", "skill_floor", "equivalent_score", "acsf"}, steps)
}

// TestMapperScoreLookupMiss verifies a gap in a cutoff table surfaces as
// a BandLookupError naming the table.
func TestMapperScoreLookupMiss(t *testing.T) {
	cfg := testPlacementConfig()
	cfg.ReadingCutoffs = []domain.BandCutoff{{Min: 0, Max: 10, Band: domain.BandA2}}
	m := NewMapper(cfg)

	_, err := m.Score(context.Background(), domain.PlacementInput{ReadingCorrect: 20})
	require.Error(t, err)

	var lookupErr *domain.BandLookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "reading_cutoffs", lookupErr.Table)
	assert.Equal(t, 30.0, lookupErr.Score)
}

// TestBandTablesExhaustive sweeps every achievable score against the
// shipped-shape tables so no input can miss a row. Reading steps by 1.5
// per correct item; composites step by halves.
func TestBandTablesExhaustive(t *testing.T) {
	cfg := testPlacementConfig()

	for correct := 0; correct <= 20; correct++ {
		score := float64(correct) * 1.5
		_, err := bandFromCutoffs(score, cfg.ReadingCutoffs, "reading_cutoffs", cfg.Version)
		assert.NoError(t, err, "reading score %.1f", score)
		_, err = acsfFromMap(score, cfg.ReadingACSFMap, "reading_acsf_map", cfg.Version)
		assert.NoError(t, err, "reading acsf %.1f", score)
	}
	for raw := 0; raw <= 40; raw++ {
		_, err := bandFromCutoffs(float64(raw), cfg.WritingCutoffs, "writing_cutoffs", cfg.Version)
		assert.NoError(t, err, "writing score %d", raw)
		_, err = acsfFromMap(float64(raw), cfg.WritingACSFMap, "writing_acsf_map", cfg.Version)
		assert.NoError(t, err, "writing acsf %d", raw)
	}
	for half := 0; half <= 200; half++ {
		score := float64(half) * 0.5
		_, err := bandFromCutoffs(score, cfg.OverallCutoffs, "overall_cutoffs", cfg.Version)
		assert.NoError(t, err, "overall score %.1f", score)
	}
}
