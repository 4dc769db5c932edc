package writing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// TestScoreTaskAchievementFunctional exercises the functional-task band
// ladder, including the structural-failure cap.
func TestScoreTaskAchievementFunctional(t *testing.T) {
	tests := []struct {
		name string
		m    domain.RuleMetrics
		want int
	}{
		{
			name: "near-empty scores zero",
			m:    domain.RuleMetrics{WordCount: 20, StructuralPass: false},
			want: 0,
		},
		{
			name: "under hard floor scores one",
			m:    domain.RuleMetrics{WordCount: 60, StructuralPass: false},
			want: 1,
		},
		{
			name: "failed structure with low coverage scores one",
			m:    domain.RuleMetrics{WordCount: 90, PromptCoverage: 1, StructuralPass: false},
			want: 1,
		},
		{
			name: "one requirement covered scores two",
			m:    domain.RuleMetrics{WordCount: 120, PromptCoverage: 1, StructuralPass: true},
			want: 2,
		},
		{
			name: "two requirements covered scores three",
			m:    domain.RuleMetrics{WordCount: 120, PromptCoverage: 2, StructuralPass: true},
			want: 3,
		},
		{
			name: "full coverage in target range scores five",
			m:    domain.RuleMetrics{WordCount: 135, PromptCoverage: 3, StructuralPass: true},
			want: 5,
		},
		{
			name: "full coverage near target range scores four",
			m:    domain.RuleMetrics{WordCount: 165, PromptCoverage: 3, StructuralPass: true},
			want: 4,
		},
		{
			name: "full coverage far over length falls back to three",
			m:    domain.RuleMetrics{WordCount: 200, PromptCoverage: 3, StructuralPass: true},
			want: 3,
		},
		{
			name: "structural failure caps a good band at two",
			m:    domain.RuleMetrics{WordCount: 100, PromptCoverage: 2, StructuralPass: false},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreTaskAchievement(tt.m, domain.TaskFunctional))
		})
	}
}

// TestScoreTaskAchievementExtended exercises the extended-task ladder.
func TestScoreTaskAchievementExtended(t *testing.T) {
	tests := []struct {
		name string
		m    domain.RuleMetrics
		want int
	}{
		{
			name: "too short scores one",
			m:    domain.RuleMetrics{WordCount: 120, ParagraphCount: 3},
			want: 1,
		},
		{
			name: "single paragraph scores one",
			m:    domain.RuleMetrics{WordCount: 260, ParagraphCount: 1},
			want: 1,
		},
		{
			name: "no discourse moves scores two",
			m:    domain.RuleMetrics{WordCount: 260, ParagraphCount: 3, PromptCoverage: 0},
			want: 2,
		},
		{
			name: "one move scores three",
			m:    domain.RuleMetrics{WordCount: 260, ParagraphCount: 3, PromptCoverage: 1},
			want: 3,
		},
		{
			name: "two moves scores four",
			m:    domain.RuleMetrics{WordCount: 260, ParagraphCount: 3, PromptCoverage: 2},
			want: 4,
		},
		{
			name: "all three moves scores five",
			m:    domain.RuleMetrics{WordCount: 260, ParagraphCount: 3, PromptCoverage: 3},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreTaskAchievement(tt.m, domain.TaskExtended))
		})
	}
}

// TestScoreCoherence exercises the paragraph/connector bands, including
// the mixed cases that fall through to the default.
func TestScoreCoherence(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs int
		connectors int
		want       int
	}{
		{name: "single block", paragraphs: 1, connectors: 6, want: 1},
		{name: "two paragraphs no connectors", paragraphs: 2, connectors: 1, want: 2},
		{name: "two paragraphs some connectors", paragraphs: 2, connectors: 3, want: 3},
		{name: "three paragraphs moderate connectors", paragraphs: 3, connectors: 5, want: 4},
		{name: "three paragraphs rich connectors", paragraphs: 3, connectors: 9, want: 5},
		{name: "three paragraphs few connectors falls through", paragraphs: 3, connectors: 1, want: 3},
		{name: "two paragraphs many connectors stays moderate", paragraphs: 2, connectors: 8, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.RuleMetrics{ParagraphCount: tt.paragraphs, ConnectorCount: tt.connectors}
			assert.Equal(t, tt.want, scoreCoherence(m))
		})
	}
}

// TestScoreLexical exercises the vocabulary bands.
func TestScoreLexical(t *testing.T) {
	tests := []struct {
		name string
		ttr  float64
		rep  float64
		want int
	}{
		{name: "very narrow vocabulary", ttr: 0.30, rep: 0.40, want: 1},
		{name: "heavy repetition", ttr: 0.50, rep: 0.60, want: 1},
		{name: "narrow and repetitive", ttr: 0.36, rep: 0.48, want: 2},
		{name: "modest range", ttr: 0.42, rep: 0.40, want: 3},
		{name: "good range", ttr: 0.50, rep: 0.30, want: 4},
		{name: "wide and varied", ttr: 0.60, rep: 0.10, want: 5},
		{name: "mixed signals default to three", ttr: 0.48, rep: 0.20, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.RuleMetrics{TypeTokenRatio: tt.ttr, RepetitionIndex: tt.rep}
			assert.Equal(t, tt.want, scoreLexical(m))
		})
	}
}

// TestScoreGrammar exercises the error-rate bands and the subordination
// nudges in both directions.
func TestScoreGrammar(t *testing.T) {
	tests := []struct {
		name      string
		errorRate float64
		complex   float64
		want      int
	}{
		{name: "error-ridden", errorRate: 20, complex: 0.3, want: 1},
		{name: "frequent errors", errorRate: 12, complex: 0.3, want: 2},
		{name: "noticeable errors", errorRate: 7, complex: 0.3, want: 3},
		{name: "occasional errors", errorRate: 4, complex: 0.2, want: 4},
		{name: "clean and varied", errorRate: 1, complex: 0.3, want: 5},
		{name: "clean but only simple sentences nudges down", errorRate: 1, complex: 0.1, want: 4},
		{name: "complex and accurate nudges up", errorRate: 4, complex: 0.4, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.RuleMetrics{ErrorRatePer100: tt.errorRate, ComplexSentenceRatio: tt.complex}
			assert.Equal(t, tt.want, scoreGrammar(m))
		})
	}
}

// TestScoreFromRulesClamps verifies every domain score stays on the 0-5
// scale.
func TestScoreFromRulesClamps(t *testing.T) {
	m := domain.RuleMetrics{
		WordCount: 135, ParagraphCount: 3, ConnectorCount: 9,
		PromptCoverage: 3, StructuralPass: true,
		TypeTokenRatio: 0.6, RepetitionIndex: 0.1,
		ErrorRatePer100: 0, ComplexSentenceRatio: 0.4,
	}
	scores := ScoreFromRules(m, domain.TaskFunctional)

	for _, name := range domain.WritingDomainNames {
		v := scores.ByName(name)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 5)
	}
	assert.Equal(t, 5, scores.TaskAchievement)
	assert.Equal(t, 5, scores.CoherenceCohesion)
	assert.Equal(t, 5, scores.LexicalResource)
	assert.Equal(t, 5, scores.GrammarRangeAccuracy)
}
