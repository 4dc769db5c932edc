package domain

// Outcome is a level-independent classification code. The human-readable
// label varies by proficiency level; the codes do not.
type Outcome string

// Classification outcome codes, ordered from best to worst.
const (
	OutcomeExceeds         Outcome = "exceeds"
	OutcomeMeets           Outcome = "meets"
	OutcomeMonitor         Outcome = "monitor"
	OutcomeSupportRequired Outcome = "support_required"
)

// outcomeRank orders outcomes so that cap rules can compare them.
// Higher rank is better.
var outcomeRank = map[Outcome]int{
	OutcomeSupportRequired: 0,
	OutcomeMonitor:         1,
	OutcomeMeets:           2,
	OutcomeExceeds:         3,
}

// Rank returns the ordering position of the outcome, higher being better.
// Unknown outcomes rank below support_required.
func (o Outcome) Rank() int {
	rank, ok := outcomeRank[o]
	if !ok {
		return -1
	}
	return rank
}

// RanksAbove reports whether o is a strictly better outcome than other.
func (o Outcome) RanksAbove(other Outcome) bool { return o.Rank() > other.Rank() }

// ItemScore is the graded result for a single question. It echoes the
// originating question's domain, level, and difficulty so aggregation can
// partition items without re-joining against the question set.
// ItemScores are recomputed every run and never persisted by the engine.
type ItemScore struct {
	QuestionID   string        `json:"question_id"`
	Domain       SkillDomain   `json:"domain"`
	Level        int           `json:"level"`
	Difficulty   DifficultyTag `json:"difficulty"`
	ResponseType ResponseType  `json:"response_type"`
	ScoreAwarded float64       `json:"score_awarded"`
	MaxScore     float64       `json:"max_score"`
	IsCorrect    bool          `json:"is_correct"`
}

// SubBandPercents breaks a domain's performance down by sub-level and
// difficulty partition. These three percentages drive ACSF band inference.
type SubBandPercents struct {
	// ACSF2Percent is performance on level-2 items.
	ACSF2Percent float64 `json:"acsf2_percent"`

	// ACSF3CorePercent is performance on level-3 core items.
	ACSF3CorePercent float64 `json:"acsf3_core_percent"`

	// ACSF3StretchPercent is performance on level-3 stretch items.
	ACSF3StretchPercent float64 `json:"acsf3_stretch_percent"`
}

// RiskFlag is an advisory marker raised when a domain percentage falls
// below its configured risk threshold. Risk flags never change the
// classification; they exist for reporting.
type RiskFlag struct {
	// Domain is the flagged skill area.
	Domain SkillDomain `json:"domain"`

	// Threshold is the configured risk threshold that was breached.
	Threshold float64 `json:"threshold"`

	// Percentage is the domain percentage that breached it.
	Percentage float64 `json:"percentage"`

	// Delta is how far below the threshold the domain landed.
	Delta float64 `json:"delta"`

	// Detail is a short human-readable description for reports.
	Detail string `json:"detail"`
}

// DomainScore is the aggregated result for one skill domain.
// All fields are recomputed from scratch on every scoring run.
type DomainScore struct {
	Domain        SkillDomain     `json:"domain"`
	RawScore      float64         `json:"raw_score"`
	MaxScore      float64         `json:"max_score"`
	Percentage    float64         `json:"percentage"`
	Weighted      float64         `json:"weighted"`
	SubBands      SubBandPercents `json:"sub_bands"`
	EstimatedBand string          `json:"estimated_band"`
	Outcome       Outcome         `json:"outcome"`
	Justification string          `json:"justification"`
	Strategies    []string        `json:"strategies"`
}

// ScoringResult is the immutable outcome of a single scoring invocation.
// Identical (config, responses) inputs always produce an identical result,
// which is what makes reports reproducible from stored data.
type ScoringResult struct {
	// TotalScore is the weighted sum of domain percentages.
	TotalScore float64 `json:"total_score"`

	// OverallOutcome is the final classification code after overrides.
	OverallOutcome Outcome `json:"overall_outcome"`

	// OverallLabel is the level-specific label for the outcome code.
	OverallLabel string `json:"overall_label"`

	// OverrideTriggered reports whether an auto-support rule or monitor
	// cap changed the numerically derived outcome.
	OverrideTriggered bool `json:"override_triggered"`

	// OverrideReason describes the rule that fired, empty otherwise.
	OverrideReason string `json:"override_reason,omitempty"`

	// RiskFlags lists the advisory per-domain risk flags.
	RiskFlags []RiskFlag `json:"risk_flags"`

	// DomainScores holds the per-domain breakdown in canonical order.
	DomainScores []DomainScore `json:"domain_scores"`

	// ItemScores holds the per-question breakdown in question-set order.
	ItemScores []ItemScore `json:"item_scores"`

	// ConfigVersion tags the benchmark configuration used, so the exact
	// run can be reproduced later.
	ConfigVersion string `json:"config_version"`
}
