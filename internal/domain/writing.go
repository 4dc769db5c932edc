package domain

// TaskType distinguishes the two writing task shapes, which carry
// different structural requirements and composite weights.
type TaskType string

const (
	// TaskFunctional is the short functional writing task
	// (target 120-150 words against named prompt requirements).
	TaskFunctional TaskType = "functional"

	// TaskExtended is the extended argumentative task (~250 words).
	// Its totals are weighted 1.5x in the composite score.
	TaskExtended TaskType = "extended"
)

// WritingSubmission is one candidate writing sample entering the
// five-layer analysis pipeline.
type WritingSubmission struct {
	SubmissionID string   `yaml:"submission_id" json:"submission_id"`
	AssessmentID string   `yaml:"assessment_id" json:"assessment_id"`
	TaskType     TaskType `yaml:"task_type" json:"task_type" validate:"required,oneof=functional extended"`
	PromptID     string   `yaml:"prompt_id" json:"prompt_id"`
	Text         string   `yaml:"text" json:"text"`
}

// WritingPromptContext carries the prompt a submission responds to, with
// up to three named requirements used for coverage checking.
type WritingPromptContext struct {
	Prompt       string `yaml:"prompt" json:"prompt"`
	Requirement1 string `yaml:"requirement_1" json:"requirement_1"`
	Requirement2 string `yaml:"requirement_2" json:"requirement_2"`
	Requirement3 string `yaml:"requirement_3" json:"requirement_3"`
	TargetBand   string `yaml:"target_band" json:"target_band"`
}

// Requirements returns the non-empty named requirements in order.
func (c WritingPromptContext) Requirements() []string {
	reqs := make([]string, 0, 3)
	for _, r := range []string{c.Requirement1, c.Requirement2, c.Requirement3} {
		if r != "" {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

// WritingDomainScores holds the four analytic rubric scores, each an
// integer 0-5.
type WritingDomainScores struct {
	TaskAchievement      int `yaml:"task_achievement" json:"task_achievement" validate:"min=0,max=5"`
	CoherenceCohesion    int `yaml:"coherence_cohesion" json:"coherence_cohesion" validate:"min=0,max=5"`
	LexicalResource      int `yaml:"lexical_resource" json:"lexical_resource" validate:"min=0,max=5"`
	GrammarRangeAccuracy int `yaml:"grammar_range_accuracy" json:"grammar_range_accuracy" validate:"min=0,max=5"`
}

// RawTotal sums the four domain scores (0-20).
func (s WritingDomainScores) RawTotal() int {
	return s.TaskAchievement + s.CoherenceCohesion + s.LexicalResource + s.GrammarRangeAccuracy
}

// WritingDomainNames lists the rubric domains in canonical order, using
// the snake_case identifiers that also key justifications and flags.
var WritingDomainNames = []string{
	"task_achievement",
	"coherence_cohesion",
	"lexical_resource",
	"grammar_range_accuracy",
}

// ByName returns the score for the named rubric domain.
func (s WritingDomainScores) ByName(name string) int {
	switch name {
	case "task_achievement":
		return s.TaskAchievement
	case "coherence_cohesion":
		return s.CoherenceCohesion
	case "lexical_resource":
		return s.LexicalResource
	case "grammar_range_accuracy":
		return s.GrammarRangeAccuracy
	default:
		return 0
	}
}

// SetByName sets the score for the named rubric domain.
func (s *WritingDomainScores) SetByName(name string, score int) {
	switch name {
	case "task_achievement":
		s.TaskAchievement = score
	case "coherence_cohesion":
		s.CoherenceCohesion = score
	case "lexical_resource":
		s.LexicalResource = score
	case "grammar_range_accuracy":
		s.GrammarRangeAccuracy = score
	}
}

// RuleMetrics captures the deterministic linguistic measurements computed
// in layer 2, plus the structural outcome from layer 1.
type RuleMetrics struct {
	WordCount            int     `json:"word_count"`
	SentenceCount        int     `json:"sentence_count"`
	AvgSentenceLength    float64 `json:"avg_sentence_length"`
	ParagraphCount       int     `json:"paragraph_count"`
	ConnectorCount       int     `json:"connector_count"`
	TypeTokenRatio       float64 `json:"type_token_ratio"`
	RepetitionIndex      float64 `json:"repetition_index"`
	ComplexSentenceRatio float64 `json:"complex_sentence_ratio"`
	ErrorRatePer100      float64 `json:"error_rate_per_100"`
	PromptCoverage       int     `json:"prompt_coverage"`
	StructuralPass       bool    `json:"structural_pass"`
	StructuralNotes      string  `json:"structural_notes"`
}

// RubricAssessment is the external rubric collaborator's verdict: the four
// domain scores with short justifications and a band estimate.
type RubricAssessment struct {
	Scores         WritingDomainScores `json:"domain_scores"`
	Justifications map[string]string   `json:"justifications"`
	BandEstimate   string              `json:"band_estimate"`
}

// IntegritySignals are caller-supplied integrity measurements that feed
// the confidence computation. The engine does not compute these itself.
type IntegritySignals struct {
	// SimilarityPercent is the text-similarity score against known
	// sources, 0-100.
	SimilarityPercent float64 `json:"similarity_percent"`

	// AIGeneratedProb is the AI-generation likelihood, 0.0-1.0.
	AIGeneratedProb float64 `json:"ai_generated_prob"`

	// ExistingFlags carries flags already raised upstream
	// (e.g. TIME_ANOMALY) that reduce confidence.
	ExistingFlags []string `json:"existing_flags"`
}

// WritingScoringResult is the full output of the writing pipeline for a
// single task, consumed by the same aggregation stage as objective items.
type WritingScoringResult struct {
	RuleScores     WritingDomainScores  `json:"rule_scores"`
	RuleMetrics    RuleMetrics          `json:"rule_metrics"`
	ExternalScores *WritingDomainScores `json:"external_scores"`
	Justifications map[string]string    `json:"justifications,omitempty"`
	FinalScores    WritingDomainScores  `json:"final_scores"`
	RawTotal       int                  `json:"raw_total"`
	ScaledTotal    float64              `json:"scaled_total"`
	BandEstimate   string               `json:"band_estimate"`
	ACSFEstimate   int                  `json:"acsf_estimate"`
	Confidence     int                  `json:"confidence"`
	Flags          []string             `json:"flags"`
	NeedsReview    bool                 `json:"needs_review"`
	ReviewReason   string               `json:"review_reason,omitempty"`
}
