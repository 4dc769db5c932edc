// Package domain contains pure, dependency-free domain models and types
// for the scoring and classification engine.
package domain

// SkillDomain identifies one of the five assessed skill areas.
type SkillDomain string

// The five skill domains covered by an assessment.
const (
	DomainReading  SkillDomain = "Reading"
	DomainWriting  SkillDomain = "Writing"
	DomainNumeracy SkillDomain = "Numeracy"
	DomainOral     SkillDomain = "Oral"
	DomainDigital  SkillDomain = "Digital"
)

// AllDomains lists the skill domains in canonical report order.
// Aggregation iterates this slice so output ordering is deterministic.
var AllDomains = []SkillDomain{
	DomainReading,
	DomainWriting,
	DomainNumeracy,
	DomainOral,
	DomainDigital,
}

// DifficultyTag marks a question as a core item for its sub-level or a
// stretch item probing the level above.
type DifficultyTag string

const (
	// DifficultyCore marks items at the expected sub-level.
	DifficultyCore DifficultyTag = "core"

	// DifficultyStretch marks items probing above the expected sub-level.
	DifficultyStretch DifficultyTag = "stretch"
)

// ResponseType identifies how a question is answered and therefore which
// scorer grades it.
type ResponseType string

const (
	// ResponseMCQ is a multiple-choice question graded by exact match.
	ResponseMCQ ResponseType = "mcq"

	// ResponseNumeric is a numeric question graded with tolerance.
	ResponseNumeric ResponseType = "numeric"

	// ResponseShortText is a short constructed response graded by the
	// deterministic free-text rubric.
	ResponseShortText ResponseType = "short_text"
)

// Question is an immutable item from a versioned question set.
// The engine never mutates questions; it only reads them during scoring.
type Question struct {
	// ID uniquely identifies the question within its set.
	ID string `yaml:"id" json:"id" validate:"required"`

	// Domain is the skill area this question assesses.
	Domain SkillDomain `yaml:"domain" json:"domain" validate:"required,oneof=Reading Writing Numeracy Oral Digital"`

	// Level is the ACSF sub-level the item targets (e.g. 2 or 3).
	Level int `yaml:"level" json:"level" validate:"min=1,max=6"`

	// Difficulty tags the item as core or stretch for band inference.
	Difficulty DifficultyTag `yaml:"difficulty" json:"difficulty" validate:"required,oneof=core stretch"`

	// ResponseType selects the scorer used to grade the answer.
	ResponseType ResponseType `yaml:"response_type" json:"response_type" validate:"required,oneof=mcq numeric short_text"`

	// ExpectedAnswer is the answer key for objective items.
	// It is empty for short_text items, which are rubric-scored.
	ExpectedAnswer string `yaml:"expected_answer" json:"expected_answer"`

	// MaxScore is the maximum score awardable for this item.
	MaxScore float64 `yaml:"max_score" json:"max_score" validate:"gt=0"`

	// Weight is the item's contribution weight within its domain.
	Weight float64 `yaml:"weight" json:"weight" validate:"gte=0"`
}

// Response pairs a question with the learner's raw answer text.
// Responses are transient inputs; the engine does not own or persist them.
type Response struct {
	QuestionID string `yaml:"question_id" json:"question_id"`
	Answer     string `yaml:"answer" json:"answer"`
}
