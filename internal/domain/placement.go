package domain

// Band labels for the ordinal language-proficiency scale used by the
// placement mapper.
const (
	BandA2 = "A2"
	BandB1 = "B1"
	BandB2 = "B2"
	BandC1 = "C1"
)

// BandOrder ranks proficiency bands from lowest to highest. Bands not in
// the map rank below every known band.
var BandOrder = map[string]int{
	BandA2: 1,
	BandB1: 2,
	BandB2: 3,
	BandC1: 4,
}

// BandRank returns the ordering position of a band label, or 0 for an
// unknown or empty label.
func BandRank(band string) int { return BandOrder[band] }

// MinBand returns the lowest-ranked of the given band labels.
func MinBand(bands ...string) string {
	if len(bands) == 0 {
		return ""
	}
	min := bands[0]
	for _, b := range bands[1:] {
		if BandRank(b) < BandRank(min) {
			min = b
		}
	}
	return min
}

// BandCutoff maps a contiguous score range [Min, Max] to a band label.
// Cutoff tables must be exhaustive and non-overlapping over the documented
// score range; a lookup miss is a configuration defect.
type BandCutoff struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Band string  `yaml:"band" json:"band" validate:"required"`
}

// ACSFCutoff maps a contiguous score range to an ordinal ACSF level.
type ACSFCutoff struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Band int     `yaml:"band" json:"band" validate:"min=1,max=5"`
}

// EquivalentRange gives the low/mid/high equivalent-score labels within a
// single band, selected by position inside the band's cutoff range.
type EquivalentRange struct {
	Low  string `yaml:"low" json:"low"`
	Mid  string `yaml:"mid" json:"mid"`
	High string `yaml:"high" json:"high"`
}

// IntegrityPolicy holds the caller-facing integrity thresholds used by
// the writing pipeline's confidence layer.
type IntegrityPolicy struct {
	SimilarityReviewThreshold float64 `yaml:"similarity_review_threshold" json:"similarity_review_threshold" validate:"gte=0,lte=100"`
	SimilarityHighThreshold   float64 `yaml:"similarity_high_threshold" json:"similarity_high_threshold" validate:"gte=0,lte=100"`
	LowConfidenceThreshold    int     `yaml:"low_confidence_threshold" json:"low_confidence_threshold" validate:"gte=0,lte=100"`
}

// PlacementConfig is the versioned snapshot driving band mapping: cutoff
// tables, the equivalent-score mapping, ACSF maps, and the skill-floor
// switch. Tables are validated for exhaustiveness at load time so a
// lookup miss never happens mid-scoring.
type PlacementConfig struct {
	Version           string `yaml:"version" json:"version" validate:"required"`
	SkillFloorEnabled bool   `yaml:"skill_floor_enabled" json:"skill_floor_enabled"`

	OverallCutoffs []BandCutoff `yaml:"overall_cutoffs" json:"overall_cutoffs" validate:"required,min=1"`
	ReadingCutoffs []BandCutoff `yaml:"reading_cutoffs" json:"reading_cutoffs" validate:"required,min=1"`
	WritingCutoffs []BandCutoff `yaml:"writing_cutoffs" json:"writing_cutoffs" validate:"required,min=1"`

	// EquivalentTable maps a band label to its low/mid/high
	// equivalent-score labels (IELTS-indicative).
	EquivalentTable map[string]EquivalentRange `yaml:"equivalent_table" json:"equivalent_table"`

	ReadingACSFMap []ACSFCutoff `yaml:"reading_acsf_map" json:"reading_acsf_map" validate:"required,min=1"`
	WritingACSFMap []ACSFCutoff `yaml:"writing_acsf_map" json:"writing_acsf_map" validate:"required,min=1"`

	Integrity IntegrityPolicy `yaml:"integrity" json:"integrity"`
}

// AuditStep records one decision in the placement pipeline so a report
// can show exactly how a band was derived.
type AuditStep struct {
	Step   string         `json:"step"`
	Detail map[string]any `json:"detail"`
}

// PlacementInput carries the section results entering band mapping.
type PlacementInput struct {
	// GrammarCorrect and ReadingCorrect are correct-item counts (0-20).
	GrammarCorrect int `json:"grammar_correct" validate:"min=0,max=20"`
	ReadingCorrect int `json:"reading_correct" validate:"min=0,max=20"`

	// Task1 and Task2 are the final writing domain scores for the
	// functional and extended tasks.
	Task1 WritingDomainScores `json:"task1"`
	Task2 WritingDomainScores `json:"task2"`
}

// PlacementResult is the band-mapping output: section scores, pre- and
// post-floor bands, the equivalent score, ACSF levels, and the audit log.
type PlacementResult struct {
	GrammarScore      float64     `json:"grammar_score"`
	ReadingScore      float64     `json:"reading_score"`
	WritingTask1Score float64     `json:"writing_task1_score"`
	WritingTask2Score float64     `json:"writing_task2_score"`
	WritingRawTotal   float64     `json:"writing_raw_total"`
	CompositeScore    float64     `json:"composite_score"`
	ReadingBand       string      `json:"reading_band"`
	WritingBand       string      `json:"writing_band"`
	OverallPreFloor   string      `json:"overall_pre_floor"`
	OverallFinal      string      `json:"overall_final"`
	SkillFloorApplied bool        `json:"skill_floor_applied"`
	SkillFloorReason  string      `json:"skill_floor_reason,omitempty"`
	EquivalentScore   string      `json:"equivalent_score"`
	ReadingACSF       int         `json:"reading_acsf"`
	WritingACSF       int         `json:"writing_acsf"`
	Audit             []AuditStep `json:"audit"`
}
