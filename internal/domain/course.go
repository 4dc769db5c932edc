package domain

// CourseThresholds names the minimum bands a course requires. A nil-like
// empty string disables that check.
type CourseThresholds struct {
	OverallMin    string `yaml:"overall_min" json:"overall_min"`
	ReadingMin    string `yaml:"reading_min" json:"reading_min"`
	WritingMin    string `yaml:"writing_min" json:"writing_min"`
	EquivalentMin string `yaml:"equivalent_min" json:"equivalent_min"`
}

// Amber condition types understood by the traffic-light evaluator.
const (
	AmberOneThresholdMissedByOneBand = "one_threshold_missed_by_one_band"
	AmberWritingBelowMinOnly         = "writing_below_min_only"
	AmberEquivalentBelowBy           = "ielts_below_by"
)

// AmberCondition is one configurable way a near-miss can soften RED to
// AMBER. Which fields are meaningful depends on Type.
type AmberCondition struct {
	Type        string   `yaml:"type" json:"type" validate:"required"`
	Fields      []string `yaml:"fields,omitempty" json:"fields,omitempty"`
	MaxBandDrop int      `yaml:"max_band_drop,omitempty" json:"max_band_drop,omitempty"`
	MaxDelta    float64  `yaml:"max_delta,omitempty" json:"max_delta,omitempty"`
}

// TrafficLightLogic configures how a rule's checks combine into a
// status: GREEN when everything is met, AMBER when a listed condition
// excuses the miss, RED otherwise.
type TrafficLightLogic struct {
	GreenAllMet     bool             `yaml:"green_all_met" json:"green_all_met"`
	AmberConditions []AmberCondition `yaml:"amber_conditions" json:"amber_conditions"`
}

// RuleActions lists the recommended follow-ups per status.
type RuleActions struct {
	Green []string `yaml:"green" json:"green"`
	Amber []string `yaml:"amber" json:"amber"`
	Red   []string `yaml:"red" json:"red"`
}

// CourseRuleScope selects which candidates a rule applies to via
// wildcard patterns on course code and delivery type.
type CourseRuleScope struct {
	CourseCode   string `yaml:"course_code" json:"course_code"`
	DeliveryType string `yaml:"delivery_type" json:"delivery_type"`
}

// CourseRule is one course-suitability rule: scope, thresholds, status
// logic, and actions.
type CourseRule struct {
	RuleID     string            `yaml:"rule_id" json:"rule_id" validate:"required"`
	Name       string            `yaml:"name" json:"name"`
	AppliesTo  CourseRuleScope   `yaml:"applies_to" json:"applies_to"`
	Thresholds CourseThresholds  `yaml:"thresholds" json:"thresholds"`
	Logic      TrafficLightLogic `yaml:"traffic_light_logic" json:"traffic_light_logic"`
	Actions    RuleActions       `yaml:"actions" json:"actions"`
}

// CourseRuleSet is the versioned rule collection plus the defaults used
// when no rule matches a candidate.
type CourseRuleSet struct {
	Version  string           `yaml:"version" json:"version" validate:"required"`
	Defaults CourseThresholds `yaml:"defaults" json:"defaults"`
	Rules    []CourseRule     `yaml:"rules" json:"rules"`
}

// Traffic-light statuses.
const (
	StatusGreen = "GREEN"
	StatusAmber = "AMBER"
	StatusRed   = "RED"
)

// ThresholdMiss records one failed threshold check and how many bands
// short the candidate landed.
type ThresholdMiss struct {
	Field string `json:"field"`
	Drop  int    `json:"drop"`
}

// SuitabilityCandidate is the band profile checked against course rules.
type SuitabilityCandidate struct {
	OverallBand     string `json:"overall_band"`
	ReadingBand     string `json:"reading_band"`
	WritingBand     string `json:"writing_band"`
	EquivalentScore string `json:"equivalent_score"`
	CourseCode      string `json:"course_code"`
	DeliveryType    string `json:"delivery_type"`
}

// SuitabilityResult is the traffic-light verdict for one candidate
// against one rule set.
type SuitabilityResult struct {
	Status          string           `json:"status"`
	RuleIDApplied   string           `json:"rule_id_applied"`
	RuleName        string           `json:"rule_name"`
	Actions         []string         `json:"actions"`
	Thresholds      CourseThresholds `json:"thresholds"`
	Misses          []ThresholdMiss  `json:"misses"`
	EquivalentDelta float64          `json:"equivalent_delta"`
	Reasons         []string         `json:"reasons"`
}
