package domain

// RuleCondition tags an auto-support override rule variant. The evaluator
// pattern-matches on this tag, keeping new rule shapes additive.
type RuleCondition string

// Auto-support rule variants.
const (
	// CondOR fires when any listed domain is below its threshold.
	CondOR RuleCondition = "OR"

	// CondAND fires when all listed domains are below their thresholds.
	CondAND RuleCondition = "AND"

	// CondSingle fires when the one named domain is below its threshold.
	CondSingle RuleCondition = "SINGLE"

	// CondAny2Core fires when at least two of the named core domains are
	// below the shared threshold.
	CondAny2Core RuleCondition = "ANY_2_CORE"
)

// CapCondition tags a monitor-cap rule variant.
type CapCondition string

// Monitor-cap rule variants. Caps can only lower an outcome to monitor,
// never raise one.
const (
	// CapSingleBelow caps when the named domain is below the threshold.
	CapSingleBelow CapCondition = "single_below"

	// CapMultiBelow caps when at least Count domains are below the
	// threshold.
	CapMultiBelow CapCondition = "multi_below"
)

// DomainThreshold names a domain and the percentage threshold a rule
// compares it against.
type DomainThreshold struct {
	Domain    SkillDomain `yaml:"domain" json:"domain" validate:"required"`
	Threshold float64     `yaml:"threshold" json:"threshold" validate:"gte=0,lte=100"`
}

// AutoSupportRule is one variant of the override rule tree. Which fields
// are meaningful depends on Condition:
//
//	OR, AND, SINGLE  use Rules
//	ANY_2_CORE       uses CoreDomains and Threshold
type AutoSupportRule struct {
	Condition   RuleCondition     `yaml:"condition" json:"condition" validate:"required,oneof=OR AND SINGLE ANY_2_CORE"`
	Rules       []DomainThreshold `yaml:"rules,omitempty" json:"rules,omitempty"`
	CoreDomains []SkillDomain     `yaml:"core_domains,omitempty" json:"core_domains,omitempty"`
	Threshold   float64           `yaml:"threshold,omitempty" json:"threshold,omitempty"`
}

// MonitorCapRule limits the overall outcome to monitor when satisfied.
// single_below uses Domain and Threshold; multi_below uses Threshold and
// Count across all domains.
type MonitorCapRule struct {
	Condition CapCondition `yaml:"condition" json:"condition" validate:"required,oneof=single_below multi_below"`
	Domain    SkillDomain  `yaml:"domain,omitempty" json:"domain,omitempty"`
	Threshold float64      `yaml:"threshold" json:"threshold" validate:"gte=0,lte=100"`
	Count     int          `yaml:"count,omitempty" json:"count,omitempty"`
}

// OverrideRules groups the configurable override rule tree.
type OverrideRules struct {
	// AutoSupport rules are evaluated in order; the first satisfied rule
	// forces the overall outcome to support_required.
	AutoSupport []AutoSupportRule `yaml:"auto_support" json:"auto_support"`

	// MonitorCap rules can only cap the outcome at monitor.
	MonitorCap []MonitorCapRule `yaml:"monitor_cap" json:"monitor_cap"`
}

// TierThresholds is the three-tier classification threshold set.
// Strong >= Meets >= Monitor must hold; scores below Monitor classify as
// support_required.
type TierThresholds struct {
	Strong  float64 `yaml:"strong" json:"strong" validate:"gte=0,lte=100"`
	Meets   float64 `yaml:"meets" json:"meets" validate:"gte=0,lte=100"`
	Monitor float64 `yaml:"monitor" json:"monitor" validate:"gte=0,lte=100"`
}

// ACSFThresholds parameterizes ACSF band inference from the three
// sub-band percentages.
type ACSFThresholds struct {
	CoreMeets    float64 `yaml:"core_meets" json:"core_meets" validate:"gte=0,lte=100"`
	StretchMeets float64 `yaml:"stretch_meets" json:"stretch_meets" validate:"gte=0,lte=100"`
	ACSF2Meets   float64 `yaml:"acsf2_meets" json:"acsf2_meets" validate:"gte=0,lte=100"`
	ACSF2Fail    float64 `yaml:"acsf2_fail" json:"acsf2_fail" validate:"gte=0,lte=100"`
}

// WritingRubricConfig parameterizes the deterministic free-text rubric.
// The marker word lists are matched as lowercase substrings.
type WritingRubricConfig struct {
	// MinWordsLevel2 and MinWordsLevel3 are the minimum word counts for
	// level-2 and level-3 items respectively.
	MinWordsLevel2 int `yaml:"min_words_level2" json:"min_words_level2" validate:"min=1"`
	MinWordsLevel3 int `yaml:"min_words_level3" json:"min_words_level3" validate:"min=1"`

	// CauseWords signal causal reasoning ("because", "due to", ...).
	CauseWords []string `yaml:"cause_words" json:"cause_words"`

	// ImpactWords signal consequence language ("resulted in", ...).
	ImpactWords []string `yaml:"impact_words" json:"impact_words"`

	// RequestWords signal polite request/clarification language.
	RequestWords []string `yaml:"request_words" json:"request_words"`

	// DepthWords signal analytical depth, required at scale ceilings >= 5.
	DepthWords []string `yaml:"depth_words" json:"depth_words"`

	// ReasonWords signal explicit reasoning, required at ceiling 6.
	ReasonWords []string `yaml:"reason_words" json:"reason_words"`
}

// BenchmarkConfig is a versioned, read-only benchmark snapshot for one
// proficiency level. Exactly one configuration is active per level; the
// engine assumes the value handed to it already satisfies that invariant
// and never mutates it.
type BenchmarkConfig struct {
	// ConfigID uniquely identifies this snapshot.
	ConfigID string `yaml:"config_id" json:"config_id" validate:"required"`

	// Level is the proficiency-level key (e.g. "3", "4", "8-9").
	Level string `yaml:"level" json:"level" validate:"required"`

	// Version tags the snapshot for reproducibility.
	Version string `yaml:"version" json:"version" validate:"required"`

	// Weights is the per-domain weight vector. It must sum to 1.0 within
	// WeightSumTolerance; that is enforced at configuration-authoring
	// time, not during scoring.
	Weights map[SkillDomain]float64 `yaml:"weights" json:"weights" validate:"required"`

	// WritingScaleMax is the rubric scale ceiling (3-6) for free-text
	// items at this level.
	WritingScaleMax int `yaml:"writing_scale_max" json:"writing_scale_max" validate:"min=3,max=6"`

	// WritingMaxPoints is the total writing points available at this
	// level, used by reporting.
	WritingMaxPoints int `yaml:"writing_max_points" json:"writing_max_points" validate:"min=1"`

	// Thresholds is the three-tier overall classification threshold set.
	Thresholds TierThresholds `yaml:"thresholds" json:"thresholds"`

	// OverrideRules is the configurable override rule tree.
	OverrideRules OverrideRules `yaml:"override_rules" json:"override_rules"`

	// RiskThresholds holds per-domain advisory risk thresholds.
	RiskThresholds map[SkillDomain]float64 `yaml:"risk_thresholds" json:"risk_thresholds"`

	// ACSF parameterizes sub-band inference.
	ACSF ACSFThresholds `yaml:"acsf" json:"acsf"`

	// CriticalDomains fail the whole attempt when below
	// CriticalFailThreshold, independent of the weighted total.
	CriticalDomains       []SkillDomain `yaml:"critical_domains" json:"critical_domains"`
	CriticalFailThreshold float64       `yaml:"critical_fail_threshold" json:"critical_fail_threshold" validate:"gte=0,lte=100"`

	// NumericTolerance is the absolute tolerance for numeric answers.
	NumericTolerance float64 `yaml:"numeric_tolerance" json:"numeric_tolerance" validate:"gte=0"`

	// WritingRubric parameterizes the deterministic free-text rubric.
	WritingRubric WritingRubricConfig `yaml:"writing_rubric" json:"writing_rubric"`
}

// WeightSumTolerance is the permitted deviation of the domain weight
// vector from 1.0.
const WeightSumTolerance = 0.01

// WeightSum returns the sum of the configured domain weights.
func (c *BenchmarkConfig) WeightSum() float64 {
	var sum float64
	for _, w := range c.Weights {
		sum += w
	}
	return sum
}
