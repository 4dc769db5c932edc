package engine

import "github.com/eduxlabs/llnd-engine/internal/domain"

// ClassifyPercent maps a percentage onto the four-outcome scale using
// the level's tier thresholds. Boundaries are inclusive: landing exactly
// on a threshold classifies into the better tier.
func ClassifyPercent(pct float64, t domain.TierThresholds) domain.Outcome {
	switch {
	case pct >= t.Strong:
		return domain.OutcomeExceeds
	case pct >= t.Meets:
		return domain.OutcomeMeets
	case pct >= t.Monitor:
		return domain.OutcomeMonitor
	default:
		return domain.OutcomeSupportRequired
	}
}

// classificationLabels holds the human-readable outcome labels per
// proficiency level. Codes are universal; labels are not.
var classificationLabels = map[string]map[domain.Outcome]string{
	"3": {
		domain.OutcomeExceeds:         "Exceeds Entry Benchmark",
		domain.OutcomeMeets:           "Meets Entry Benchmark",
		domain.OutcomeMonitor:         "Borderline – Monitor",
		domain.OutcomeSupportRequired: "Support Required",
	},
	"4": {
		domain.OutcomeExceeds:         "Strong Capability",
		domain.OutcomeMeets:           "Meets Benchmark",
		domain.OutcomeMonitor:         "Monitor",
		domain.OutcomeSupportRequired: "Support Required",
	},
	"5": {
		domain.OutcomeExceeds:         "Strong Diploma Readiness",
		domain.OutcomeMeets:           "Meets Diploma Benchmark",
		domain.OutcomeMonitor:         "Monitor",
		domain.OutcomeSupportRequired: "Support Required",
	},
	"6": {
		domain.OutcomeExceeds:         "Advanced Capability",
		domain.OutcomeMeets:           "Meets Advanced Diploma Benchmark",
		domain.OutcomeMonitor:         "Monitor",
		domain.OutcomeSupportRequired: "Support Required",
	},
	"8-9": {
		domain.OutcomeExceeds:         "Postgraduate Readiness – Strong",
		domain.OutcomeMeets:           "Meets Postgraduate Benchmark",
		domain.OutcomeMonitor:         "Monitor",
		domain.OutcomeSupportRequired: "Support Required",
	},
}

// levelNames maps proficiency-level keys to display names.
var levelNames = map[string]string{
	"3":   "Certificate III",
	"4":   "Certificate IV",
	"5":   "Diploma",
	"6":   "Advanced Diploma",
	"8-9": "Graduate Diploma",
}

// OutcomeLabel returns the level-specific label for an outcome code.
// Unknown levels fall back to the raw code so reports stay usable when a
// new level ships before its label table.
func OutcomeLabel(level string, outcome domain.Outcome) string {
	if labels, ok := classificationLabels[level]; ok {
		if label, ok := labels[outcome]; ok {
			return label
		}
	}
	return string(outcome)
}

// LevelName returns the display name for a proficiency-level key, or the
// key itself when no name is registered.
func LevelName(level string) string {
	if name, ok := levelNames[level]; ok {
		return name
	}
	return level
}
