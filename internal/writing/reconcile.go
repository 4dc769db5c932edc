package writing

import (
	"math"
	"strings"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// Divergence and availability flags raised during reconciliation.
const (
	flagLLMUnavailable   = "LLM_UNAVAILABLE"
	flagDivergencePrefix = "RULE_LLM_DIVERGENCE_"
	flagSimilarityHigh   = "SIMILARITY_HIGH"
	flagSimilarityReview = "SIMILARITY_REVIEW"
	flagLowConfidence    = "LOW_CONFIDENCE"
	flagTimeAnomaly      = "TIME_ANOMALY"
)

// roundHalfUp rounds to the nearest integer with ties going up, which is
// the documented tie-break for divergence averaging. math.Round would
// agree for positive inputs but the intent is explicit here.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Reconcile merges rule-based and external domain scores. Small
// disagreements defer to the external verdict, moderate ones average,
// and large ones average with a per-domain divergence flag. A nil
// external verdict keeps the rule scores and flags the absence.
func Reconcile(rule domain.WritingDomainScores, external *domain.WritingDomainScores) (domain.WritingDomainScores, []string) {
	if external == nil {
		return rule, []string{flagLLMUnavailable}
	}

	var final domain.WritingDomainScores
	var flags []string

	for _, name := range domain.WritingDomainNames {
		r := rule.ByName(name)
		e := external.ByName(name)
		diff := r - e
		if diff < 0 {
			diff = -diff
		}

		switch {
		case diff <= 1:
			final.SetByName(name, e)
		case diff == 2:
			final.SetByName(name, roundHalfUp(float64(r+e)/2))
		default:
			final.SetByName(name, roundHalfUp(float64(r+e)/2))
			flags = append(flags, flagDivergencePrefix+strings.ToUpper(name))
		}
	}

	return final, flags
}

// ComputeConfidence derives the 0-100 confidence score from rule/external
// agreement, integrity signals, and accumulated flags.
func ComputeConfidence(rule domain.WritingDomainScores, external *domain.WritingDomainScores, integrity domain.IntegritySignals, flags []string) int {
	confidence := 100

	if external != nil {
		for _, name := range domain.WritingDomainNames {
			diff := rule.ByName(name) - external.ByName(name)
			if diff < 0 {
				diff = -diff
			}
			if diff >= 3 {
				confidence -= 15
			} else if diff == 2 {
				confidence -= 5
			}
		}
	} else {
		confidence -= 20
	}

	if integrity.SimilarityPercent > 25 {
		confidence -= 20
	} else if integrity.SimilarityPercent > 10 {
		confidence -= 10
	}

	if integrity.AIGeneratedProb > 0.8 {
		confidence -= 15
	} else if integrity.AIGeneratedProb > 0.5 {
		confidence -= 5
	}

	for _, flag := range flags {
		if strings.Contains(flag, "DIVERGENCE") {
			confidence -= 5
		}
		if strings.Contains(flag, flagTimeAnomaly) {
			confidence -= 10
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

// EstimateBand maps a raw 0-20 writing total to the single-task band
// estimate.
func EstimateBand(rawTotal int) string {
	switch {
	case rawTotal <= 6:
		return domain.BandA2
	case rawTotal <= 10:
		return domain.BandB1
	case rawTotal <= 14:
		return domain.BandB2
	default:
		return domain.BandC1
	}
}

// EstimateACSF maps a raw 0-20 writing total to an indicative ACSF level.
func EstimateACSF(rawTotal int) int {
	switch {
	case rawTotal <= 6:
		return 2
	case rawTotal <= 10:
		return 3
	case rawTotal <= 14:
		return 4
	default:
		return 5
	}
}

// CombinedBandFromRawTotal maps the combined two-task raw total (0-40)
// to a band, used by the placement composite.
func CombinedBandFromRawTotal(rawTotal float64) string {
	switch {
	case rawTotal <= 12:
		return domain.BandA2
	case rawTotal <= 20:
		return domain.BandB1
	case rawTotal <= 28:
		return domain.BandB2
	default:
		return domain.BandC1
	}
}
