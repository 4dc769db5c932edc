package engine

import (
	"math"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// Round1 rounds to one decimal place. All reported percentages go
// through this so stored results are stable across architectures.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// percentOf returns score/max as a percentage, or zero when the
// partition is empty.
func percentOf(score, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return (score / max) * 100
}

// InferACSFBand maps the three sub-band percentages to an estimated
// ACSF band label. Core performance dominates; stretch performance
// separates confident from monitor within a band.
func InferACSFBand(sub domain.SubBandPercents, t domain.ACSFThresholds) string {
	switch {
	case sub.ACSF3CorePercent >= t.CoreMeets && sub.ACSF3StretchPercent >= t.StretchMeets:
		return "ACSF 3 (confident)"
	case sub.ACSF3CorePercent >= t.CoreMeets:
		return "ACSF 3 (monitor)"
	case sub.ACSF2Percent >= t.ACSF2Meets && sub.ACSF3CorePercent < t.ACSF2Fail:
		return "ACSF 2-3 (borderline)"
	case sub.ACSF2Percent < t.ACSF2Fail:
		return "Below ACSF 2"
	default:
		return "ACSF 2-3 (borderline)"
	}
}

// AggregateDomains folds item scores into per-domain results: raw and
// percentage scores, the sub-band breakdown, the estimated ACSF band,
// and the domain outcome with its narrative. Domains with no items are
// omitted. Output order follows domain.AllDomains so results are
// deterministic.
func AggregateDomains(items []domain.ItemScore, cfg *domain.BenchmarkConfig) []domain.DomainScore {
	scores := make([]domain.DomainScore, 0, len(domain.AllDomains))

	for _, d := range domain.AllDomains {
		var raw, max float64
		var acsf2Raw, acsf2Max float64
		var coreRaw, coreMax float64
		var stretchRaw, stretchMax float64
		seen := false

		for _, item := range items {
			if item.Domain != d {
				continue
			}
			seen = true
			raw += item.ScoreAwarded
			max += item.MaxScore

			switch {
			case item.Level == 2:
				acsf2Raw += item.ScoreAwarded
				acsf2Max += item.MaxScore
			case item.Level == 3 && item.Difficulty == domain.DifficultyCore:
				coreRaw += item.ScoreAwarded
				coreMax += item.MaxScore
			case item.Level == 3 && item.Difficulty == domain.DifficultyStretch:
				stretchRaw += item.ScoreAwarded
				stretchMax += item.MaxScore
			}
		}

		if !seen {
			continue
		}

		percentage := percentOf(raw, max)
		sub := domain.SubBandPercents{
			ACSF2Percent:        Round1(percentOf(acsf2Raw, acsf2Max)),
			ACSF3CorePercent:    Round1(percentOf(coreRaw, coreMax)),
			ACSF3StretchPercent: Round1(percentOf(stretchRaw, stretchMax)),
		}

		outcome := ClassifyPercent(percentage, cfg.Thresholds)

		scores = append(scores, domain.DomainScore{
			Domain:        d,
			RawScore:      raw,
			MaxScore:      max,
			Percentage:    Round1(percentage),
			Weighted:      Round1(percentage * cfg.Weights[d]),
			SubBands:      sub,
			EstimatedBand: InferACSFBand(sub, cfg.ACSF),
			Outcome:       outcome,
			Justification: Justification(d, outcome),
			Strategies:    Strategies(d, outcome),
		})
	}

	return scores
}

// WeightedTotal computes the overall score as the weight-adjusted sum of
// domain percentages, rounded to one decimal.
func WeightedTotal(scores []domain.DomainScore, weights map[domain.SkillDomain]float64) float64 {
	var total float64
	for _, ds := range scores {
		total += ds.Percentage * weights[ds.Domain]
	}
	return Round1(total)
}
