package placement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// unparsableDelta marks an equivalent-score comparison that could not be
// made; it always fails the check and never qualifies for AMBER.
const unparsableDelta = 999

// bandDrop returns how many bands below the requirement the actual band
// sits, never negative.
func bandDrop(actual, required string) int {
	drop := domain.BandRank(required) - domain.BandRank(actual)
	if drop < 0 {
		return 0
	}
	return drop
}

func bandAtLeast(actual, required string) bool {
	return domain.BandRank(actual) >= domain.BandRank(required)
}

// parseEquivalent parses an equivalent-score label like "6.5" or "7.5+"
// into its numeric value.
func parseEquivalent(value string) (float64, bool) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(value), "+")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// equivalentDelta returns how far below the requirement the actual
// equivalent score sits. Zero or negative means the requirement is met.
func equivalentDelta(actual, required string) float64 {
	if required == "" {
		return 0
	}
	actualNum, okA := parseEquivalent(actual)
	requiredNum, okR := parseEquivalent(required)
	if !okA || !okR {
		return unparsableDelta
	}
	return requiredNum - actualNum
}

// wildcardMatch matches text against a pattern where '*' matches any
// run of characters. An empty pattern matches everything.
func wildcardMatch(pattern, text string) bool {
	if pattern == "*" || pattern == "" {
		return true
	}
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := "^" + strings.Join(parts, ".*") + "$"
	matched, err := regexp.MatchString(expr, text)
	return err == nil && matched
}

// selectRule picks the matching rule with the fewest wildcards; fewer
// wildcards means a more specific scope. Ties resolve to the earlier
// rule in the set.
func selectRule(rules []domain.CourseRule, courseCode, deliveryType string) *domain.CourseRule {
	var best *domain.CourseRule
	bestSpecificity := 0

	for i := range rules {
		rule := &rules[i]
		pCourse := rule.AppliesTo.CourseCode
		if pCourse == "" {
			pCourse = "*"
		}
		pDelivery := rule.AppliesTo.DeliveryType
		if pDelivery == "" {
			pDelivery = "*"
		}
		if !wildcardMatch(pCourse, courseCode) || !wildcardMatch(pDelivery, deliveryType) {
			continue
		}
		specificity := strings.Count(pCourse, "*") + strings.Count(pDelivery, "*")
		if best == nil || specificity < bestSpecificity {
			best = rule
			bestSpecificity = specificity
		}
	}

	return best
}

// defaultLogic and defaultActions apply when no rule matches and the
// rule set's defaults drive the evaluation.
var defaultLogic = domain.TrafficLightLogic{GreenAllMet: true}

var defaultActions = domain.RuleActions{
	Green: []string{"Proceed"},
	Amber: []string{"Manual review recommended"},
	Red:   []string{"Not recommended"},
}

// EvaluateSuitability runs the traffic-light check: select the most
// specific applicable rule, test each configured threshold, and resolve
// the status. GREEN requires every enabled check to pass; AMBER requires
// one of the rule's near-miss conditions; everything else is RED.
func EvaluateSuitability(ruleSet domain.CourseRuleSet, candidate domain.SuitabilityCandidate) domain.SuitabilityResult {
	courseCode := candidate.CourseCode
	if courseCode == "" {
		courseCode = "*"
	}
	deliveryType := candidate.DeliveryType
	if deliveryType == "" {
		deliveryType = "*"
	}

	rule := selectRule(ruleSet.Rules, courseCode, deliveryType)

	thresholds := ruleSet.Defaults
	logic := defaultLogic
	actions := defaultActions
	ruleID := "DEFAULTS"
	ruleName := "Defaults"
	if rule != nil {
		thresholds = rule.Thresholds
		logic = rule.Logic
		actions = rule.Actions
		ruleID = rule.RuleID
		ruleName = rule.Name
	}

	metOverall := thresholds.OverallMin == "" || bandAtLeast(candidate.OverallBand, thresholds.OverallMin)
	metReading := thresholds.ReadingMin == "" || bandAtLeast(candidate.ReadingBand, thresholds.ReadingMin)
	metWriting := thresholds.WritingMin == "" || bandAtLeast(candidate.WritingBand, thresholds.WritingMin)

	equivalentEnabled := thresholds.EquivalentMin != ""
	metEquivalent := true
	var delta float64
	if equivalentEnabled {
		delta = equivalentDelta(candidate.EquivalentScore, thresholds.EquivalentMin)
		metEquivalent = delta <= 0
	}

	misses := make([]domain.ThresholdMiss, 0, 3)
	if !metOverall {
		misses = append(misses, domain.ThresholdMiss{Field: "overall_band", Drop: bandDrop(candidate.OverallBand, thresholds.OverallMin)})
	}
	if !metReading {
		misses = append(misses, domain.ThresholdMiss{Field: "reading_band", Drop: bandDrop(candidate.ReadingBand, thresholds.ReadingMin)})
	}
	if !metWriting {
		misses = append(misses, domain.ThresholdMiss{Field: "writing_band", Drop: bandDrop(candidate.WritingBand, thresholds.WritingMin)})
	}

	allMet := len(misses) == 0 && metEquivalent

	build := func(status string, actionList, reasons []string) domain.SuitabilityResult {
		return domain.SuitabilityResult{
			Status:          status,
			RuleIDApplied:   ruleID,
			RuleName:        ruleName,
			Actions:         actionList,
			Thresholds:      thresholds,
			Misses:          misses,
			EquivalentDelta: delta,
			Reasons:         reasons,
		}
	}

	if logic.GreenAllMet && allMet {
		return build(domain.StatusGreen, actions.Green, nil)
	}

	amberOK := false
	var amberReasons []string

	for _, cond := range logic.AmberConditions {
		switch cond.Type {
		case domain.AmberOneThresholdMissedByOneBand:
			fields := cond.Fields
			if len(fields) == 0 {
				fields = []string{"reading_band", "writing_band", "overall_band"}
			}
			nominated := make([]domain.ThresholdMiss, 0, len(misses))
			for _, miss := range misses {
				for _, f := range fields {
					if miss.Field == f {
						nominated = append(nominated, miss)
						break
					}
				}
			}
			if len(nominated) == 1 && nominated[0].Drop == 1 {
				amberOK = true
				amberReasons = append(amberReasons, fmt.Sprintf("One band threshold missed by one band: %s", nominated[0].Field))
			}

		case domain.AmberWritingBelowMinOnly:
			maxDrop := cond.MaxBandDrop
			if maxDrop == 0 {
				maxDrop = 1
			}
			wDrop := 0
			if !metWriting && thresholds.WritingMin != "" {
				wDrop = bandDrop(candidate.WritingBand, thresholds.WritingMin)
			}
			if !metWriting && wDrop >= 1 && wDrop <= maxDrop && metReading && metOverall {
				amberOK = true
				amberReasons = append(amberReasons, fmt.Sprintf("Writing below minimum only (drop %d)", wDrop))
			}

		case domain.AmberEquivalentBelowBy:
			maxDelta := cond.MaxDelta
			if maxDelta == 0 {
				maxDelta = 0.5
			}
			if equivalentEnabled && delta > 0 && delta <= maxDelta {
				amberOK = true
				amberReasons = append(amberReasons, fmt.Sprintf("Equivalent score below requirement by %g", delta))
			}
		}
	}

	if amberOK {
		return build(domain.StatusAmber, actions.Amber, amberReasons)
	}

	return build(domain.StatusRed, actions.Red, nil)
}
