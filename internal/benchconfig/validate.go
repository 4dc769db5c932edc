package benchconfig

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

var validate = validator.New()

// ValidateBenchmark checks a benchmark snapshot's structural invariants:
// field constraints, the weight-sum property, threshold ordering, and
// rule well-formedness. Validation happens at load time so a bad
// snapshot is rejected before any attempt is scored with it.
func ValidateBenchmark(cfg *domain.BenchmarkConfig) error {
	fail := func(reason string) error {
		return &domain.ConfigValidationError{ConfigID: cfg.ConfigID, Version: cfg.Version, Reason: reason}
	}

	if err := validate.Struct(cfg); err != nil {
		return fail(err.Error())
	}

	if sum := cfg.WeightSum(); math.Abs(sum-1.0) > domain.WeightSumTolerance {
		return fail(fmt.Sprintf("domain weights sum to %.4f, want 1.0 ± %.2f", sum, domain.WeightSumTolerance))
	}

	t := cfg.Thresholds
	if t.Strong < t.Meets || t.Meets < t.Monitor {
		return fail(fmt.Sprintf("tier thresholds not ordered: strong=%.0f meets=%.0f monitor=%.0f", t.Strong, t.Meets, t.Monitor))
	}

	for i, rule := range cfg.OverrideRules.AutoSupport {
		switch rule.Condition {
		case domain.CondOR, domain.CondAND:
			if len(rule.Rules) == 0 {
				return fail(fmt.Sprintf("auto_support[%d]: %s rule has no domain thresholds", i, rule.Condition))
			}
		case domain.CondSingle:
			if len(rule.Rules) != 1 {
				return fail(fmt.Sprintf("auto_support[%d]: SINGLE rule needs exactly one domain threshold", i))
			}
		case domain.CondAny2Core:
			if len(rule.CoreDomains) < 2 {
				return fail(fmt.Sprintf("auto_support[%d]: ANY_2_CORE rule needs at least two core domains", i))
			}
		}
	}

	for i, rule := range cfg.OverrideRules.MonitorCap {
		switch rule.Condition {
		case domain.CapSingleBelow:
			if rule.Domain == "" {
				return fail(fmt.Sprintf("monitor_cap[%d]: single_below rule has no domain", i))
			}
		case domain.CapMultiBelow:
			if rule.Count < 1 {
				return fail(fmt.Sprintf("monitor_cap[%d]: multi_below rule needs a positive count", i))
			}
		}
	}

	return nil
}

// checkCutoffs verifies a cutoff table is exhaustive and non-overlapping
// over its documented range: rows in order, no gaps, no overlaps.
func checkCutoffs(rows []domain.BandCutoff, table string) error {
	if len(rows) == 0 {
		return fmt.Errorf("table %s is empty", table)
	}
	sorted := make([]domain.BandCutoff, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, row := range sorted {
		if row.Max < row.Min {
			return fmt.Errorf("table %s: row %q has max %.1f below min %.1f", table, row.Band, row.Max, row.Min)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if row.Min <= prev.Max {
			return fmt.Errorf("table %s: rows %q and %q overlap", table, prev.Band, row.Band)
		}
		if row.Min > prev.Max+1 {
			return fmt.Errorf("table %s: gap between %.1f and %.1f", table, prev.Max, row.Min)
		}
	}
	return nil
}

// checkACSFMap applies the same exhaustiveness check to an ACSF table.
func checkACSFMap(rows []domain.ACSFCutoff, table string) error {
	converted := make([]domain.BandCutoff, len(rows))
	for i, r := range rows {
		converted[i] = domain.BandCutoff{Min: r.Min, Max: r.Max, Band: fmt.Sprintf("%d", r.Band)}
	}
	return checkCutoffs(converted, table)
}

// ValidatePlacement eagerly checks every band table in a placement
// configuration so a lookup miss can never happen mid-scoring.
func ValidatePlacement(cfg *domain.PlacementConfig) error {
	fail := func(reason string) error {
		return &domain.ConfigValidationError{ConfigID: "placement", Version: cfg.Version, Reason: reason}
	}

	if err := validate.Struct(cfg); err != nil {
		return fail(err.Error())
	}

	for _, check := range []struct {
		rows  []domain.BandCutoff
		table string
	}{
		{cfg.OverallCutoffs, "overall_cutoffs"},
		{cfg.ReadingCutoffs, "reading_cutoffs"},
		{cfg.WritingCutoffs, "writing_cutoffs"},
	} {
		if err := checkCutoffs(check.rows, check.table); err != nil {
			return fail(err.Error())
		}
	}

	if err := checkACSFMap(cfg.ReadingACSFMap, "reading_acsf_map"); err != nil {
		return fail(err.Error())
	}
	if err := checkACSFMap(cfg.WritingACSFMap, "writing_acsf_map"); err != nil {
		return fail(err.Error())
	}

	for _, band := range []string{domain.BandA2, domain.BandB1, domain.BandB2, domain.BandC1} {
		if _, ok := cfg.EquivalentTable[band]; !ok {
			return fail(fmt.Sprintf("equivalent_table missing band %s", band))
		}
	}

	return nil
}

// ValidateCourseRules checks the traffic-light rule set: a version, and
// every rule carrying an ID and recognized amber condition types.
func ValidateCourseRules(rs *domain.CourseRuleSet) error {
	fail := func(reason string) error {
		return &domain.ConfigValidationError{ConfigID: "courses", Version: rs.Version, Reason: reason}
	}

	if err := validate.Struct(rs); err != nil {
		return fail(err.Error())
	}

	for _, rule := range rs.Rules {
		for _, cond := range rule.Logic.AmberConditions {
			switch cond.Type {
			case domain.AmberOneThresholdMissedByOneBand,
				domain.AmberWritingBelowMinOnly,
				domain.AmberEquivalentBelowBy:
			default:
				return fail(fmt.Sprintf("rule %s: unknown amber condition type %q", rule.RuleID, cond.Type))
			}
		}
	}

	return nil
}
