package engine

import (
	"fmt"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// percentages indexes domain scores by domain for rule evaluation.
// A domain absent from the attempt is treated as not breaching anything.
func percentages(scores []domain.DomainScore) map[domain.SkillDomain]float64 {
	m := make(map[domain.SkillDomain]float64, len(scores))
	for _, ds := range scores {
		m[ds.Domain] = ds.Percentage
	}
	return m
}

// autoSupportSatisfied evaluates one auto-support rule against the
// per-domain percentages. Domains missing from the attempt never
// satisfy a below-threshold test.
func autoSupportSatisfied(rule domain.AutoSupportRule, pct map[domain.SkillDomain]float64) bool {
	below := func(d domain.SkillDomain, threshold float64) bool {
		p, ok := pct[d]
		return ok && p < threshold
	}

	switch rule.Condition {
	case domain.CondOR:
		for _, r := range rule.Rules {
			if below(r.Domain, r.Threshold) {
				return true
			}
		}
		return false

	case domain.CondAND:
		if len(rule.Rules) == 0 {
			return false
		}
		for _, r := range rule.Rules {
			if !below(r.Domain, r.Threshold) {
				return false
			}
		}
		return true

	case domain.CondSingle:
		if len(rule.Rules) == 0 {
			return false
		}
		return below(rule.Rules[0].Domain, rule.Rules[0].Threshold)

	case domain.CondAny2Core:
		count := 0
		for _, d := range rule.CoreDomains {
			if below(d, rule.Threshold) {
				count++
			}
		}
		return count >= 2

	default:
		return false
	}
}

// monitorCapSatisfied evaluates one monitor-cap rule.
func monitorCapSatisfied(rule domain.MonitorCapRule, pct map[domain.SkillDomain]float64) bool {
	switch rule.Condition {
	case domain.CapSingleBelow:
		p, ok := pct[rule.Domain]
		return ok && p < rule.Threshold

	case domain.CapMultiBelow:
		count := 0
		for _, p := range pct {
			if p < rule.Threshold {
				count++
			}
		}
		return count >= rule.Count

	default:
		return false
	}
}

// describeAutoSupport builds the audit reason for a fired rule.
func describeAutoSupport(rule domain.AutoSupportRule) string {
	switch rule.Condition {
	case domain.CondAny2Core:
		return fmt.Sprintf("auto_support: at least 2 of %v below %.0f%%", rule.CoreDomains, rule.Threshold)
	default:
		return fmt.Sprintf("auto_support: %s rule on %v satisfied", rule.Condition, rule.Rules)
	}
}

// ApplyOverrides runs the override ladder on a numerically derived
// outcome. Critical-domain failure is checked first, then auto-support
// rules in configured order with short-circuit, then monitor caps.
// Overrides only ever lower an outcome.
func ApplyOverrides(scores []domain.DomainScore, base domain.Outcome, cfg *domain.BenchmarkConfig) (domain.Outcome, bool, string) {
	pct := percentages(scores)

	for _, d := range cfg.CriticalDomains {
		p, ok := pct[d]
		if ok && p < cfg.CriticalFailThreshold {
			reason := fmt.Sprintf("critical domain %s at %.1f%% below fail threshold %.0f%%", d, p, cfg.CriticalFailThreshold)
			return domain.OutcomeSupportRequired, base != domain.OutcomeSupportRequired, reason
		}
	}

	for _, rule := range cfg.OverrideRules.AutoSupport {
		if autoSupportSatisfied(rule, pct) {
			return domain.OutcomeSupportRequired, base != domain.OutcomeSupportRequired, describeAutoSupport(rule)
		}
	}

	if base.RanksAbove(domain.OutcomeMonitor) {
		for _, rule := range cfg.OverrideRules.MonitorCap {
			if monitorCapSatisfied(rule, pct) {
				reason := fmt.Sprintf("monitor_cap: %s rule satisfied", rule.Condition)
				return domain.OutcomeMonitor, true, reason
			}
		}
	}

	return base, false, ""
}

// CollectRiskFlags raises an advisory flag for every domain sitting
// below its configured risk threshold. Flags never change outcomes.
func CollectRiskFlags(scores []domain.DomainScore, thresholds map[domain.SkillDomain]float64) []domain.RiskFlag {
	flags := make([]domain.RiskFlag, 0)
	for _, ds := range scores {
		threshold, ok := thresholds[ds.Domain]
		if !ok || ds.Percentage >= threshold {
			continue
		}
		flags = append(flags, domain.RiskFlag{
			Domain:     ds.Domain,
			Threshold:  threshold,
			Percentage: ds.Percentage,
			Delta:      Round1(threshold - ds.Percentage),
			Detail:     fmt.Sprintf("%s at %.1f%% is %.1f points below the %.0f%% risk threshold", ds.Domain, ds.Percentage, threshold-ds.Percentage, threshold),
		})
	}
	return flags
}
