// Package placement maps section scores onto proficiency bands and
// evaluates course suitability. All mapping is table-driven from a
// versioned placement configuration; the code contains no cutoff
// numbers of its own.
package placement

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// Section weights for the 0-100 composite: grammar counts raw, reading
// and the extended writing task are scaled 1.5x.
const (
	readingScale      = 1.5
	extendedTaskScale = 1.5
)

// bandFromCutoffs resolves a score against a cutoff table. Tables are
// validated at load time, so a miss here is reported as a
// BandLookupError rather than silently defaulted.
func bandFromCutoffs(score float64, cutoffs []domain.BandCutoff, table, version string) (string, error) {
	for _, row := range cutoffs {
		if score >= row.Min && score <= row.Max {
			return row.Band, nil
		}
	}
	return "", &domain.BandLookupError{Table: table, Score: score, Version: version}
}

// acsfFromMap resolves a score against an ACSF mapping table.
func acsfFromMap(score float64, mapping []domain.ACSFCutoff, table, version string) (int, error) {
	for _, row := range mapping {
		if score >= row.Min && score <= row.Max {
			return row.Band, nil
		}
	}
	return 0, &domain.BandLookupError{Table: table, Score: score, Version: version}
}

// Mapper performs band mapping against one placement configuration.
//
// Concurrency: Mapper is immutable after construction and safe for
// concurrent use.
type Mapper struct {
	cfg    domain.PlacementConfig
	tracer trace.Tracer
}

// NewMapper creates a band mapper for the given configuration. The
// configuration is assumed to have passed load-time validation.
func NewMapper(cfg domain.PlacementConfig) *Mapper {
	return &Mapper{cfg: cfg, tracer: otel.Tracer("placement-mapper")}
}

// Score maps section results to bands: composite computation, per-skill
// and overall band lookup, the skill-floor cap, the equivalent score,
// and ACSF levels. Every decision is appended to the audit log.
func (m *Mapper) Score(ctx context.Context, input domain.PlacementInput) (domain.PlacementResult, error) {
	_, span := m.tracer.Start(ctx, "Mapper.Score",
		trace.WithAttributes(attribute.String("placement.version", m.cfg.Version)),
	)
	defer span.End()

	audit := make([]domain.AuditStep, 0, 5)

	grammarScore := float64(input.GrammarCorrect)
	readingScore := float64(input.ReadingCorrect) * readingScale

	t1Raw := input.Task1.RawTotal()
	t2Raw := input.Task2.RawTotal()

	task1Score := float64(t1Raw)
	task2Score := float64(t2Raw) * extendedTaskScale
	writingRawTotal := float64(t1Raw + t2Raw)

	composite := grammarScore + readingScore + task1Score + task2Score

	audit = append(audit, domain.AuditStep{Step: "section_scores", Detail: map[string]any{
		"grammar_score":       grammarScore,
		"reading_score":       readingScore,
		"writing_task1_score": task1Score,
		"writing_task2_score": task2Score,
		"writing_raw_total":   writingRawTotal,
		"composite_score":     composite,
	}})

	readingBand, err := bandFromCutoffs(readingScore, m.cfg.ReadingCutoffs, "reading_cutoffs", m.cfg.Version)
	if err != nil {
		span.RecordError(err)
		return domain.PlacementResult{}, err
	}
	writingBand, err := bandFromCutoffs(writingRawTotal, m.cfg.WritingCutoffs, "writing_cutoffs", m.cfg.Version)
	if err != nil {
		span.RecordError(err)
		return domain.PlacementResult{}, err
	}
	overallPre, err := bandFromCutoffs(composite, m.cfg.OverallCutoffs, "overall_cutoffs", m.cfg.Version)
	if err != nil {
		span.RecordError(err)
		return domain.PlacementResult{}, err
	}

	audit = append(audit, domain.AuditStep{Step: "bands_pre_floor", Detail: map[string]any{
		"reading_band": readingBand,
		"writing_band": writingBand,
		"overall_pre":  overallPre,
	}})

	overallFinal := overallPre
	skillFloorApplied := false
	skillFloorReason := ""

	if m.cfg.SkillFloorEnabled {
		overallFinal = domain.MinBand(overallPre, readingBand, writingBand)
		if overallFinal != overallPre {
			skillFloorApplied = true
			reasons := make([]string, 0, 2)
			if domain.BandRank(readingBand) < domain.BandRank(overallPre) {
				reasons = append(reasons, "Reading")
			}
			if domain.BandRank(writingBand) < domain.BandRank(overallPre) {
				reasons = append(reasons, "Writing")
			}
			skillFloorReason = "Capped by " + joinAnd(reasons)
		}
	}

	audit = append(audit, domain.AuditStep{Step: "skill_floor", Detail: map[string]any{
		"overall_final":       overallFinal,
		"skill_floor_applied": skillFloorApplied,
		"skill_floor_reason":  skillFloorReason,
	}})

	equivalent, pos := m.equivalentScore(composite, overallFinal)
	audit = append(audit, domain.AuditStep{Step: "equivalent_score", Detail: map[string]any{
		"position":   pos,
		"equivalent": equivalent,
	}})

	readingACSF, err := acsfFromMap(readingScore, m.cfg.ReadingACSFMap, "reading_acsf_map", m.cfg.Version)
	if err != nil {
		span.RecordError(err)
		return domain.PlacementResult{}, err
	}
	writingACSF, err := acsfFromMap(writingRawTotal, m.cfg.WritingACSFMap, "writing_acsf_map", m.cfg.Version)
	if err != nil {
		span.RecordError(err)
		return domain.PlacementResult{}, err
	}

	audit = append(audit, domain.AuditStep{Step: "acsf", Detail: map[string]any{
		"reading_acsf": readingACSF,
		"writing_acsf": writingACSF,
	}})

	span.SetAttributes(
		attribute.Float64("placement.composite", composite),
		attribute.String("placement.overall_final", overallFinal),
		attribute.Bool("placement.skill_floor_applied", skillFloorApplied),
	)

	return domain.PlacementResult{
		GrammarScore:      grammarScore,
		ReadingScore:      readingScore,
		WritingTask1Score: task1Score,
		WritingTask2Score: task2Score,
		WritingRawTotal:   writingRawTotal,
		CompositeScore:    composite,
		ReadingBand:       readingBand,
		WritingBand:       writingBand,
		OverallPreFloor:   overallPre,
		OverallFinal:      overallFinal,
		SkillFloorApplied: skillFloorApplied,
		SkillFloorReason:  skillFloorReason,
		EquivalentScore:   equivalent,
		ReadingACSF:       readingACSF,
		WritingACSF:       writingACSF,
		Audit:             audit,
	}, nil
}

// equivalentScore picks the low/mid/high equivalent-score label from the
// candidate's position inside the final band's overall cutoff range.
// Position is measured against the row the composite falls into, so a
// skill-floored band still reads its own row when one matches.
func (m *Mapper) equivalentScore(composite float64, overallFinal string) (string, string) {
	var row *domain.BandCutoff
	for i := range m.cfg.OverallCutoffs {
		r := &m.cfg.OverallCutoffs[i]
		if r.Band == overallFinal && composite >= r.Min && composite <= r.Max {
			row = r
			break
		}
	}
	if row == nil {
		for i := range m.cfg.OverallCutoffs {
			r := &m.cfg.OverallCutoffs[i]
			if composite >= r.Min && composite <= r.Max {
				row = r
				break
			}
		}
	}

	if row == nil {
		return "N/A", "mid"
	}

	p := 1.0
	if row.Max != row.Min {
		p = (composite - row.Min) / (row.Max - row.Min)
	}
	pos := "mid"
	if p < 0.33 {
		pos = "low"
	} else if p > 0.66 {
		pos = "high"
	}

	ranges, ok := m.cfg.EquivalentTable[overallFinal]
	if !ok {
		return "N/A", pos
	}
	switch pos {
	case "low":
		return ranges.Low, pos
	case "high":
		return ranges.High, pos
	default:
		return ranges.Mid, pos
	}
}

func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + " and " + parts[1]
	}
}
