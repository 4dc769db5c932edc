package engine

import (
	"fmt"
	"time"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// ReportMeta carries the attempt and provider identity a report is
// rendered with. None of it affects scoring.
type ReportMeta struct {
	StudentName  string `json:"student_name"`
	StudentID    string `json:"student_id"`
	AttemptID    string `json:"attempt_id"`
	Level        string `json:"level"`
	Context      string `json:"context"`
	ProviderName string `json:"provider_name"`
	LogoURL      string `json:"logo_url,omitempty"`
	SubmittedAt  int64  `json:"submitted_at"`
}

// ReportStudent identifies the learner in a report.
type ReportStudent struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ReportAssessment describes the attempt a report covers.
type ReportAssessment struct {
	AttemptID   string `json:"attempt_id"`
	Level       string `json:"level"`
	LevelName   string `json:"level_name"`
	Context     string `json:"context"`
	SubmittedAt int64  `json:"submitted_at"`
}

// ReportBranding carries provider presentation details.
type ReportBranding struct {
	ProviderName string `json:"provider_name"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// ReportOverall summarizes the attempt-level result.
type ReportOverall struct {
	Score        float64  `json:"score"`
	OutcomeCode  string   `json:"outcome_code"`
	OutcomeLabel string   `json:"outcome_label"`
	KeyFlags     []string `json:"key_flags"`
}

// ReportACSFBreakdown is the sub-band percentage triple for one domain.
type ReportACSFBreakdown struct {
	ACSF2Percent        float64 `json:"acsf2_percent"`
	ACSF3CorePercent    float64 `json:"acsf3_core_percent"`
	ACSF3StretchPercent float64 `json:"acsf3_stretch_percent"`
}

// ReportDomain is the per-domain section of a report.
type ReportDomain struct {
	Name              string              `json:"name"`
	Percentage        float64             `json:"percentage"`
	RawScore          float64             `json:"raw_score"`
	MaxScore          float64             `json:"max_score"`
	Outcome           string              `json:"outcome"`
	EstimatedACSFBand string              `json:"estimated_acsf_band"`
	ACSFBreakdown     ReportACSFBreakdown `json:"acsf_breakdown"`
	Justification     string              `json:"justification"`
	Strategies        []string            `json:"strategies"`
}

// Report is the JSON report structure rendered from a scoring result.
// It is derived data: regenerating from the same result always produces
// the same report apart from the generation timestamp.
type Report struct {
	Version     string           `json:"version"`
	GeneratedAt int64            `json:"generated_at"`
	Student     ReportStudent    `json:"student"`
	Assessment  ReportAssessment `json:"assessment"`
	Branding    ReportBranding   `json:"branding"`
	Overall     ReportOverall    `json:"overall"`
	Domains     []ReportDomain   `json:"domains"`
}

// BuildReport renders a scoring result into the report structure.
func BuildReport(result domain.ScoringResult, meta ReportMeta) Report {
	keyFlags := make([]string, 0)
	for _, ds := range result.DomainScores {
		if ds.Outcome == domain.OutcomeSupportRequired {
			keyFlags = append(keyFlags, fmt.Sprintf("%s below benchmark", ds.Domain))
		}
	}

	domains := make([]ReportDomain, 0, len(result.DomainScores))
	for _, ds := range result.DomainScores {
		domains = append(domains, ReportDomain{
			Name:              string(ds.Domain),
			Percentage:        ds.Percentage,
			RawScore:          ds.RawScore,
			MaxScore:          ds.MaxScore,
			Outcome:           string(ds.Outcome),
			EstimatedACSFBand: ds.EstimatedBand,
			ACSFBreakdown: ReportACSFBreakdown{
				ACSF2Percent:        ds.SubBands.ACSF2Percent,
				ACSF3CorePercent:    ds.SubBands.ACSF3CorePercent,
				ACSF3StretchPercent: ds.SubBands.ACSF3StretchPercent,
			},
			Justification: ds.Justification,
			Strategies:    ds.Strategies,
		})
	}

	return Report{
		Version:     result.ConfigVersion,
		GeneratedAt: time.Now().UnixMilli(),
		Student:     ReportStudent{Name: meta.StudentName, ID: meta.StudentID},
		Assessment: ReportAssessment{
			AttemptID:   meta.AttemptID,
			Level:       meta.Level,
			LevelName:   LevelName(meta.Level),
			Context:     meta.Context,
			SubmittedAt: meta.SubmittedAt,
		},
		Branding: ReportBranding{ProviderName: meta.ProviderName, LogoURL: meta.LogoURL},
		Overall: ReportOverall{
			Score:        result.TotalScore,
			OutcomeCode:  string(result.OverallOutcome),
			OutcomeLabel: result.OverallLabel,
			KeyFlags:     keyFlags,
		},
		Domains: domains,
	}
}
