package rubric

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// assessmentPayload mirrors the JSON schema the provider is asked to
// return.
type assessmentPayload struct {
	TaskType       string             `json:"task_type"`
	DomainScores   map[string]float64 `json:"domain_scores"`
	Justifications map[string]string  `json:"justifications"`
	BandEstimate   string             `json:"band_estimate"`
}

// stripFences removes a surrounding markdown code fence, which some
// models add despite the JSON-only instruction.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// clampScore rounds and clamps a raw score into the 0-5 integer scale.
func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 0 {
		return 0
	}
	if score > 5 {
		return 5
	}
	return score
}

// parseAssessment decodes a provider response into a rubric assessment.
// Scores are rounded and clamped so a slightly off-contract response
// still yields usable integers; a response without domain scores fails.
func parseAssessment(raw string) (domain.RubricAssessment, error) {
	var payload assessmentPayload
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return domain.RubricAssessment{}, fmt.Errorf("%w: %v", ErrMalformedAssessment, err)
	}
	if len(payload.DomainScores) == 0 {
		return domain.RubricAssessment{}, fmt.Errorf("%w: missing domain_scores", ErrMalformedAssessment)
	}

	var scores domain.WritingDomainScores
	for _, name := range domain.WritingDomainNames {
		raw, ok := payload.DomainScores[name]
		if !ok {
			return domain.RubricAssessment{}, fmt.Errorf("%w: missing score for %s", ErrMalformedAssessment, name)
		}
		scores.SetByName(name, clampScore(raw))
	}

	return domain.RubricAssessment{
		Scores:         scores,
		Justifications: payload.Justifications,
		BandEstimate:   payload.BandEstimate,
	}, nil
}
