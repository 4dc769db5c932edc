package engine

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// sentenceConjunctions are the connective words that count as evidence of
// sentence structure when no period or line break is present.
var sentenceConjunctions = map[string]struct{}{
	"and": {}, "but": {}, "so": {}, "then": {}, "because": {}, "however": {},
}

// prepareAnswer normalizes an answer for objective comparison: trim, then
// Unicode-aware case folding. Folding handles characters that
// strings.ToLower gets wrong.
func prepareAnswer(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// scoreObjective grades an MCQ or numeric item. MCQ answers match by
// folded exact comparison; numeric answers compare within the configured
// absolute tolerance. A blank answer or missing answer key scores zero.
func scoreObjective(q domain.Question, answer string, tolerance float64) (float64, bool) {
	if answer == "" || q.ExpectedAnswer == "" {
		return 0, false
	}

	normalized := prepareAnswer(answer)
	expected := prepareAnswer(q.ExpectedAnswer)

	if q.ResponseType == domain.ResponseNumeric {
		answerNum, errA := strconv.ParseFloat(normalized, 64)
		expectedNum, errE := strconv.ParseFloat(expected, 64)
		if errA != nil || errE != nil {
			return 0, false
		}
		diff := answerNum - expectedNum
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			return q.MaxScore, true
		}
		return 0, false
	}

	if normalized == expected {
		return q.MaxScore, true
	}
	return 0, false
}

// shortTextFeatures holds the marker-word and structure checks the
// free-text ladder evaluates once per answer.
type shortTextFeatures struct {
	wordCount  int
	structured bool
	hasCause   bool
	hasImpact  bool
	hasRequest bool
	hasDepth   bool
	hasReason  bool
}

func extractShortTextFeatures(text string, rubric domain.WritingRubricConfig) shortTextFeatures {
	lowered := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(lowered)

	f := shortTextFeatures{wordCount: len(words)}

	f.structured = strings.Contains(lowered, ".") || strings.Contains(lowered, "\n")
	if !f.structured {
		for _, w := range words {
			if _, ok := sentenceConjunctions[strings.Trim(w, ",;:!?")]; ok {
				f.structured = true
				break
			}
		}
	}

	contains := func(markers []string) bool {
		for _, m := range markers {
			if strings.Contains(lowered, m) {
				return true
			}
		}
		return false
	}
	f.hasCause = contains(rubric.CauseWords)
	f.hasImpact = contains(rubric.ImpactWords)
	f.hasRequest = contains(rubric.RequestWords)
	f.hasDepth = contains(rubric.DepthWords)
	f.hasReason = contains(rubric.ReasonWords)

	return f
}

// scoreShortText grades a constructed response on the deterministic
// rubric ladder. Levels 0-3 follow the base ladder; ceilings above 3
// extend it monotonically with length and marker-category requirements,
// so raising the ceiling can never lower an existing score.
func scoreShortText(q domain.Question, answer string, cfg *domain.BenchmarkConfig) (float64, bool) {
	if strings.TrimSpace(answer) == "" {
		return 0, false
	}

	rubric := cfg.WritingRubric
	f := extractShortTextFeatures(answer, rubric)

	minWords := rubric.MinWordsLevel3
	if q.Level == 2 {
		minWords = rubric.MinWordsLevel2
	}

	score := 0

	if f.wordCount >= 3 && f.wordCount < minWords {
		score = 1
	}

	if f.wordCount >= minWords && f.structured {
		score = 2

		// Level 3 reached when the answer shows the markers the item's
		// level and difficulty call for.
		switch {
		case q.Level >= 3 && q.Difficulty == domain.DifficultyStretch:
			if f.hasCause && f.hasImpact {
				score = 3
			}
		case q.Level >= 3:
			if f.hasRequest || f.hasCause {
				score = 3
			}
		default:
			if f.hasCause || f.wordCount >= minWords*3/2 {
				score = 3
			}
		}
	}

	// Extended ladder for scale ceilings above 3. Each step adds a
	// length floor and a marker requirement on top of the previous one.
	if score == 3 && cfg.WritingScaleMax >= 4 {
		markerCategories := 0
		for _, present := range []bool{f.hasCause, f.hasImpact, f.hasRequest} {
			if present {
				markerCategories++
			}
		}
		if f.wordCount >= minWords*2 && markerCategories >= 2 {
			score = 4
		}
	}
	if score == 4 && cfg.WritingScaleMax >= 5 && f.hasDepth {
		score = 5
	}
	if score == 5 && cfg.WritingScaleMax >= 6 && f.hasReason && f.wordCount >= minWords*3 {
		score = 6
	}

	if float64(score) > q.MaxScore {
		score = int(q.MaxScore)
	}
	if score > cfg.WritingScaleMax {
		score = cfg.WritingScaleMax
	}

	return float64(score), float64(score) == q.MaxScore
}

// ScoreItems grades every question against the learner's responses.
// Missing responses score zero rather than erroring; an unknown response
// type is a question-set defect and fails the run.
func ScoreItems(questions []domain.Question, responses []domain.Response, cfg *domain.BenchmarkConfig) ([]domain.ItemScore, error) {
	if len(questions) == 0 {
		return nil, domain.ErrEmptyQuestionSet
	}

	answers := make(map[string]string, len(responses))
	for _, r := range responses {
		answers[r.QuestionID] = r.Answer
	}

	items := make([]domain.ItemScore, 0, len(questions))
	for _, q := range questions {
		answer := answers[q.ID]

		var (
			awarded float64
			correct bool
		)
		switch q.ResponseType {
		case domain.ResponseMCQ, domain.ResponseNumeric:
			awarded, correct = scoreObjective(q, answer, cfg.NumericTolerance)
		case domain.ResponseShortText:
			awarded, correct = scoreShortText(q, answer, cfg)
		default:
			return nil, domain.ErrUnknownResponseType
		}

		items = append(items, domain.ItemScore{
			QuestionID:   q.ID,
			Domain:       q.Domain,
			Level:        q.Level,
			Difficulty:   q.Difficulty,
			ResponseType: q.ResponseType,
			ScoreAwarded: awarded,
			MaxScore:     q.MaxScore,
			IsCorrect:    correct,
		})
	}

	return items, nil
}
