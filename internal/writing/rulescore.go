package writing

import "github.com/eduxlabs/llnd-engine/internal/domain"

func clamp05(v int) int {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// scoreTaskAchievement bands task achievement from coverage and length.
func scoreTaskAchievement(m domain.RuleMetrics, taskType domain.TaskType) int {
	if taskType == domain.TaskFunctional {
		var ta int
		switch {
		case m.WordCount < functionalHardFloor:
			ta = 1
			if m.WordCount < 30 {
				ta = 0
			}
		case !m.StructuralPass && m.PromptCoverage <= 1:
			ta = 1
		case m.PromptCoverage == 1:
			ta = 2
		case m.PromptCoverage == 2:
			ta = 3
		case m.PromptCoverage >= 3 && m.WordCount >= 120 && m.WordCount <= 150:
			ta = 5
		case m.PromptCoverage >= 3 && m.WordCount >= 110 && m.WordCount <= 170:
			ta = 4
		default:
			ta = 3
		}
		if !m.StructuralPass && ta > 2 {
			ta = 2
		}
		return ta
	}

	switch {
	case m.WordCount < extendedHardFloor || m.ParagraphCount < 2:
		return 1
	case m.PromptCoverage == 0:
		return 2
	case m.PromptCoverage == 1:
		return 3
	case m.PromptCoverage == 2:
		return 4
	default:
		return 5
	}
}

// scoreCoherence bands coherence and cohesion from paragraphing and
// connector density.
func scoreCoherence(m domain.RuleMetrics) int {
	switch {
	case m.ParagraphCount <= 1:
		return 1
	case m.ParagraphCount == 2 && m.ConnectorCount < 2:
		return 2
	case m.ParagraphCount >= 2 && m.ConnectorCount >= 2 && m.ConnectorCount <= 4:
		return 3
	case m.ParagraphCount >= 3 && m.ConnectorCount >= 4 && m.ConnectorCount <= 7:
		return 4
	case m.ParagraphCount >= 3 && m.ConnectorCount >= 8:
		return 5
	default:
		return 3
	}
}

// scoreLexical bands lexical resource from type-token ratio and the
// repetition index.
func scoreLexical(m domain.RuleMetrics) int {
	switch {
	case m.TypeTokenRatio < 0.32 || m.RepetitionIndex > 0.55:
		return 1
	case m.TypeTokenRatio < 0.38 && m.RepetitionIndex > 0.45:
		return 2
	case m.TypeTokenRatio < 0.45 && m.RepetitionIndex > 0.35:
		return 3
	case m.TypeTokenRatio < 0.52 && m.RepetitionIndex > 0.28:
		return 4
	case m.TypeTokenRatio >= 0.52 && m.RepetitionIndex < 0.28:
		return 5
	default:
		return 3
	}
}

// scoreGrammar bands grammar from the estimated error rate, then nudges
// the band by subordination range.
func scoreGrammar(m domain.RuleMetrics) int {
	var gra int
	switch {
	case m.ErrorRatePer100 > 14:
		gra = 1
	case m.ErrorRatePer100 >= 10:
		gra = 2
	case m.ErrorRatePer100 >= 6:
		gra = 3
	case m.ErrorRatePer100 >= 3:
		gra = 4
	default:
		gra = 5
	}

	if m.ComplexSentenceRatio < 0.15 && gra >= 4 {
		gra--
	}
	if m.ComplexSentenceRatio > 0.35 && m.ErrorRatePer100 <= 5 && gra < 5 {
		gra++
	}
	return gra
}

// ScoreFromRules derives the four deterministic domain scores from
// layer-1 and layer-2 measurements.
func ScoreFromRules(m domain.RuleMetrics, taskType domain.TaskType) domain.WritingDomainScores {
	return domain.WritingDomainScores{
		TaskAchievement:      clamp05(scoreTaskAchievement(m, taskType)),
		CoherenceCohesion:    clamp05(scoreCoherence(m)),
		LexicalResource:      clamp05(scoreLexical(m)),
		GrammarRangeAccuracy: clamp05(scoreGrammar(m)),
	}
}
