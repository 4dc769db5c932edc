package writing

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// Word-count floors per task type. Falling below the hard floor fails
// the structural check; the soft floor only adds a note.
const (
	functionalHardFloor = 80
	functionalSoftFloor = 110
	extendedHardFloor   = 150
	extendedSoftFloor   = 220
)

// positionMarkers signal an explicit opinion in extended writing.
var positionMarkers = []string{
	"i believe", "in my opinion", "i think", "i agree", "i disagree",
	"my view", "i would argue",
}

// contrastMarkers signal engagement with the opposing side.
var contrastMarkers = []string{
	"however", "on the other hand", "although", "while", "conversely",
	"opponents", "some people", "others",
}

// conclusionMarkers signal a closing summary.
var conclusionMarkers = []string{
	"in conclusion", "to sum up", "overall", "in summary", "to conclude",
}

// structuralResult is the layer-1 output merged into RuleMetrics.
type structuralResult struct {
	pass     bool
	notes    string
	coverage int
}

// keywordPresent reports whether a requirement keyword appears in the
// text, either as a substring or as a word within edit distance one,
// which tolerates simple misspellings in candidate writing.
func keywordPresent(textLower string, textWords []string, keyword string) bool {
	if strings.Contains(textLower, keyword) {
		return true
	}
	for _, w := range textWords {
		if levenshtein.ComputeDistance(w, keyword) <= 1 {
			return true
		}
	}
	return false
}

// coverageForRequirements counts how many named requirements the text
// addresses, using keywords longer than four characters from each
// requirement as evidence.
func coverageForRequirements(text string, requirements []string) int {
	textLower := strings.ToLower(text)
	textWords := strings.Fields(textLower)
	coverage := 0
	for _, req := range requirements {
		found := false
		for _, kw := range strings.Fields(strings.ToLower(req)) {
			if len(kw) > 4 && keywordPresent(textLower, textWords, kw) {
				found = true
				break
			}
		}
		if found {
			coverage++
		}
	}
	return coverage
}

func anyMarker(textLower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(textLower, m) {
			return true
		}
	}
	return false
}

// checkStructural runs the layer-1 compliance checks. Functional tasks
// are checked for word count and requirement coverage; extended tasks
// for word count, paragraphing, and the presence of a position, a
// contrast, and a conclusion.
func checkStructural(text string, taskType domain.TaskType, wordCount, paragraphCount int, requirements []string) structuralResult {
	var notes []string
	pass := true
	coverage := 0
	textLower := strings.ToLower(text)

	if taskType == domain.TaskFunctional {
		if wordCount < functionalHardFloor {
			pass = false
			notes = append(notes, "Severely under word count (< 80 words)")
		} else if wordCount < functionalSoftFloor {
			notes = append(notes, "Below recommended word count (< 110 words)")
		}
		coverage = coverageForRequirements(text, requirements)
	} else {
		if wordCount < extendedHardFloor {
			pass = false
			notes = append(notes, "Severely under word count (< 150 words)")
		} else if wordCount < extendedSoftFloor {
			notes = append(notes, "Below recommended word count (< 220 words)")
		}

		if paragraphCount < 2 {
			notes = append(notes, "Insufficient paragraphing (< 2 paragraphs)")
		}

		if anyMarker(textLower, positionMarkers) {
			coverage++
		}
		if anyMarker(textLower, contrastMarkers) {
			coverage++
		}
		if anyMarker(textLower, conclusionMarkers) {
			coverage++
		}
	}

	joined := strings.Join(notes, "; ")
	if joined == "" {
		joined = "Structural checks passed"
	}

	return structuralResult{pass: pass, notes: joined, coverage: coverage}
}
