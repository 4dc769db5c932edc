package writing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

func functionalCheck(text string, requirements []string) structuralResult {
	return checkStructural(text, domain.TaskFunctional, CountWords(text), CountParagraphs(text), requirements)
}

// TestCheckStructuralFunctionalWordCount verifies the hard and soft
// word-count floors for the functional task.
func TestCheckStructuralFunctionalWordCount(t *testing.T) {
	t.Run("below hard floor fails", func(t *testing.T) {
		res := functionalCheck(strings.Repeat("word ", 60), nil)
		assert.False(t, res.pass)
		assert.Contains(t, res.notes, "Severely under word count (< 80 words)")
	})

	t.Run("below soft floor passes with note", func(t *testing.T) {
		res := functionalCheck(strings.Repeat("word ", 95), nil)
		assert.True(t, res.pass)
		assert.Contains(t, res.notes, "Below recommended word count (< 110 words)")
	})

	t.Run("at target passes cleanly", func(t *testing.T) {
		res := functionalCheck(strings.Repeat("word ", 130), nil)
		assert.True(t, res.pass)
		assert.Equal(t, "Structural checks passed", res.notes)
	})
}

// TestCoverageForRequirements verifies keyword-based coverage, including
// misspelling tolerance.
func TestCoverageForRequirements(t *testing.T) {
	requirements := []string{
		"explain the delivery schedule",
		"apologise for the delay",
		"offer a discount",
	}

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "no requirements addressed", text: "Hello, I am writing to you today.", want: 0},
		{
			name: "two requirements addressed",
			text: "I apologise for the problem. The new schedule is attached.",
			want: 2,
		},
		{
			name: "all three addressed",
			text: "I apologise for the delay. The delivery schedule has changed and we will offer a ten percent discount.",
			want: 3,
		},
		{
			name: "misspelled keyword still counts",
			text: "The new shedule is attached for your review.",
			want: 1,
		},
		{
			name: "short keywords are ignored as evidence",
			text: "for the a an",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coverageForRequirements(tt.text, requirements))
		})
	}
}

// TestCheckStructuralExtended verifies the extended-task checks: word
// count, paragraphing, and the position/contrast/conclusion coverage.
func TestCheckStructuralExtended(t *testing.T) {
	buildEssay := func(words int, paragraphs int, markers string) string {
		filler := strings.Repeat("word ", words)
		parts := make([]string, 0, paragraphs)
		for i := 0; i < paragraphs; i++ {
			parts = append(parts, filler)
		}
		return markers + " " + strings.Join(parts, "\n\n")
	}

	t.Run("short essay fails", func(t *testing.T) {
		text := buildEssay(40, 2, "")
		res := checkStructural(text, domain.TaskExtended, CountWords(text), CountParagraphs(text), nil)
		assert.False(t, res.pass)
		assert.Contains(t, res.notes, "Severely under word count (< 150 words)")
	})

	t.Run("single paragraph is noted but not failed", func(t *testing.T) {
		text := buildEssay(230, 1, "")
		res := checkStructural(text, domain.TaskExtended, CountWords(text), CountParagraphs(text), nil)
		assert.True(t, res.pass)
		assert.Contains(t, res.notes, "Insufficient paragraphing (< 2 paragraphs)")
	})

	t.Run("discourse moves count toward coverage", func(t *testing.T) {
		text := buildEssay(120, 2, "In my opinion this is right. However, others disagree. In conclusion, the benefits win.")
		res := checkStructural(text, domain.TaskExtended, CountWords(text), CountParagraphs(text), nil)
		assert.Equal(t, 3, res.coverage)
	})

	t.Run("no discourse moves means zero coverage", func(t *testing.T) {
		text := buildEssay(240, 3, "")
		res := checkStructural(text, domain.TaskExtended, CountWords(text), CountParagraphs(text), nil)
		assert.Equal(t, 0, res.coverage)
	})
}
