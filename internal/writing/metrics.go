// Package writing implements the five-layer writing analysis pipeline:
// structural compliance, rule-based linguistic metrics and scores, the
// optional external rubric verdict, score reconciliation, and the
// integrity-aware confidence layer.
package writing

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/eduxlabs/llnd-engine/internal/domain"
)

// connectorWords are the discourse connectors counted for cohesion.
var connectorWords = []string{
	"however", "therefore", "although", "furthermore", "moreover",
	"nevertheless", "consequently", "in addition", "for example",
	"for instance", "as a result", "in contrast", "on the other hand",
	"similarly", "meanwhile", "in conclusion", "to sum up",
}

// stopWords are excluded from the repetition index so function words do
// not dominate the top-frequency bucket.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"to": {}, "of": {}, "in": {}, "and": {}, "or": {}, "for": {}, "on": {},
	"it": {}, "that": {}, "this": {}, "with": {}, "as": {}, "at": {},
	"by": {}, "not": {}, "be": {}, "i": {},
}

// complexMarkers signal subordination when present in a sentence.
var complexMarkers = []string{
	"because", "although", "which", "that", "if", "when", "while",
	"since", "unless", "where", "whereas", "who", "whom",
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	nonLetter      = regexp.MustCompile(`[^a-z']`)
	doubleSpace    = regexp.MustCompile(`  +`)
	lowerAfterStop = regexp.MustCompile(`\.\s+[a-z]`)
	wordToken      = regexp.MustCompile(`[A-Za-z']+`)
)

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// splitSentences returns the non-empty sentence fragments of a text.
func splitSentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// CountWords returns the whitespace-delimited word count of a text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountParagraphs returns the blank-line-delimited paragraph count,
// never less than one for non-empty text.
func CountParagraphs(text string) int {
	parts := paragraphSplit.Split(text, -1)
	count := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

// countRepeatedWords counts immediate word repetitions ("the the") as a
// proxy for typing errors.
func countRepeatedWords(text string) int {
	tokens := wordToken.FindAllString(strings.ToLower(text), -1)
	count := 0
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			count++
		}
	}
	return count
}

// ComputeMetrics measures the deterministic linguistic properties of a
// text. The structural and coverage fields of the returned RuleMetrics
// are left for the structural layer to fill in.
func ComputeMetrics(text string) domain.RuleMetrics {
	sentences := splitSentences(text)
	sentenceCount := len(sentences)
	words := strings.Fields(text)
	wordCount := len(words)

	var avgSentenceLength float64
	if sentenceCount > 0 {
		avgSentenceLength = float64(wordCount) / float64(sentenceCount)
	}

	lowered := strings.ToLower(text)

	connectorCount := 0
	for _, c := range connectorWords {
		connectorCount += countPhrase(lowered, c)
	}

	// Type-token ratio over normalized word forms.
	unique := make(map[string]struct{}, wordCount)
	for _, w := range words {
		unique[nonLetter.ReplaceAllString(strings.ToLower(w), "")] = struct{}{}
	}
	var typeTokenRatio float64
	if wordCount > 0 {
		typeTokenRatio = float64(len(unique)) / float64(wordCount)
	}

	// Repetition index: share of content-word tokens taken by the ten
	// most frequent content words.
	freq := make(map[string]int)
	for _, w := range words {
		normalized := nonLetter.ReplaceAllString(strings.ToLower(w), "")
		if len(normalized) > 2 {
			if _, stop := stopWords[normalized]; !stop {
				freq[normalized]++
			}
		}
	}
	counts := make([]int, 0, len(freq))
	contentWords := 0
	for _, n := range freq {
		counts = append(counts, n)
		contentWords += n
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	top10 := 0
	for i, n := range counts {
		if i >= 10 {
			break
		}
		top10 += n
	}
	var repetitionIndex float64
	if contentWords > 0 {
		repetitionIndex = float64(top10) / float64(contentWords)
	}

	complexSentences := 0
	for _, sent := range sentences {
		sentLower := strings.ToLower(sent)
		for _, m := range complexMarkers {
			if strings.Contains(sentLower, m) {
				complexSentences++
				break
			}
		}
	}
	var complexRatio float64
	if sentenceCount > 0 {
		complexRatio = float64(complexSentences) / float64(sentenceCount)
	}

	// Rough surface-error estimate from mechanical patterns. A grammar
	// service would replace this in a fuller deployment.
	estimatedErrors := len(doubleSpace.FindAllString(text, -1)) +
		len(lowerAfterStop.FindAllString(text, -1)) +
		countRepeatedWords(text)
	var errorRate float64
	if wordCount > 0 {
		errorRate = float64(estimatedErrors) / float64(wordCount) * 100
	}

	return domain.RuleMetrics{
		WordCount:            wordCount,
		SentenceCount:        sentenceCount,
		AvgSentenceLength:    round1(avgSentenceLength),
		ParagraphCount:       CountParagraphs(text),
		ConnectorCount:       connectorCount,
		TypeTokenRatio:       round2(typeTokenRatio),
		RepetitionIndex:      round2(repetitionIndex),
		ComplexSentenceRatio: round2(complexRatio),
		ErrorRatePer100:      round1(errorRate),
	}
}

// countPhrase counts non-overlapping whole-word occurrences of phrase in
// the already-lowercased text.
func countPhrase(lowered, phrase string) int {
	count := 0
	for idx := 0; ; {
		i := strings.Index(lowered[idx:], phrase)
		if i < 0 {
			break
		}
		start := idx + i
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordByte(lowered[start-1])
		afterOK := end == len(lowered) || !isWordByte(lowered[end])
		if beforeOK && afterOK {
			count++
		}
		idx = end
	}
	return count
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}
