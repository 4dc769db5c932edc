package rubric

import (
	"fmt"
	"strings"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// buildSystemPrompt returns the marker persona and output contract sent
// with every rubric request.
func buildSystemPrompt() string {
	return `You are an assessment marker for an English placement assessment.
You must score a candidate's writing using the analytic rubric across four domains:
1) Task Achievement
2) Coherence & Cohesion
3) Lexical Resource
4) Grammatical Range & Accuracy

Scoring scale for each domain: integer 0 to 5 only.

You must follow these rules:
- Output MUST be valid JSON only (no markdown, no extra text).
- Use the exact JSON schema provided in the user prompt.
- Scores must be integers from 0 to 5.
- Justifications must be brief and specific (1-2 sentences per domain).
- Do not reference any external tests or brands.
- Do not invent facts about the candidate.
- If the response is off-topic, incomplete, or fails core task requirements, Task Achievement must be 0-2 accordingly.
- Prefer cautious scoring. If uncertain between two scores, choose the lower score.

Band guidance (anchor expectations):
- B1: connected simple text; basic organisation; errors present but meaning generally clear.
- B2: clear, detailed writing; logical paragraphing; good vocabulary range; mostly controlled grammar.
- C1: well-structured argument; flexible cohesive devices; precise vocabulary; high grammatical control with rare slips.`
}

const responseSchema = `{
  "task_type": "%s",
  "domain_scores": {
    "task_achievement": <int 0-5>,
    "coherence_cohesion": <int 0-5>,
    "lexical_resource": <int 0-5>,
    "grammar_range_accuracy": <int 0-5>
  },
  "justifications": {
    "task_achievement": "<string>",
    "coherence_cohesion": "<string>",
    "lexical_resource": "<string>",
    "grammar_range_accuracy": "<string>"
  },
  "band_estimate": "<A2|B1|B2|C1>"
}`

// buildUserPrompt renders the task context, candidate text, and the
// deterministic structural findings into the marking request.
func buildUserPrompt(req ports.RubricRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Return JSON only using this schema:\n%s\n\n", fmt.Sprintf(responseSchema, req.Submission.TaskType))

	if req.Submission.TaskType == domain.TaskFunctional {
		b.WriteString("Task context:\n")
		b.WriteString("- Functional writing task, target level range: B1-B2\n")
		b.WriteString("- Word count target: 120-150 (tolerance 110-170)\n")
		b.WriteString("- Score using the rubric only.\n\n")
		fmt.Fprintf(&b, "Prompt:\n%s\n\n", req.Prompt.Prompt)

		b.WriteString("Requirements:\n")
		reqs := []string{req.Prompt.Requirement1, req.Prompt.Requirement2, req.Prompt.Requirement3}
		for i, r := range reqs {
			if r == "" {
				r = "N/A"
			}
			fmt.Fprintf(&b, "%d) %s\n", i+1, r)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Task context:\n")
		b.WriteString("- Extended writing task, target level range: B2-C1\n")
		b.WriteString("- Word count target: ~250 (tolerance 220-320)\n")
		b.WriteString("- Score using the rubric only.\n\n")
		fmt.Fprintf(&b, "Prompt:\n%s\n\n", req.Prompt.Prompt)
	}

	fmt.Fprintf(&b, "Candidate response:\n%s\n\n", req.Submission.Text)

	b.WriteString("Structural checks (from system):\n")
	fmt.Fprintf(&b, "- word_count: %d\n", req.Metrics.WordCount)
	fmt.Fprintf(&b, "- paragraph_count: %d\n", req.Metrics.ParagraphCount)
	fmt.Fprintf(&b, "- structural_pass: %t\n", req.Metrics.StructuralPass)
	fmt.Fprintf(&b, "- structural_notes: %q", req.Metrics.StructuralNotes)

	return b.String()
}
