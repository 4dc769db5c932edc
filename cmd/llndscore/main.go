// Command llndscore scores an assessment run described by a YAML input
// file and writes the resulting JSON report to stdout or a file.
//
// The input file carries the attempt metadata, the question set, the
// learner's responses, and optionally writing submissions, placement
// section counts, and a course to check suitability against. External
// rubric marking is enabled with -rubric-provider; the API key is read
// from OPENAI_API_KEY, ANTHROPIC_API_KEY, or GOOGLE_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/eduxlabs/llnd-engine/infrastructure/rubric"
	"github.com/eduxlabs/llnd-engine/internal/benchconfig"
	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/engine"
	"github.com/eduxlabs/llnd-engine/internal/placement"
	"github.com/eduxlabs/llnd-engine/internal/ports"
	"github.com/eduxlabs/llnd-engine/internal/writing"
)

// runInput is the YAML document describing one assessment run.
type runInput struct {
	Level string `yaml:"level"`

	Student struct {
		Name string `yaml:"name"`
		ID   string `yaml:"id"`
	} `yaml:"student"`

	AttemptID    string `yaml:"attempt_id"`
	Context      string `yaml:"context"`
	ProviderName string `yaml:"provider_name"`
	LogoURL      string `yaml:"logo_url"`
	SubmittedAt  int64  `yaml:"submitted_at"`

	Questions []domain.Question `yaml:"questions"`
	Responses []domain.Response `yaml:"responses"`

	Writing []writingTask `yaml:"writing"`

	Placement *placementInput `yaml:"placement"`

	Course *struct {
		CourseCode   string `yaml:"course_code"`
		DeliveryType string `yaml:"delivery_type"`
	} `yaml:"course"`
}

type writingTask struct {
	Submission domain.WritingSubmission    `yaml:"submission"`
	Prompt     domain.WritingPromptContext `yaml:"prompt"`
	Integrity  domain.IntegritySignals     `yaml:"integrity"`
}

type placementInput struct {
	GrammarCorrect int `yaml:"grammar_correct"`
	ReadingCorrect int `yaml:"reading_correct"`
}

// runOutput is the JSON document written for one run.
type runOutput struct {
	Report      *engine.Report                `json:"report,omitempty"`
	Writing     []domain.WritingScoringResult `json:"writing,omitempty"`
	Placement   *domain.PlacementResult       `json:"placement,omitempty"`
	Suitability *domain.SuitabilityResult     `json:"suitability,omitempty"`
}

func main() {
	var (
		inputPath      = flag.String("input", "", "Path to the YAML run description (required)")
		outputPath     = flag.String("output", "", "Path for the JSON output (default stdout)")
		rubricProvider = flag.String("rubric-provider", "", "External rubric provider: openai, anthropic, or google (default none)")
		rubricModel    = flag.String("rubric-model", "", "Override the provider's default model")
		timeout        = flag.Duration("timeout", 2*time.Minute, "Overall run timeout")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	var input runInput
	if err := yaml.Unmarshal(raw, &input); err != nil {
		log.Fatalf("Failed to parse input: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := benchconfig.NewStore()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var scorer ports.RubricScorer
	if *rubricProvider != "" {
		scorer, err = buildRubricScorer(*rubricProvider, *rubricModel)
		if err != nil {
			log.Fatalf("Failed to configure rubric provider: %v", err)
		}
	}

	output, err := run(ctx, store, scorer, input)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	encoded = append(encoded, '\n')

	if *outputPath == "" {
		os.Stdout.Write(encoded)
		return
	}
	if err := os.WriteFile(*outputPath, encoded, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Report written to %s\n", *outputPath)
}

// run executes every stage the input asks for: objective scoring,
// writing analysis, placement mapping, and course suitability.
func run(ctx context.Context, store *benchconfig.Store, scorer ports.RubricScorer, input runInput) (runOutput, error) {
	var output runOutput

	if len(input.Questions) > 0 {
		cfg, registered, err := store.ActiveBenchmark(ctx, input.Level)
		if err != nil {
			return output, err
		}
		if !registered {
			log.Printf("Using embedded fallback benchmark for level %s", input.Level)
		}

		result, err := engine.New().Score(ctx, cfg, input.Questions, input.Responses)
		if err != nil {
			return output, err
		}

		submittedAt := input.SubmittedAt
		if submittedAt == 0 {
			submittedAt = time.Now().UnixMilli()
		}
		report := engine.BuildReport(result, engine.ReportMeta{
			StudentName:  input.Student.Name,
			StudentID:    input.Student.ID,
			AttemptID:    input.AttemptID,
			Level:        input.Level,
			Context:      input.Context,
			ProviderName: input.ProviderName,
			LogoURL:      input.LogoURL,
			SubmittedAt:  submittedAt,
		})
		output.Report = &report
	}

	// Writing results feed placement as the two task score sets, keyed
	// by task type.
	var task1, task2 domain.WritingDomainScores
	if len(input.Writing) > 0 {
		opts := []writing.AnalyzerOption{}
		if scorer != nil {
			opts = append(opts, writing.WithRubricScorer(scorer))
		}
		analyzer := writing.NewAnalyzer(opts...)

		for _, task := range input.Writing {
			result, err := analyzer.Analyze(ctx, task.Submission, task.Prompt, task.Integrity)
			if err != nil {
				return output, fmt.Errorf("analyzing submission %s: %w", task.Submission.SubmissionID, err)
			}
			output.Writing = append(output.Writing, result)

			switch task.Submission.TaskType {
			case domain.TaskFunctional:
				task1 = result.FinalScores
			case domain.TaskExtended:
				task2 = result.FinalScores
			}
		}
	}

	if input.Placement != nil {
		cfg, err := store.Placement(ctx)
		if err != nil {
			return output, err
		}
		result, err := placement.NewMapper(cfg).Score(ctx, domain.PlacementInput{
			GrammarCorrect: input.Placement.GrammarCorrect,
			ReadingCorrect: input.Placement.ReadingCorrect,
			Task1:          task1,
			Task2:          task2,
		})
		if err != nil {
			return output, err
		}
		output.Placement = &result

		if input.Course != nil {
			ruleSet, err := store.CourseRules(ctx)
			if err != nil {
				return output, err
			}
			verdict := placement.EvaluateSuitability(ruleSet, domain.SuitabilityCandidate{
				OverallBand:     result.OverallFinal,
				ReadingBand:     result.ReadingBand,
				WritingBand:     result.WritingBand,
				EquivalentScore: result.EquivalentScore,
				CourseCode:      input.Course.CourseCode,
				DeliveryType:    input.Course.DeliveryType,
			})
			output.Suitability = &verdict
		}
	}

	return output, nil
}

// buildRubricScorer wires the provider client with the standard
// middleware chain: retries inside the rate limiter inside a
// per-request timeout.
func buildRubricScorer(provider, model string) (ports.RubricScorer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	switch provider {
	case "anthropic":
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	case "google":
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	return rubric.NewClient(provider, rubric.ClientConfig{
		APIKey: apiKey,
		Model:  model,
		Middleware: []rubric.Middleware{
			rubric.TimeoutMiddleware(30 * time.Second),
			rubric.RateLimitMiddleware(rate.Limit(2), 4),
			rubric.RetryMiddleware(3, time.Second, 10*time.Second),
		},
	})
}
