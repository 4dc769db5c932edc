package rubric

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

const validVerdict = `{
	"domain_scores": {
		"task_achievement": 3,
		"coherence_cohesion": 4,
		"lexical_resource": 3,
		"grammar_range_accuracy": 3
	},
	"band_estimate": "B1"
}`

// cannedModel is a provider stub returning a fixed body.
type cannedModel struct {
	body  string
	err   error
	calls int
}

func (m *cannedModel) DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error) {
	m.calls++
	return m.body, m.err
}

func (m *cannedModel) GetModel() string { return "canned-v1" }

// registerCanned installs a factory producing the given stub under a
// test-unique provider name.
func registerCanned(t *testing.T, model CoreModel) string {
	t.Helper()
	name := "canned-" + t.Name()
	RegisterProviderFactory(name, func(ClientConfig) (CoreModel, error) {
		return model, nil
	})
	return name
}

// TestNewClientValidation verifies construction guards.
func TestNewClientValidation(t *testing.T) {
	t.Run("empty api key", func(t *testing.T) {
		_, err := NewClient("openai", ClientConfig{})
		assert.ErrorIs(t, err, ErrEmptyAPIKey)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewClient("delphi", ClientConfig{APIKey: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider: delphi")
	})
}

// TestSupportedProviders verifies the built-in providers self-register.
func TestSupportedProviders(t *testing.T) {
	names := SupportedProviders()
	assert.Contains(t, names, "openai")
	assert.Contains(t, names, "anthropic")
}

// TestClientMiddlewareOrder verifies the first configured middleware is
// outermost.
func TestClientMiddlewareOrder(t *testing.T) {
	name := registerCanned(t, &cannedModel{body: validVerdict})

	var order []string
	tag := func(label string) Middleware {
		return func(next CoreModel) CoreModel {
			return &taggedModel{next: next, label: label, order: &order}
		}
	}

	client, err := NewClient(name, ClientConfig{
		APIKey:     "key",
		Middleware: []Middleware{tag("outer"), tag("inner")},
	})
	require.NoError(t, err)

	_, err = client.ScoreWriting(context.Background(), ports.RubricRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type taggedModel struct {
	next  CoreModel
	label string
	order *[]string
}

func (m *taggedModel) DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error) {
	*m.order = append(*m.order, m.label)
	return m.next.DoRequest(ctx, system, user, opts)
}

func (m *taggedModel) GetModel() string { return m.next.GetModel() }

// TestClientScoreWriting verifies the happy path and error wrapping.
func TestClientScoreWriting(t *testing.T) {
	t.Run("parses the provider verdict", func(t *testing.T) {
		name := registerCanned(t, &cannedModel{body: validVerdict})
		client, err := NewClient(name, ClientConfig{APIKey: "key"})
		require.NoError(t, err)

		assessment, err := client.ScoreWriting(context.Background(), ports.RubricRequest{
			Submission: domain.WritingSubmission{TaskType: domain.TaskFunctional, Text: "Dear Mr Harris,"},
		})
		require.NoError(t, err)

		assert.Equal(t, 13, assessment.Scores.RawTotal())
		assert.Equal(t, "B1", assessment.BandEstimate)
		assert.Equal(t, "canned-v1", client.Model())
	})

	t.Run("malformed verdict surfaces as a rubric error", func(t *testing.T) {
		name := registerCanned(t, &cannedModel{body: "not json"})
		client, err := NewClient(name, ClientConfig{APIKey: "key"})
		require.NoError(t, err)

		_, err = client.ScoreWriting(context.Background(), ports.RubricRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedAssessment)
	})

	t.Run("provider failure surfaces as a rubric error", func(t *testing.T) {
		name := registerCanned(t, &cannedModel{err: fmt.Errorf("boom: %w", ports.ErrServiceUnavailable)})
		client, err := NewClient(name, ClientConfig{APIKey: "key"})
		require.NoError(t, err)

		_, err = client.ScoreWriting(context.Background(), ports.RubricRequest{})
		assert.ErrorIs(t, err, ports.ErrServiceUnavailable)
	})
}

// TestClientScoreTasks verifies concurrent marking preserves order and
// propagates the first failure.
func TestClientScoreTasks(t *testing.T) {
	t.Run("results keep input order", func(t *testing.T) {
		model := &cannedModel{body: validVerdict}
		name := registerCanned(t, model)
		client, err := NewClient(name, ClientConfig{APIKey: "key"})
		require.NoError(t, err)

		reqs := []ports.RubricRequest{
			{Submission: domain.WritingSubmission{TaskType: domain.TaskFunctional, Text: "one"}},
			{Submission: domain.WritingSubmission{TaskType: domain.TaskExtended, Text: "two"}},
			{Submission: domain.WritingSubmission{TaskType: domain.TaskFunctional, Text: "three"}},
		}
		results, err := client.ScoreTasks(context.Background(), reqs)
		require.NoError(t, err)

		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, "B1", r.BandEstimate)
		}
		assert.Equal(t, 3, model.calls)
	})

	t.Run("first failure cancels the batch", func(t *testing.T) {
		name := registerCanned(t, &cannedModel{body: "not json"})
		client, err := NewClient(name, ClientConfig{APIKey: "key"})
		require.NoError(t, err)

		_, err = client.ScoreTasks(context.Background(), []ports.RubricRequest{{}, {}})
		assert.ErrorIs(t, err, ErrMalformedAssessment)
	})
}
