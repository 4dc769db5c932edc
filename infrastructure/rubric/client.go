package rubric

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eduxlabs/llnd-engine/internal/domain"
	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// CoreModel defines the minimal interface a model provider must
// implement. The middleware system wraps any conforming implementation,
// so cross-cutting features compose without touching provider logic.
type CoreModel interface {
	// DoRequest sends a system and user prompt to the provider and
	// returns the raw response text.
	DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error)

	// GetModel returns the currently configured model name.
	GetModel() string
}

// Middleware wraps a CoreModel to add cross-cutting functionality such
// as rate limiting, retries, or timeouts.
type Middleware func(CoreModel) CoreModel

// ClientConfig holds the configuration for creating a rubric client.
type ClientConfig struct {
	// APIKey authenticates requests to the model provider.
	APIKey string `yaml:"api_key" json:"-" validate:"required"`

	// Model specifies which model to use for rubric marking.
	Model string `yaml:"model" json:"model"`

	// BaseURL overrides the provider's default endpoint when set.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each provider request. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Middleware is applied in order; the first entry is outermost.
	Middleware []Middleware `yaml:"-" json:"-"`
}

// providerFactory creates a CoreModel from configuration.
type providerFactory func(ClientConfig) (CoreModel, error)

var (
	factoryMu         sync.RWMutex
	providerFactories = make(map[string]providerFactory)
)

// RegisterProviderFactory installs a provider factory under a name.
// Providers self-register from init so importing the package is enough
// to make them available.
func RegisterProviderFactory(name string, factory providerFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	providerFactories[name] = factory
}

// SupportedProviders returns the registered provider names, sorted.
func SupportedProviders() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(providerFactories))
	for name := range providerFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var _ ports.RubricScorer = (*Client)(nil)

// Client implements ports.RubricScorer on top of a provider with its
// middleware chain applied.
type Client struct {
	core CoreModel
}

// NewClient creates a rubric client for the named provider. Middleware
// is applied in reverse order so the first configured entry wraps the
// whole chain.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	factoryMu.RLock()
	factory, ok := providerFactories[providerType]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core}, nil
}

// Model returns the underlying provider's model identifier.
func (c *Client) Model() string { return c.core.GetModel() }

// ScoreWriting marks one submission: build the rubric prompts, request a
// verdict, and parse it into a rubric assessment.
func (c *Client) ScoreWriting(ctx context.Context, req ports.RubricRequest) (domain.RubricAssessment, error) {
	system := buildSystemPrompt()
	user := buildUserPrompt(req)

	raw, err := c.core.DoRequest(ctx, system, user, nil)
	if err != nil {
		return domain.RubricAssessment{}, ports.NewRubricError(c.Model(), "ScoreWriting", err)
	}

	assessment, err := parseAssessment(raw)
	if err != nil {
		return domain.RubricAssessment{}, ports.NewRubricError(c.Model(), "ScoreWriting", err)
	}
	return assessment, nil
}

// ScoreTasks marks several submissions concurrently, preserving input
// order in the results. The first failure cancels the remaining calls.
func (c *Client) ScoreTasks(ctx context.Context, reqs []ports.RubricRequest) ([]domain.RubricAssessment, error) {
	results := make([]domain.RubricAssessment, len(reqs))
	g, ctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		g.Go(func() error {
			assessment, err := c.ScoreWriting(ctx, req)
			if err != nil {
				return err
			}
			results[i] = assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
