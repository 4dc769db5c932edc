package rubric

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GoogleDefaultModel is used when no model is configured.
const GoogleDefaultModel = "gemini-2.0-flash-exp"

func init() {
	RegisterProviderFactory("google", newGoogleProvider)
}

// googleProvider implements CoreModel for Google's Gemini API.
type googleProvider struct {
	client *genai.Client
	model  string
}

func newGoogleProvider(config ClientConfig) (CoreModel, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	model := config.Model
	if model == "" {
		model = GoogleDefaultModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google client: %w", err)
	}

	return &googleProvider{client: client, model: model}, nil
}

// DoRequest sends the prompts to the Gemini API. Gemini has no separate
// system role, so the system prompt is prepended to the user turn.
// Temperature is pinned to zero; marking must be as repeatable as the
// provider allows.
func (p *googleProvider) DoRequest(ctx context.Context, system, user string, _ map[string]any) (string, error) {
	prompt := user
	if system != "" {
		prompt = fmt.Sprintf("System: %s\n\nUser: %s", system, user)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr(float32(0))}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return "", p.handleError(err)
	}

	content := resp.Text()
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func (p *googleProvider) handleError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return classifyContextError("google", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" && len(apiErr.Errors) > 0 {
			message = apiErr.Errors[0].Message
		}
		return classifyHTTPError("google", apiErr.Code, message, err)
	}

	return classifyHTTPError("google", 0, "request failed", err)
}

// GetModel returns the configured Gemini model name.
func (p *googleProvider) GetModel() string { return p.model }
