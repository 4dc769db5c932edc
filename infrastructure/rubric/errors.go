// Package rubric provides the external rubric collaborator used by the
// writing pipeline, abstracting model providers (OpenAI, Anthropic)
// behind a common interface with middleware for rate limiting, retries,
// and timeouts.
package rubric

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// Common errors returned by the rubric client and providers.
var (
	// ErrEmptyAPIKey indicates that an API key was required but not provided.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrEmptyResponse indicates the provider returned an empty body.
	ErrEmptyResponse = errors.New("empty response from API")

	// ErrNoResponseChoice indicates the response contained no choices.
	ErrNoResponseChoice = errors.New("no response choices returned")

	// ErrMalformedAssessment indicates the provider's output could not
	// be parsed into a rubric assessment.
	ErrMalformedAssessment = errors.New("malformed rubric assessment")
)

// ProviderError normalizes provider-specific failures into a common
// shape carrying the classified sentinel for retryability decisions.
type ProviderError struct {
	// Provider identifies the model provider that produced the error.
	Provider string

	// StatusCode holds the HTTP status from the provider, if any.
	StatusCode int

	// Message contains the provider's error message.
	Message string

	// Sentinel is the ports-level classification of this error.
	Sentinel error

	// WrappedError holds the original underlying error.
	WrappedError error
}

// Error returns a string representation of the ProviderError.
func (e *ProviderError) Error() string {
	base := fmt.Sprintf("%s error", e.Provider)
	if e.StatusCode > 0 {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	return base
}

// Unwrap exposes the classification sentinel so errors.Is works against
// the ports-level error set.
func (e *ProviderError) Unwrap() error { return e.Sentinel }

// classifyHTTPError maps an HTTP status onto the ports error set.
func classifyHTTPError(provider string, status int, message string, err error) *ProviderError {
	var sentinel error
	switch {
	case status == 401 || status == 403:
		sentinel = ports.ErrAuthenticationFailed
	case status == 429:
		sentinel = ports.ErrRateLimited
	case status >= 500:
		sentinel = ports.ErrServiceUnavailable
	default:
		sentinel = ports.ErrInvalidResponse
	}
	return &ProviderError{
		Provider:     provider,
		StatusCode:   status,
		Message:      message,
		Sentinel:     sentinel,
		WrappedError: err,
	}
}

// classifyContextError maps context cancellation onto the ports error set.
func classifyContextError(provider string, err error) *ProviderError {
	sentinel := ports.ErrTimeout
	if errors.Is(err, context.Canceled) {
		sentinel = ports.ErrServiceUnavailable
	}
	return &ProviderError{
		Provider:     provider,
		Message:      err.Error(),
		Sentinel:     sentinel,
		WrappedError: err,
	}
}
