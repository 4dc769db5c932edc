package ports

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRubricError tests the functionality of the RubricError error type.
// It covers error creation, message formatting, and retryable logic.
func TestRubricError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := NewRubricError("gpt-4o", "ScoreWriting", ErrInvalidResponse)

		assert.Equal(t, "rubric error: model=gpt-4o, operation=ScoreWriting, err=invalid response", err.Error())
		assert.Equal(t, "gpt-4o", err.Model)
		assert.Equal(t, "ScoreWriting", err.Operation)
		assert.True(t, errors.Is(err, ErrInvalidResponse))
	})

	t.Run("with retry after", func(t *testing.T) {
		retryAfter := 30 * time.Second
		err := &RubricError{
			Model:      "claude-sonnet-4",
			Operation:  "ScoreWriting",
			Err:        ErrRateLimited,
			RetryAfter: &retryAfter,
		}

		assert.Contains(t, err.Error(), "retry_after=30s")
	})

	t.Run("retryable errors", func(t *testing.T) {
		retryableErrors := []error{
			ErrRateLimited,
			ErrServiceUnavailable,
			ErrTimeout,
		}

		for _, baseErr := range retryableErrors {
			err := NewRubricError("test-model", "Test", baseErr)
			assert.True(t, err.IsRetryable(), "%v should be retryable", baseErr)
		}

		nonRetryableErrors := []error{
			ErrInvalidResponse,
			ErrAuthenticationFailed,
		}

		for _, baseErr := range nonRetryableErrors {
			err := NewRubricError("test-model", "Test", baseErr)
			assert.False(t, err.IsRetryable(), "%v should not be retryable", baseErr)
		}
	})
}

// TestConfigError verifies message formatting and unwrapping for
// configuration resolution failures.
func TestConfigError(t *testing.T) {
	base := errors.New("snapshot missing")
	err := NewConfigError("benchmark/level-3", base)

	assert.Equal(t, "config error: key=benchmark/level-3, err=snapshot missing", err.Error())
	assert.True(t, errors.Is(err, base))
}
