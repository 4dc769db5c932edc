package rubric

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/eduxlabs/llnd-engine/internal/ports"
)

// rateLimitedModel paces requests with a token bucket so the client
// stays inside provider rate limits.
type rateLimitedModel struct {
	next    CoreModel
	limiter *rate.Limiter
}

// RateLimitMiddleware creates middleware enforcing a sustained
// requests-per-second limit with the given burst allowance.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next CoreModel) CoreModel {
		return &rateLimitedModel{next: next, limiter: limiter}
	}
}

// DoRequest blocks until a token is available, then forwards the request.
func (r *rateLimitedModel) DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return r.next.DoRequest(ctx, system, user, opts)
}

func (r *rateLimitedModel) GetModel() string { return r.next.GetModel() }

// timeoutModel bounds each request with its own deadline.
type timeoutModel struct {
	next    CoreModel
	timeout time.Duration
}

// TimeoutMiddleware creates middleware that enforces a per-request
// timeout.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next CoreModel) CoreModel {
		return &timeoutModel{next: next, timeout: timeout}
	}
}

// DoRequest executes the request under a timeout context.
func (t *timeoutModel) DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.DoRequest(ctx, system, user, opts)
}

func (t *timeoutModel) GetModel() string { return t.next.GetModel() }

// retryModel retries transient failures with exponential backoff and
// jitter. Non-retryable errors return immediately.
type retryModel struct {
	next       CoreModel
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// RetryMiddleware creates middleware that retries failed requests with
// exponential backoff. Only rate-limit, availability, and timeout
// failures are retried.
func RetryMiddleware(maxRetries int, baseDelay, maxDelay time.Duration) Middleware {
	return func(next CoreModel) CoreModel {
		return &retryModel{
			next:       next,
			maxRetries: maxRetries,
			baseDelay:  baseDelay,
			maxDelay:   maxDelay,
		}
	}
}

// DoRequest executes the request with retry logic, respecting context
// cancellation between attempts.
func (r *retryModel) DoRequest(ctx context.Context, system, user string, opts map[string]any) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		response, err := r.next.DoRequest(ctx, system, user, opts)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if !isRetryable(err) || ctx.Err() != nil || attempt == r.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.calculateDelay(attempt)):
		}
	}

	return "", fmt.Errorf("request failed after %d attempts: %w", r.maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	return errors.Is(err, ports.ErrRateLimited) ||
		errors.Is(err, ports.ErrServiceUnavailable) ||
		errors.Is(err, ports.ErrTimeout)
}

func (r *retryModel) calculateDelay(attempt int) time.Duration {
	if attempt > 30 {
		attempt = 30
	}
	delay := r.baseDelay * time.Duration(1<<uint(attempt))

	// Jitter of ±25% keeps concurrent retries from synchronizing.
	jitter := time.Duration(rand.Float64() * float64(delay) * 0.5)
	delay = delay + jitter - delay/4

	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	return delay
}

func (r *retryModel) GetModel() string { return r.next.GetModel() }
