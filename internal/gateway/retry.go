package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// RetrySubmitter wraps a Submitter with exponential backoff retry logic.
type RetrySubmitter struct {
	inner      Submitter
	maxRetries int
	baseDelay  time.Duration
}

// WithRetry retries retryable failures up to maxRetries times. A
// non-positive maxRetries returns inner unchanged.
func WithRetry(inner Submitter, maxRetries int) Submitter {
	if maxRetries <= 0 {
		return inner
	}
	return &RetrySubmitter{inner: inner, maxRetries: maxRetries, baseDelay: 500 * time.Millisecond}
}

func (r *RetrySubmitter) Endpoint() string { return r.inner.Endpoint() }

func (r *RetrySubmitter) Submit(ctx context.Context, text string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		body, err := r.inner.Submit(ctx, text)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == r.maxRetries {
			break
		}
		if err := r.backoff(ctx, attempt); err != nil {
			return "", lastErr
		}
	}
	return "", fmt.Errorf("after %d retries: %w", r.maxRetries, lastErr)
}

func isRetryable(err error) bool {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Retryable()
	}
	return false
}

func (r *RetrySubmitter) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(r.baseDelay) * math.Pow(2, float64(attempt)))
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
