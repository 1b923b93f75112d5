package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
)

// Retryable reports whether an operation that failed with err is worth
// retrying: server errors (5xx), rate limiting (429) and network failures
// are; any other client error (4xx) is a definitive verdict.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		if se.Status >= 400 && se.Status < 500 && se.Status != http.StatusTooManyRequests {
			return false
		}
	}
	return true
}

// Retry runs op with the default policy: up to 3 retries with exponential
// backoff on a 1s base. See RetryWith.
func Retry(ctx context.Context, op func() error) error {
	return RetryWith(ctx, op, defaultMaxRetries, defaultBaseDelay)
}

// RetryWith runs op up to maxRetries+1 times with pure exponential backoff
// (no jitter): the wait before retry n is baseDelay * 2^n. Non-retryable
// errors abort immediately; after exhausting retries the last error is
// returned. This is an opt-in wrapper applied deliberately per call site,
// never inside endpoint methods.
func RetryWith(ctx context.Context, op func() error, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !Retryable(lastErr) {
			return lastErr
		}
		if attempt == maxRetries {
			break
		}

		select {
		case <-time.After(baseDelay << (attempt + 1)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
