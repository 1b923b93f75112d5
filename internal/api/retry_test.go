package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryEventualSuccess(t *testing.T) {
	base := 10 * time.Millisecond

	calls := 0
	var between []time.Time
	op := func() error {
		calls++
		between = append(between, time.Now())
		if calls <= 2 {
			return &StatusError{Status: 503}
		}
		return nil
	}

	if err := RetryWith(context.Background(), op, 3, base); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 3 {
		t.Fatalf("invocations: got %d, want 3", calls)
	}
	// Backoff doubles: the wait before the 3rd attempt is base * 2^2.
	if gap := between[2].Sub(between[1]); gap < base<<2 {
		t.Fatalf("3rd attempt delay: got %v, want >= %v", gap, base<<2)
	}
}

func TestRetryClientErrorImmediate(t *testing.T) {
	calls := 0
	op := func() error {
		calls++
		return &StatusError{Status: 404}
	}

	err := RetryWith(context.Background(), op, 3, time.Millisecond)
	if err == nil {
		t.Fatal("expected 404 to propagate")
	}
	if calls != 1 {
		t.Fatalf("invocations: got %d, want 1 (no retry on 4xx)", calls)
	}
}

func TestRetryRateLimitedRetries(t *testing.T) {
	calls := 0
	op := func() error {
		calls++
		if calls == 1 {
			return &StatusError{Status: 429}
		}
		return nil
	}

	if err := RetryWith(context.Background(), op, 3, time.Millisecond); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("invocations: got %d, want 2 (429 is retryable)", calls)
	}
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	op := func() error {
		calls++
		return &StatusError{Status: 502}
	}

	err := RetryWith(context.Background(), op, 2, time.Millisecond)
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if calls != 3 {
		t.Fatalf("invocations: got %d, want 3 (maxRetries+1)", calls)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != 502 {
		t.Fatalf("last error: got %v, want 502 status error", err)
	}
}

func TestRetryNetworkErrorRetries(t *testing.T) {
	calls := 0
	op := func() error {
		calls++
		if calls == 1 {
			return ErrNetwork
		}
		return nil
	}

	if err := RetryWith(context.Background(), op, 3, time.Millisecond); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("invocations: got %d, want 2 (network errors retry)", calls)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	op := func() error {
		calls++
		return &StatusError{Status: 500}
	}

	err := RetryWith(ctx, op, 3, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error: got %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("invocations: got %d, want 1", calls)
	}
}

func TestRetryableNormalizedError(t *testing.T) {
	// Endpoint methods wrap the status error; Retryable must still see it.
	err := normalize(&StatusError{Status: 404})
	if Retryable(err) {
		t.Fatal("normalized 404 should not be retryable")
	}
	err = normalize(&StatusError{Status: 500})
	if !Retryable(err) {
		t.Fatal("normalized 500 should be retryable")
	}
}
