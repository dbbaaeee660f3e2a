package finsource

import (
	"errors"
	"testing"
	"time"
)

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1.0}

	calls := 0
	err := WithRetry(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryReturnsLastError(t *testing.T) {
	cfg := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1.0}

	calls := 0
	wantErr := errors.New("still down")
	err := WithRetry(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected last error to propagate, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryBackoffCapped(t *testing.T) {
	cfg := &RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Multiplier:  2.0,
	}

	start := time.Now()
	_ = WithRetry(cfg, func() error { return errors.New("down") })
	elapsed := time.Since(start)

	// Delays: 1ms, 2ms, 2ms (capped). Anything near a second means the cap
	// was ignored.
	if elapsed > 500*time.Millisecond {
		t.Errorf("backoff not capped, took %v", elapsed)
	}
}

func TestWithRetryNoSleepOnImmediateSuccess(t *testing.T) {
	cfg := DefaultRetryConfig()

	start := time.Now()
	if err := WithRetry(cfg, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("first attempt should not be delayed")
	}
}
