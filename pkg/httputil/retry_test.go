package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, LinearBackoff(time.Millisecond), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, LinearBackoff(time.Millisecond), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("busy")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	boom := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), 3, LinearBackoff(time.Millisecond), func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Retry() = %v, want %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	last := &RetryableError{Err: errors.New("still busy")}
	err := Retry(context.Background(), 3, LinearBackoff(time.Millisecond), func() error {
		calls++
		return last
	})
	if !errors.Is(err, last.Err) {
		t.Errorf("Retry() = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, LinearBackoff(time.Hour), func() error {
		return &RetryableError{Err: errors.New("busy")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestLinearBackoffSchedule(t *testing.T) {
	delay := LinearBackoff(5 * time.Second)
	for i, want := range []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second} {
		if got := delay(i); got != want {
			t.Errorf("delay(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestRetryableErrorUnwraps(t *testing.T) {
	inner := errors.New("inner")
	err := &RetryableError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("RetryableError does not unwrap to inner error")
	}
}
