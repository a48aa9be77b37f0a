package util

import (
	"context"
	"errors"
	"testing"
)

func TestRetryErrWithContext(t *testing.T) {
	t.Run("SucceedsAfterFailures", func(t *testing.T) {
		calls := 0
		err := RetryErrWithContext(context.Background(), 3, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if calls != 3 {
			t.Fatalf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("ReturnsLastError", func(t *testing.T) {
		wantErr := errors.New("persistent")
		err := RetryErrWithContext(context.Background(), 2, func(ctx context.Context) error {
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected last error, got %v", err)
		}
	})

	t.Run("StopsOnCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryErrWithContext(ctx, 5, func(ctx context.Context) error {
			calls++
			cancel()
			return errors.New("transient")
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected 1 call before cancellation stop, got %d", calls)
		}
	})
}

func TestRetryWithContext(t *testing.T) {
	got, err := RetryWithContext(context.Background(), 3, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("expected 42, got %d (%v)", got, err)
	}

	_, err = RetryWithContext(context.Background(), 0, func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error with maxTries <= 0 defaulting to one attempt")
	}
}
