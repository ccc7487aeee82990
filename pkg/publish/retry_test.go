package publish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

var errTransient = errors.New("transient")

func onlyTransient(err error) bool { return errors.Is(err, errTransient) }

func TestRetry_Success(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, onlyTransient, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, onlyTransient, func() error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_PermanentError(t *testing.T) {
	permanent := errors.New("access denied")
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, onlyTransient, func() error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("err = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 2, time.Millisecond, onlyTransient, func() error {
		calls++
		return errTransient
	})
	if err != errTransient {
		t.Errorf("err = %v, want %v", err, errTransient)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry(ctx, 3, time.Hour, onlyTransient, func() error {
		calls++
		cancel()
		return errTransient
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"server error", minio.ErrorResponse{StatusCode: 503, Code: "ServiceUnavailable"}, true},
		{"throttled", minio.ErrorResponse{StatusCode: 503, Code: "SlowDown"}, true},
		{"too many requests", minio.ErrorResponse{StatusCode: 429}, true},
		{"access denied", minio.ErrorResponse{StatusCode: 403, Code: "AccessDenied"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}
