package publish

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
)

const (
	// uploadAttempts is how often an upload is tried before giving up.
	uploadAttempts = 3

	// uploadRetryDelay is the wait before the first retry. It doubles after each attempt.
	uploadRetryDelay = 500 * time.Millisecond
)

// retry calls fn up to attempts times with exponential backoff.
// Only errors for which transient reports true are retried; others are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if cancelled while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, transient func(error) bool, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !transient(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// isTransient reports whether an S3 error is worth retrying: network
// errors, 5xx responses and throttling.
func isTransient(err error) bool {
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return true
	case resp.StatusCode == http.StatusTooManyRequests, resp.Code == "SlowDown":
		return true
	}
	return false
}
