package retry

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Do runs fn up to attempts times with exponential backoff, starting at sleep.
// It returns the first successful result, or the last error wrapped with the
// attempt count. The context cancels waiting between attempts.
func Do[T any](ctx context.Context, attempts int, sleep time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// RetryableStatus reports whether an HTTP status code is worth retrying:
// 429 and any 5xx.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
