package storage

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Retry defaults: up to 3 attempts, 3s per attempt, exponential backoff
// starting at 200ms between failed attempts.
const (
	DefaultMaxAttempts    = 3
	DefaultAttemptTimeout = 3 * time.Second
	defaultBackoffBase    = 200 * time.Millisecond
)

type RetryOptions struct {
	Timeout     time.Duration // per-attempt bound; defaults to DefaultAttemptTimeout
	MaxAttempts int           // defaults to DefaultMaxAttempts
	OnAttempt   func(attempt int, err error)
}

// RetryResult is the final outcome of a retried delete. It is always a
// value, never a panic or propagated error - callers must check OK.
type RetryResult struct {
	OK       bool
	Attempts int
	Err      error
}

func newDeleteBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = defaultBackoffBase
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return b
}

// DeleteWithRetry attempts to delete key up to MaxAttempts times, each
// attempt bounded by Timeout. A missing object counts as success: the goal
// is "key is gone", and deleting twice is not an error. Failed attempts back
// off exponentially (200ms, 400ms, 800ms). The per-attempt timeout cancels
// only that attempt, not the loop.
func DeleteWithRetry(ctx context.Context, client Client, key string, opts RetryOptions) RetryResult {
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	attempts := 0
	var lastErr error

	operation := func() error {
		attempts++
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err := client.DeleteObject(attemptCtx, key)
		cancel()

		if err == nil || errors.Is(err, ErrObjectNotFound) {
			if opts.OnAttempt != nil {
				opts.OnAttempt(attempts, nil)
			}
			return nil
		}
		if opts.OnAttempt != nil {
			opts.OnAttempt(attempts, err)
		}
		lastErr = err
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newDeleteBackoff(), uint64(maxAttempts-1)), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return RetryResult{OK: false, Attempts: attempts, Err: ctxErr}
		}
		return RetryResult{OK: false, Attempts: attempts, Err: lastErr}
	}
	return RetryResult{OK: true, Attempts: attempts}
}
