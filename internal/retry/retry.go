// Package retry wraps fallible operations with bounded exponential backoff.
// It knows nothing about HTTP or JSON; callers classify their own failures.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	initialDelay = 50 * time.Millisecond
	maxDelay     = 1 * time.Second
)

// Permanent marks err as terminal so Do surfaces it without further attempts.
// Adapters use this for client-side upstream failures (4xx), which retrying
// cannot fix.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op, retrying up to retries times after the first attempt. The delay
// starts at 50ms and doubles to a 1s ceiling, with no jitter. op receives the
// zero-based attempt index. The last error is returned unchanged once the
// attempt budget is exhausted.
func Do[T any](ctx context.Context, retries int, op func(attempt int) (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialDelay
	bo.MaxInterval = maxDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0

	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		v, err := op(attempt)
		attempt++
		return v, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(retries+1)))
}
