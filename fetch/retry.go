package fetch

import (
	"context"
	"time"
)

// RetryPolicy retries an operation with a fixed attempt count and an
// increasing per-attempt timeout schedule, stopping on first success or
// exhaustion.
type RetryPolicy struct {
	// Timeouts holds one entry per attempt; its length is the attempt count.
	Timeouts []time.Duration
}

// DefaultRetryPolicy grows the timeout across attempts so a slow upstream
// gets one generous final try without every call paying that cost.
func DefaultRetryPolicy(base time.Duration) RetryPolicy {
	return RetryPolicy{Timeouts: []time.Duration{base, base * 3 / 2, base * 2}}
}

// Do runs op once per scheduled attempt, each under its own timeout derived
// from ctx. It returns nil on the first success, the last error on
// exhaustion, or ctx's error if the parent is canceled between attempts.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for _, timeout := range p.Timeouts {
		if err := ctx.Err(); err != nil {
			return err
		}
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = op(attemptCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}
