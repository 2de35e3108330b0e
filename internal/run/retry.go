package run

import "time"

// RetryPolicy bounds provider attempts per record. Backoff grows linearly
// with the attempt number and is capped; provider, empty-response, parse
// and schema errors are all retried the same way.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func NewRetryPolicy(maxAttempts int) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Second,
		MaxDelay:    5 * time.Second,
	}
}

// Backoff returns the delay to sleep after the given failed attempt
// (1-based) before the next one.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * p.BaseDelay
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
