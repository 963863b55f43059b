package resilient

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// The n-th retry waits 2^n units
const DefaultBackoffUnit = time.Minute

type backoffScheduler struct {
	unit time.Duration
}

// retryState is owned by a single dispatch chain and never shared
type retryState struct {
	attempt int
	policy  backoff.BackOff
}

// start returns a fresh retry state allowing budget retries
// with delays of 2^attempt units, attempt starting at 1.
func (s backoffScheduler) start(budget int) *retryState {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 2 * s.unit
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Duration(math.MaxInt64)
	exp.MaxElapsedTime = 0
	exp.Reset()
	return &retryState{policy: backoff.WithMaxRetries(exp, uint64(max(budget, 0)))}
}

// next records one retryable failure. ok is false once the attempt exceeds the budget.
func (r *retryState) next() (attempt int, delay time.Duration, ok bool) {
	r.attempt++
	delay = r.policy.NextBackOff()
	return r.attempt, delay, delay != backoff.Stop
}
