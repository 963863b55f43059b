package cb

import "time"

type CircuitBreakerParameters struct {
	MaxRequests         uint32
	ConsecutiveFailures uint32
	Interval            time.Duration
	Timeout             time.Duration
}

// carries a retryable outcome through gobreaker as a failure
type circuitBreakerErrorWrapper[V any] struct {
	wrapped V
}

func (e *circuitBreakerErrorWrapper[V]) Error() string {
	return "retryable outcome counted as circuit breaker failure"
}
