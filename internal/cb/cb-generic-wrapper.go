package cb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

type circuitBreaker[T any, V any] struct {
	*gobreaker.CircuitBreaker[*V]
}

func (cb *circuitBreaker[T, V]) execute(f func(request *T) (*V, error), request *T) (*V, error) {
	res, err := cb.CircuitBreaker.Execute(func() (*V, error) {
		return f(request)
	})
	if err != nil {
		return nil, err
	}
	return res, err
}

func newCircuitBreaker[T any, V any](maxRequests uint32, interval time.Duration, timeout time.Duration, consecutiveFailures uint32, resource string, logger zerolog.Logger) *circuitBreaker[T, V] {
	return &circuitBreaker[T, V]{
		CircuitBreaker: gobreaker.NewCircuitBreaker[*V](gobreaker.Settings{
			Name:        fmt.Sprintf("request circuit breaker for host %s", resource),
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= consecutiveFailures
			},
			// the caller giving up says nothing about the host
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state changed")
			},
		}),
	}
}
