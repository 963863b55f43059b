package cb

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RassulYunussov/forgeclient/common"
	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
)

type circuitBreakerTransport struct {
	transport           internal_common.Transport
	maxRequests         uint32
	consecutiveFailures uint32
	interval            time.Duration
	timeout             time.Duration
	logger              zerolog.Logger
	circuitBreakers     sync.Map
}

// CreateCircuitBreakerTransport guards transport with one breaker per host.
// Transport failures, 429 and 5xx count as failures; an open breaker is reported
// as a transport failure so the executor fails fast. Nil parameters disable the breaker.
func CreateCircuitBreakerTransport(transport internal_common.Transport, circuitBreakerParameters *CircuitBreakerParameters, logger zerolog.Logger) internal_common.Transport {
	if circuitBreakerParameters == nil {
		return transport
	}
	return &circuitBreakerTransport{
		transport:           transport,
		maxRequests:         circuitBreakerParameters.MaxRequests,
		consecutiveFailures: circuitBreakerParameters.ConsecutiveFailures,
		interval:            circuitBreakerParameters.Interval,
		timeout:             circuitBreakerParameters.Timeout,
		logger:              logger,
	}
}

func (c *circuitBreakerTransport) Send(ctx context.Context, spec common.RequestSpec) internal_common.Outcome {
	cb := c.getCircuitBreaker(getResource(spec))
	outcome, err := cb.execute(func(s *common.RequestSpec) (*internal_common.Outcome, error) {
		return c.do(ctx, s)
	}, &spec)
	var e *circuitBreakerErrorWrapper[*internal_common.Outcome]
	if errors.As(err, &e) {
		return *e.wrapped
	}
	if err != nil {
		return internal_common.Outcome{Err: err}
	}
	return *outcome
}

func (c *circuitBreakerTransport) getCircuitBreaker(resource string) *circuitBreaker[common.RequestSpec, internal_common.Outcome] {
	if cb, ok := c.circuitBreakers.Load(resource); ok {
		return cb.(*circuitBreaker[common.RequestSpec, internal_common.Outcome])
	}
	cb, _ := c.circuitBreakers.LoadOrStore(resource, newCircuitBreaker[common.RequestSpec, internal_common.Outcome](c.maxRequests, c.interval, c.timeout, c.consecutiveFailures, resource, c.logger))
	return cb.(*circuitBreaker[common.RequestSpec, internal_common.Outcome])
}

func getResource(spec common.RequestSpec) string {
	u, err := url.Parse(spec.URL())
	if err != nil || u.Host == "" {
		return spec.URL()
	}
	return u.Host
}

func (c *circuitBreakerTransport) do(ctx context.Context, spec *common.RequestSpec) (*internal_common.Outcome, error) {
	outcome := c.transport.Send(ctx, *spec)
	if outcome.Failed() {
		return nil, outcome.Err
	}
	if outcome.StatusCode == http.StatusTooManyRequests || (outcome.StatusCode >= http.StatusInternalServerError && outcome.StatusCode < 600) {
		return nil, &circuitBreakerErrorWrapper[*internal_common.Outcome]{
			wrapped: &outcome,
		}
	}
	return &outcome, nil
}
