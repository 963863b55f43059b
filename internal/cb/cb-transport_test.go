package cb

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"gotest.tools/v3/assert"

	"github.com/RassulYunussov/forgeclient/common"
	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
)

type countingTransport struct {
	outcome internal_common.Outcome
	calls   map[string]int
}

func newCountingTransport(outcome internal_common.Outcome) *countingTransport {
	return &countingTransport{outcome: outcome, calls: map[string]int{}}
}

func (c *countingTransport) Send(_ context.Context, spec common.RequestSpec) internal_common.Outcome {
	c.calls[spec.URL()]++
	return c.outcome
}

func breakerParameters(consecutiveFailures uint32, timeout time.Duration) *CircuitBreakerParameters {
	return &CircuitBreakerParameters{
		MaxRequests:         1,
		ConsecutiveFailures: consecutiveFailures,
		Interval:            time.Second,
		Timeout:             timeout,
	}
}

func TestNoParametersReturnsTransport(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{StatusCode: http.StatusOK})
	transport := CreateCircuitBreakerTransport(inner, nil, zerolog.Nop())
	assert.Equal(t, internal_common.Transport(inner), transport)
}

func TestServerErrorsOpenTheBreaker(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{StatusCode: http.StatusServiceUnavailable, Body: []byte("down")})
	transport := CreateCircuitBreakerTransport(inner, breakerParameters(2, time.Second), zerolog.Nop())
	spec := common.NewRequestSpec("https://api.example.com/repos/octo/repo")

	for i := 0; i < 2; i++ {
		outcome := transport.Send(context.Background(), spec)
		assert.NilError(t, outcome.Err)
		assert.Equal(t, http.StatusServiceUnavailable, outcome.StatusCode, "retryable outcome is passed through")
		assert.Equal(t, "down", string(outcome.Body))
	}
	for i := 0; i < 5; i++ {
		outcome := transport.Send(context.Background(), spec)
		assert.ErrorIs(t, outcome.Err, gobreaker.ErrOpenState)
	}
	assert.Equal(t, 2, inner.calls[spec.URL()], "expected only 2 requests to reach server")
}

func TestBreakersArePerHost(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{Err: errors.New("connection refused")})
	transport := CreateCircuitBreakerTransport(inner, breakerParameters(1, time.Second), zerolog.Nop())
	broken := common.NewRequestSpec("https://broken.example.com/a")
	other := common.NewRequestSpec("https://other.example.com/a")

	_ = transport.Send(context.Background(), broken)
	outcome := transport.Send(context.Background(), broken.WithURL("https://broken.example.com/b"))
	assert.ErrorIs(t, outcome.Err, gobreaker.ErrOpenState)

	outcome = transport.Send(context.Background(), other)
	assert.Assert(t, !errors.Is(outcome.Err, gobreaker.ErrOpenState))
	assert.Equal(t, 1, inner.calls[other.URL()])
}

func TestClientErrorsDoNotTrip(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{StatusCode: http.StatusNotFound})
	transport := CreateCircuitBreakerTransport(inner, breakerParameters(1, time.Second), zerolog.Nop())
	spec := common.NewRequestSpec("https://api.example.com/missing")
	for i := 0; i < 3; i++ {
		outcome := transport.Send(context.Background(), spec)
		assert.NilError(t, outcome.Err)
		assert.Equal(t, http.StatusNotFound, outcome.StatusCode)
	}
	assert.Equal(t, 3, inner.calls[spec.URL()])
}

func TestCancellationDoesNotTrip(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{Err: context.Canceled})
	transport := CreateCircuitBreakerTransport(inner, breakerParameters(1, time.Second), zerolog.Nop())
	spec := common.NewRequestSpec("https://api.example.com/slow")
	for i := 0; i < 3; i++ {
		outcome := transport.Send(context.Background(), spec)
		assert.ErrorIs(t, outcome.Err, context.Canceled)
	}
	assert.Equal(t, 3, inner.calls[spec.URL()])
}

func TestBreakerTransitionToClosed(t *testing.T) {
	inner := newCountingTransport(internal_common.Outcome{StatusCode: http.StatusInternalServerError})
	transport := CreateCircuitBreakerTransport(inner, breakerParameters(1, 50*time.Millisecond), zerolog.Nop())
	spec := common.NewRequestSpec("https://api.example.com/flaky")

	_ = transport.Send(context.Background(), spec)
	assert.ErrorIs(t, transport.Send(context.Background(), spec).Err, gobreaker.ErrOpenState)

	time.Sleep(60 * time.Millisecond)
	inner.outcome = internal_common.Outcome{StatusCode: http.StatusOK}
	outcome := transport.Send(context.Background(), spec)
	assert.NilError(t, outcome.Err)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.Equal(t, 2, inner.calls[spec.URL()], "expected half-open probe to reach server")
}
