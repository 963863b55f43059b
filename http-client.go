package forgeclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/RassulYunussov/forgeclient/common"
	"github.com/RassulYunussov/forgeclient/internal/cb"
	"github.com/RassulYunussov/forgeclient/internal/metrics"
	"github.com/RassulYunussov/forgeclient/internal/resilient"
	"github.com/RassulYunussov/forgeclient/internal/transport"
)

// Request executor backed by resiliency patterns.
// Retries http-429 & http-5xx with 2^n backoff, follows redirects, fails fast on everything else.
type Executor = common.Executor

type (
	RequestSpec  = common.RequestSpec
	HttpResponse = common.HttpResponse
)

// Blocking wait between retries, replaceable for tests
type Sleeper = resilient.Sleeper

const (
	DefaultBackoffUnit  = resilient.DefaultBackoffUnit
	DefaultMaxRedirects = resilient.DefaultMaxRedirects
)

// Get new instance of Executor.
// timeout bounds a single physical exchange, 0 means no limit.
func Create(timeout time.Duration, opts ...func(*executorCreationParameters) *executorCreationParameters) Executor {
	executorCreationParameters := &executorCreationParameters{
		backoffUnit:  DefaultBackoffUnit,
		maxRedirects: DefaultMaxRedirects,
		logger:       zerolog.Nop(),
	}
	for _, o := range opts {
		executorCreationParameters = o(executorCreationParameters)
	}

	var circuitBreakerParameters *cb.CircuitBreakerParameters
	if p := executorCreationParameters.circuitBreakerParameters; p != nil {
		circuitBreakerParameters = &cb.CircuitBreakerParameters{
			MaxRequests:         p.maxRequests,
			ConsecutiveFailures: p.consecutiveFailures,
			Interval:            p.interval,
			Timeout:             p.timeout,
		}
	}
	httpTransport := cb.CreateCircuitBreakerTransport(
		transport.CreateHttpTransport(timeout),
		circuitBreakerParameters,
		executorCreationParameters.logger,
	)
	return resilient.CreateRequestExecutor(httpTransport, &resilient.ExecutorParameters{
		BackoffUnit:  executorCreationParameters.backoffUnit,
		MaxRedirects: executorCreationParameters.maxRedirects,
		Sleeper:      executorCreationParameters.sleeper,
		Logger:       executorCreationParameters.logger,
		Metrics:      metrics.NewRecorder(executorCreationParameters.registerer),
	})
}

// Time unit of the backoff schedule: the n-th retry waits 2^n units. Defaults to a minute.
func WithBackoffUnit(unit time.Duration) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		if unit > 0 {
			h.backoffUnit = unit
		}
		return h
	}
}

// Ceiling on redirect hops per request, negative means unlimited.
func WithMaxRedirects(maxRedirects int) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		h.maxRedirects = maxRedirects
		return h
	}
}

func WithSleeper(sleeper Sleeper) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		h.sleeper = sleeper
		return h
	}
}

func WithLogger(logger zerolog.Logger) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		h.logger = logger
		return h
	}
}

// Register request counters on registerer
func WithMetrics(registerer prometheus.Registerer) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		h.registerer = registerer
		return h
	}
}

// Apply circuit breaker policy per target host.
// https://github.com/sony/gobreaker
func WithCircuitBreaker(maxRequests uint32,
	consecutiveFailures uint32,
	interval time.Duration,
	timeout time.Duration) func(h *executorCreationParameters) *executorCreationParameters {
	return func(h *executorCreationParameters) *executorCreationParameters {
		h.circuitBreakerParameters = &circuitBreakerParameters{
			maxRequests:         maxRequests,
			consecutiveFailures: consecutiveFailures,
			interval:            interval,
			timeout:             timeout,
		}
		return h
	}
}
