package resilient

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/RassulYunussov/forgeclient/common"
	"github.com/RassulYunussov/forgeclient/internal/classifier"
	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
	local_errors "github.com/RassulYunussov/forgeclient/internal/errors"
	"github.com/RassulYunussov/forgeclient/internal/metrics"
	"github.com/RassulYunussov/forgeclient/internal/redirect"
)

const DefaultMaxRedirects = 10

type requestExecutor struct {
	transport    internal_common.Transport
	scheduler    backoffScheduler
	maxRedirects int
	sleeper      Sleeper
	logger       zerolog.Logger
	metrics      *metrics.Recorder
}

// CreateRequestExecutor wires the retry/redirect state machine on top of transport.
// A negative MaxRedirects follows redirect chains without limit.
func CreateRequestExecutor(transport internal_common.Transport, executorParameters *ExecutorParameters) common.Executor {
	executor := requestExecutor{
		transport:    transport,
		scheduler:    backoffScheduler{unit: DefaultBackoffUnit},
		maxRedirects: DefaultMaxRedirects,
		sleeper:      NewTimerSleeper(),
		logger:       zerolog.Nop(),
	}
	if executorParameters != nil {
		if executorParameters.BackoffUnit > 0 {
			executor.scheduler.unit = executorParameters.BackoffUnit
		}
		if executorParameters.Sleeper != nil {
			executor.sleeper = executorParameters.Sleeper
		}
		executor.maxRedirects = executorParameters.MaxRedirects
		executor.logger = executorParameters.Logger
		executor.metrics = executorParameters.Metrics
	}
	return &executor
}

func (e *requestExecutor) Execute(ctx context.Context, spec common.RequestSpec) (*common.HttpResponse, error) {
	resp, err := e.execute(ctx, spec)
	if err != nil {
		e.metrics.Failure(err.Kind.String())
		e.logger.Debug().
			Err(err).
			Str("kind", err.Kind.String()).
			Int("status", err.StatusCode).
			Str("url", err.URL).
			Msg("request failed")
		return nil, err
	}
	return resp, nil
}

func (e *requestExecutor) execute(ctx context.Context, spec common.RequestSpec) (*common.HttpResponse, *local_errors.HttpError) {
	hops := 0
	for {
		outcome, kind, err := e.dispatch(ctx, spec)
		if err != nil {
			return nil, err
		}
		if kind == classifier.Success {
			return &common.HttpResponse{
				StatusCode: outcome.StatusCode,
				Headers:    outcome.Headers,
				Body:       outcome.Body,
			}, nil
		}
		if e.maxRedirects >= 0 && hops >= e.maxRedirects {
			return nil, local_errors.NewRedirectsExceededError(e.maxRedirects, outcome.StatusCode, spec.URL(), outcome.Body)
		}
		next, err := redirect.Follow(spec, outcome)
		if err != nil {
			return nil, err
		}
		hops++
		e.metrics.Redirect()
		e.logger.Info().
			Int("status", outcome.StatusCode).
			Str("from", spec.URL()).
			Str("to", next.URL()).
			Int("hop", hops).
			Msg("following redirect")
		spec = next
	}
}

// dispatch sends spec until it succeeds or asks for a redirect,
// retrying 429 and 5xx within the spec's retry budget.
func (e *requestExecutor) dispatch(ctx context.Context, spec common.RequestSpec) (internal_common.Outcome, classifier.Kind, *local_errors.HttpError) {
	state := e.scheduler.start(spec.RetryBudget())
	for {
		e.logger.Debug().
			Str("method", spec.Method()).
			Str("url", spec.URL()).
			Int("attempt", state.attempt).
			Msg("dispatching request")
		outcome := e.transport.Send(ctx, spec)
		verdict := classifier.Classify(outcome, spec.URL())
		e.metrics.Attempt(verdict.Kind.String())

		switch {
		case verdict.Kind == classifier.Success || verdict.Kind == classifier.RedirectNeeded:
			return outcome, verdict.Kind, nil
		case verdict.Retryable():
			attempt, delay, ok := state.next()
			if !ok {
				return outcome, verdict.Kind, local_errors.NewRetriesExceededError(outcome.StatusCode, spec.URL(), outcome.Body)
			}
			e.metrics.Retry(delay)
			e.logger.Warn().
				Int("status", outcome.StatusCode).
				Str("url", spec.URL()).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying request")
			if err := e.sleeper.Sleep(ctx, delay); err != nil {
				return outcome, classifier.UnknownError, local_errors.NewInterruptedRetryError(outcome.StatusCode, spec.URL(), outcome.Body, err)
			}
		default:
			return outcome, verdict.Kind, verdict.Err
		}
	}
}
