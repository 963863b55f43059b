package common

import (
	"context"
	"net/http"
)

// Request executor backed by resiliency patterns.
// Includes: retry with exponential backoff, redirect chasing & optional circuit breaker.
// Retriable outcomes: http-429, http-5xx
// Non-retriable outcomes: http-4xx, network errors, unknown statuses
type Executor interface {
	// Execute returns a 2xx response or a *forgeclient.HttpError, never both
	Execute(ctx context.Context, spec RequestSpec) (*HttpResponse, error)
}

// Successful response of a logical request. Redirects are resolved before it is returned.
type HttpResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
