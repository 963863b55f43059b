package common

import (
	"context"
	"net/http"

	"github.com/RassulYunussov/forgeclient/common"
)

// Common interface for all transport decorators
type Transport interface {
	// one physical exchange, failures are reported through Outcome.Err
	Send(ctx context.Context, spec common.RequestSpec) Outcome
}

// Raw result of one physical exchange.
// Err is set for transport-level failures, which carry no status code.
type Outcome struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Err        error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}
