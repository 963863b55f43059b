package classifier

import (
	"fmt"
	"net/http"

	internal_common "github.com/RassulYunussov/forgeclient/internal/common"
	local_errors "github.com/RassulYunussov/forgeclient/internal/errors"
)

type Kind int

const (
	Success Kind = iota
	RetryableServerError
	// 429, retried exactly like RetryableServerError
	RateLimited
	PermanentClientError
	RedirectNeeded
	UnknownError
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case RetryableServerError:
		return "RetryableServerError"
	case RateLimited:
		return "RateLimited"
	case PermanentClientError:
		return "PermanentClientError"
	case RedirectNeeded:
		return "RedirectNeeded"
	case UnknownError:
		return "UnknownError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Verdict on one exchange. Err is set for the terminal kinds
// PermanentClientError and UnknownError.
type Classification struct {
	Kind Kind
	Err  *local_errors.HttpError
}

// 429 and 5xx are handled identically by the retry loop
func (c Classification) Retryable() bool {
	return c.Kind == RetryableServerError || c.Kind == RateLimited
}

// Classify maps a raw outcome of a request to requestURL onto the next state machine transition.
func Classify(outcome internal_common.Outcome, requestURL string) Classification {
	status := outcome.StatusCode
	switch {
	case outcome.Failed():
		return Classification{Kind: UnknownError, Err: local_errors.NewTransportError(requestURL, outcome.Err)}
	case status == http.StatusTooManyRequests:
		return Classification{Kind: RateLimited}
	case status >= 500 && status < 600:
		return Classification{Kind: RetryableServerError}
	case status >= 300 && status < 400:
		return Classification{Kind: RedirectNeeded}
	case status >= 400 && status < 500:
		return Classification{Kind: PermanentClientError, Err: local_errors.NewPermanentClientError(status, requestURL, outcome.Body)}
	case local_errors.IsSuccessStatus(status):
		return Classification{Kind: Success}
	default:
		// a case reached here that is not understood yet, keep the status so it can be added
		return Classification{Kind: UnknownError, Err: local_errors.NewUnknownStatusError(status, requestURL, outcome.Body)}
	}
}
