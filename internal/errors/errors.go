// Package errors holds the terminal failure taxonomy of a request execution.
package errors

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// 4xx except 429, never retried
	PermanentClientError ErrorKind = iota
	// transport failures, unexpected statuses and anything else the classifier does not understand
	UnknownError
	// retry budget exhausted on 429/5xx
	RetriesExceeded
	// redirect chain longer than the configured ceiling
	RedirectsExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case PermanentClientError:
		return "PermanentClientError"
	case UnknownError:
		return "UnknownError"
	case RetriesExceeded:
		return "RetriesExceeded"
	case RedirectsExceeded:
		return "RedirectsExceeded"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// HttpError is an unrecoverable failure of a logical request.
// StatusCode is 0 when no response was received.
type HttpError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Body       []byte
	URL        string
	Err        error
}

func (e *HttpError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func (e *HttpError) HasStatus() bool {
	return e.StatusCode != 0
}

func NewPermanentClientError(statusCode int, url string, body []byte) *HttpError {
	msg := fmt.Sprintf("HTTP Error %d", statusCode)
	if statusCode == 404 {
		// the requested url is what makes a 404 actionable
		msg = fmt.Sprintf("%s %s", msg, url)
	}
	return &HttpError{
		Kind:       PermanentClientError,
		Message:    msg,
		StatusCode: statusCode,
		Body:       body,
		URL:        url,
	}
}

func NewUnknownStatusError(statusCode int, url string, body []byte) *HttpError {
	return &HttpError{
		Kind:       UnknownError,
		Message:    fmt.Sprintf("Unknown HTTP Error %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
		URL:        url,
	}
}

func NewTransportError(url string, err error) *HttpError {
	return &HttpError{
		Kind:    UnknownError,
		Message: fmt.Sprintf("Unknown HTTP error: %v", err),
		URL:     url,
		Err:     err,
	}
}

// NewInterruptedRetryError reports a backoff wait ended by err,
// keeping the status and body of the outcome that was about to be retried.
func NewInterruptedRetryError(statusCode int, url string, body []byte, err error) *HttpError {
	e := NewTransportError(url, err)
	e.StatusCode = statusCode
	e.Body = body
	return e
}

func NewRetriesExceededError(statusCode int, url string, body []byte) *HttpError {
	return &HttpError{
		Kind:       RetriesExceeded,
		Message:    "Retries Exceeded",
		StatusCode: statusCode,
		Body:       body,
		URL:        url,
	}
}

func NewMissingLocationError(statusCode int, url string, body []byte) *HttpError {
	return &HttpError{
		Kind:       UnknownError,
		Message:    fmt.Sprintf("HTTP %d redirect without Location header from %s", statusCode, url),
		StatusCode: statusCode,
		Body:       body,
		URL:        url,
	}
}

func NewRedirectsExceededError(maxRedirects int, statusCode int, url string, body []byte) *HttpError {
	return &HttpError{
		Kind:       RedirectsExceeded,
		Message:    fmt.Sprintf("Redirects Exceeded: more than %d hops, last from %s", maxRedirects, url),
		StatusCode: statusCode,
		Body:       body,
		URL:        url,
	}
}

func IsErrorKind(err error, kind ErrorKind) bool {
	var e *HttpError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsHTTPStatusError(err error, statusCode int) bool {
	var e *HttpError
	if errors.As(err, &e) {
		return e.StatusCode == statusCode
	}
	return false
}

func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
