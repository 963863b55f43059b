package forgeclient

import (
	local_errors "github.com/RassulYunussov/forgeclient/internal/errors"
)

type (
	HttpError = local_errors.HttpError
	ErrorKind = local_errors.ErrorKind
)

const (
	PermanentClientError = local_errors.PermanentClientError
	UnknownError         = local_errors.UnknownError
	RetriesExceeded      = local_errors.RetriesExceeded
	RedirectsExceeded    = local_errors.RedirectsExceeded
)

func IsErrorKind(err error, kind ErrorKind) bool {
	return local_errors.IsErrorKind(err, kind)
}

func IsPermanentClientError(err error) bool {
	return local_errors.IsErrorKind(err, PermanentClientError)
}

func IsRetriesExceeded(err error) bool {
	return local_errors.IsErrorKind(err, RetriesExceeded)
}

func IsUnknownError(err error) bool {
	return local_errors.IsErrorKind(err, UnknownError)
}

func IsHTTPStatusError(err error, statusCode int) bool {
	return local_errors.IsHTTPStatusError(err, statusCode)
}

func IsSuccessStatus(statusCode int) bool {
	return local_errors.IsSuccessStatus(statusCode)
}
