package errs

import (
	"net/http"
)

// Client-visible messages.
const (
	MessageNameRequired     = "name is required"
	MessageNotFound         = "not found"
	MessageDBConnectionFail = "DB connection failed"
)

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError() *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// NewServiceUnavailableError creates a 503 Service Unavailable HTTPError.
func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// FromStatus builds an HTTPError for an arbitrary status, using the
// canonical messages where this API defines one.
func FromStatus(status int) *HTTPError {
	switch status {
	case http.StatusNotFound:
		return NewNotFoundError(MessageNotFound)
	case http.StatusMethodNotAllowed:
		return NewMethodNotAllowedError()
	case http.StatusTooManyRequests:
		return NewTooManyRequestsError()
	case http.StatusInternalServerError:
		return NewInternalServerError()
	}

	message := http.StatusText(status)
	if message == "" {
		return NewInternalServerError()
	}
	return newHTTPError(status, message)
}
