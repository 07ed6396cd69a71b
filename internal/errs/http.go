// Package errs defines the error type returned to API clients.
//
// Every failure a client can observe is an *HTTPError. Its JSON form is a
// single `error` key; status and machine code stay on the server side so
// the global error handler can pick the status and log the code.
package errs

import "strings"

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: the text sent to the client as {"error": Message}.
//   - Status: HTTP status code.
type HTTPError struct {
	Code    string `json:"-"`
	Message string `json:"error"`
	Status  int    `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// This does NOT compare Code/Status/etc.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithCode returns a copy of this HTTPError with Code replaced.
func (e *HTTPError) WithCode(code string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: e.Message,
		Status:  e.Status,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
