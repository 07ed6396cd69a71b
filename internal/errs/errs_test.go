package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPErrorJSONShape(t *testing.T) {
	body, err := json.Marshal(NewNotFoundError(MessageNotFound))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(body), `{"error":"not found"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *HTTPError
		status  int
		code    string
		message string
	}{
		{"bad request", NewBadRequestError(MessageNameRequired), http.StatusBadRequest, "BAD_REQUEST", "name is required"},
		{"not found", NewNotFoundError(MessageNotFound), http.StatusNotFound, "NOT_FOUND", "not found"},
		{"method not allowed", NewMethodNotAllowedError(), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method Not Allowed"},
		{"too many requests", NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too Many Requests"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal Server Error"},
		{"unavailable", NewServiceUnavailableError(MessageDBConnectionFail), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "DB connection failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status || tt.err.Code != tt.code || tt.err.Message != tt.message {
				t.Errorf("got {%d %s %q}, want {%d %s %q}",
					tt.err.Status, tt.err.Code, tt.err.Message, tt.status, tt.code, tt.message)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusNotFound, MessageNotFound},
		{http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.StatusTooManyRequests, "Too Many Requests"},
		{http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{http.StatusInternalServerError, "Internal Server Error"},
		{799, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			if got := FromStatus(tt.status); got.Message != tt.message {
				t.Errorf("FromStatus(%d).Message = %q, want %q", tt.status, got.Message, tt.message)
			}
		})
	}
}

func TestWithCodeKeepsMessage(t *testing.T) {
	base := NewInternalServerError()
	coded := base.WithCode("ITEM_REQUIRED")

	if coded.Code != "ITEM_REQUIRED" || coded.Message != base.Message || coded.Status != base.Status {
		t.Errorf("WithCode() = %+v", coded)
	}
	if base.Code != "INTERNAL_SERVER_ERROR" {
		t.Errorf("WithCode mutated the receiver: %+v", base)
	}
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewBadRequestError("x"))
	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("errors.Is(wrapped, &HTTPError{}) = false")
	}
}
