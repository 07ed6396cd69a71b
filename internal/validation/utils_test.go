package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/errs"
	"github.com/deppfellow/item-service/internal/model/item"
)

func newContext(method, body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/items", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateCreateItem(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantName    string
		wantErr     string
	}{
		{name: "valid", body: `{"name":"widget"}`, contentType: echo.MIMEApplicationJSON, wantName: "widget"},
		{name: "trimmed", body: `{"name":"  widget  "}`, contentType: echo.MIMEApplicationJSON, wantName: "widget"},
		{name: "unknown fields ignored", body: `{"name":"w","extra":1}`, contentType: echo.MIMEApplicationJSON, wantName: "w"},
		{name: "empty name", body: `{"name":""}`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "blank name", body: `{"name":"   "}`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "missing name", body: `{}`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "null name", body: `{"name":null}`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "number name", body: `{"name":5}`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "array body", body: `["widget"]`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "malformed json", body: `{"name":`, contentType: echo.MIMEApplicationJSON, wantErr: "name is required"},
		{name: "no body", body: "", wantErr: "name is required"},
		{name: "not json", body: "name=widget", contentType: echo.MIMETextPlain, wantErr: "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, tt.body, tt.contentType)
			payload := &item.CreateItemPayload{}

			err := BindAndValidate(c, payload)

			if tt.wantErr != "" {
				var httpErr *errs.HTTPError
				if !errors.As(err, &httpErr) {
					t.Fatalf("BindAndValidate() error = %v, want *errs.HTTPError", err)
				}
				if httpErr.Status != http.StatusBadRequest || httpErr.Message != tt.wantErr {
					t.Errorf("got %d %q, want 400 %q", httpErr.Status, httpErr.Message, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("BindAndValidate() error = %v", err)
			}
			if payload.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", payload.Name, tt.wantName)
			}
		})
	}
}

func TestBindAndValidateItemID(t *testing.T) {
	tests := []struct {
		raw    string
		status int
	}{
		{raw: "42", status: 0},
		{raw: "abc", status: http.StatusNotFound},
		{raw: "-3", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := newContext(http.MethodDelete, "garbage", echo.MIMEApplicationJSON)
			c.SetPath("/items/:id")
			c.SetParamNames("id")
			c.SetParamValues(tt.raw)

			payload := &item.ItemIDPayload{}
			err := BindAndValidate(c, payload)

			if tt.status == 0 {
				if err != nil {
					t.Fatalf("BindAndValidate() error = %v", err)
				}
				if payload.ID() != 42 {
					t.Errorf("ID() = %d, want 42", payload.ID())
				}
				return
			}

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Status != tt.status {
				t.Fatalf("BindAndValidate() error = %v, want status %d", err, tt.status)
			}
		})
	}
}

type strictPayload struct {
	Count int `json:"count"`
}

func (p *strictPayload) Validate() error { return nil }

func TestBindFailureWithoutHandlerIsBadRequest(t *testing.T) {
	c := newContext(http.MethodPost, `{"count":"x"}`, echo.MIMEApplicationJSON)

	err := BindAndValidate(c, &strictPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("BindAndValidate() error = %v, want 400", err)
	}
}

func TestPathParamsOnlyIgnoresBody(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			c := newContext(method, `{"id":`, echo.MIMEApplicationJSON)
			c.SetPath("/items/:id")
			c.SetParamNames("id")
			c.SetParamValues("5")

			payload := &item.ItemIDPayload{}
			if err := BindAndValidate(c, payload); err != nil {
				t.Fatalf("BindAndValidate() error = %v", err)
			}
			if payload.ID() != 5 {
				t.Errorf("ID() = %d, want 5", payload.ID())
			}

			if err := BindAndValidate(newContext(method, "garbage", echo.MIMEApplicationJSON), &item.ListItemsPayload{}); err != nil {
				t.Errorf("ListItemsPayload BindAndValidate() error = %v", err)
			}
		})
	}
}
