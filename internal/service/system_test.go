package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/item-service/internal/errs"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestReady(t *testing.T) {
	if err := NewSystemService(testServer(), fakePinger{}).Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v", err)
	}
}

func TestReadyFailure(t *testing.T) {
	svc := NewSystemService(testServer(), fakePinger{err: errors.New("dial tcp: connection refused")})

	err := svc.Ready(context.Background())

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Ready() error = %v, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusServiceUnavailable || httpErr.Message != "DB connection failed" {
		t.Errorf("Ready() = %d %q", httpErr.Status, httpErr.Message)
	}
}

func TestCheckRedisDisabled(t *testing.T) {
	svc := NewSystemService(testServer(), fakePinger{})

	if err := svc.CheckRedis(context.Background()); !errors.Is(err, ErrRedisDisabled) {
		t.Errorf("CheckRedis() error = %v, want ErrRedisDisabled", err)
	}
}
