package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/errs"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/sqlerr"
)

// Pinger checks that the database answers a trivial query.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemService struct {
	server *server.Server
	db     Pinger
}

func NewSystemService(s *server.Server, db Pinger) *SystemService {
	return &SystemService{
		server: s,
		db:     db,
	}
}

// Ready reports whether the database can be reached. Any failure is
// logged and answered with the generic 503.
func (s *SystemService) Ready(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		sqlerr.WithDetails(zerolog.Ctx(ctx).Error().Stack().Err(err), err).
			Msg("database health check failed")
		return errs.NewServiceUnavailableError(errs.MessageDBConnectionFail)
	}

	return nil
}

// CheckDatabase runs the same probe as Ready and returns the raw error,
// for the detailed status report.
func (s *SystemService) CheckDatabase(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// CheckRedis pings Redis. It returns ErrRedisDisabled when no client is configured.
func (s *SystemService) CheckRedis(ctx context.Context) error {
	if s.server.Redis == nil {
		return ErrRedisDisabled
	}
	return s.server.Redis.Ping(ctx).Err()
}

// ErrRedisDisabled is returned by CheckRedis without a configured client.
var ErrRedisDisabled = errors.New("redis not configured")

func isNotFound(err error) bool {
	var httpErr *errs.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
