package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/deppfellow/item-service/internal/database"
)

const pingQuery = `SELECT 1`

// SystemRepository runs the database probes behind /ready and /status.
type SystemRepository struct {
	db Connector
}

func NewSystemRepository(db Connector) *SystemRepository {
	return &SystemRepository{db: db}
}

// Ping opens a connection and runs a trivial query on it.
func (r *SystemRepository) Ping(ctx context.Context) error {
	return r.db.WithConn(ctx, func(conn database.Conn) error {
		var one int
		if err := conn.QueryRow(ctx, pingQuery).Scan(&one); err != nil {
			return errors.Wrap(err, "readiness query failed")
		}
		return nil
	})
}
