// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// There is no pool: every request opens its own connection through
// WithConn, which closes it again on every exit path.
//
// It handles:
//   - building a DSN from config
//   - applying the fixed connect timeout
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/item-service/internal/config"
	loggerConfig "github.com/deppfellow/item-service/internal/logger"
)

// ConnectTimeout is applied to every connection attempt, independent of
// any other setting.
const ConnectTimeout = 5 * time.Second

// Conn is the subset of *pgx.Conn used by repositories.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Database knows how to open connections. It holds no open connection itself.
type Database struct {
	connConfig *pgx.ConnConfig

	// configErr is returned from every WithConn call when the settings could
	// not be parsed at startup.
	configErr error

	log *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig; this runs the New Relic tracer,
// the local SQL logger and the slow query logger side by side.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer warns about statements slower than threshold, using the
// request logger from ctx when there is one.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := time.Since(start.at)
	if elapsed < t.threshold {
		return
	}

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = t.log
	}

	logger.Warn().
		Str("sql", start.sql).
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Err(data.Err).
		Msg("slow query")
}

// DSN builds the postgres URL for cfg. The password is escaped by url.UserPassword.
func DSN(cfg *config.DatabaseConfig) string {
	query := url.Values{}
	query.Set("sslmode", cfg.SSLMode)
	query.Set("connect_timeout", strconv.Itoa(int(ConnectTimeout/time.Second)))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// New prepares connection settings with instrumentation.
//
// It never dials the database and never fails: missing settings or a
// configuration that cannot be parsed are reported by each WithConn call.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *Database {
	database := &Database{log: logger}

	// Left empty, libpq would fall back to the PG* variables and local defaults.
	if missing := cfg.MissingDatabaseSettings(); len(missing) > 0 {
		database.configErr = errors.Errorf("missing database settings: %s", strings.Join(missing, ", "))
		return database
	}

	connConfig, err := pgx.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		database.configErr = errors.Wrap(err, "failed to parse database config")
		logger.Warn().Err(database.configErr).Msg("database settings are invalid, database routes will fail")
		return database
	}

	connConfig.ConnectTimeout = ConnectTimeout

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// In local env, enable SQL query logging using pgx tracelog + zerolog.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{threshold: threshold, log: logger})
	}

	switch len(tracers) {
	case 0:
	case 1:
		connConfig.Tracer = tracers[0]
	default:
		connConfig.Tracer = &multiTracer{tracers: tracers}
	}

	database.connConfig = connConfig
	return database
}

// Connect opens a new connection. The caller owns it and must close it.
func (db *Database) Connect(ctx context.Context) (*pgx.Conn, error) {
	if db.configErr != nil {
		return nil, db.configErr
	}

	conn, err := pgx.ConnectConfig(ctx, db.connConfig.Copy())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return conn, nil
}

// WithConn opens a connection, runs fn with it and closes it afterwards,
// whether fn returns normally, returns an error or panics.
func (db *Database) WithConn(ctx context.Context, fn func(conn Conn) error) error {
	conn, err := db.Connect(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := conn.Close(context.WithoutCancel(ctx)); closeErr != nil {
			db.log.Warn().Err(closeErr).Msg("failed to close database connection")
		}
	}()

	return fn(conn)
}

// Close exists for symmetry with the server lifecycle; there is nothing
// to release between requests.
func (db *Database) Close() error {
	db.log.Info().Msg("database connector closed")
	return nil
}

// String describes the target without credentials.
func (db *Database) String() string {
	if db.connConfig == nil {
		return "postgres (unconfigured)"
	}
	return fmt.Sprintf("postgres://%s:%d/%s", db.connConfig.Host, db.connConfig.Port, db.connConfig.Database)
}
