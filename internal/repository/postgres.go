package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/config"
)

const connectTimeout = 5 * time.Second

// Repository owns the pgx pool the postgres stores share.
type Repository struct {
	pool *pgxpool.Pool
}

// DSN renders a postgres URL for cfg. Credentials are escaped.
func DSN(pg config.PostgresConfig) string {
	dsn := url.URL{
		Scheme: "postgres",
		Host:   pg.Host + ":" + strconv.Itoa(pg.Port),
		Path:   pg.DBName,
	}
	if pg.User != "" || pg.Password != "" {
		dsn.User = url.UserPassword(pg.User, pg.Password)
	}
	params := url.Values{}
	if pg.SSLMode != "" {
		params.Set("sslmode", pg.SSLMode)
	}
	dsn.RawQuery = params.Encode()
	return dsn.String()
}

// poolConfig turns the postgres section into pgxpool settings. Sessions run
// in UTC so recorded_at comes back in the zone the engine compares against.
func poolConfig(cfg *config.Config, logger zerolog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(DSN(cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pc.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if cfg.App.Name != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.App.Name
	}
	pc.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(logger),
		LogLevel: traceLevel(logger),
	}

	pg := cfg.Postgres
	pc.MaxConns = pg.MaxConns
	pc.MinConns = pg.MinConns
	pc.MaxConnLifetime = seconds(pg.MaxConnLifetime)
	pc.MaxConnIdleTime = seconds(pg.MaxConnIdleTime)
	pc.HealthCheckPeriod = seconds(pg.HealthCheckPeriod)
	return pc, nil
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// New opens the pool and fails fast when the database does not answer within connectTimeout.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Repository, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config is required")
	case logger == nil:
		return nil, errors.New("logger is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pc, err := poolConfig(cfg, *logger)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres at %s:%d: %w", cfg.Postgres.Host, cfg.Postgres.Port, err)
	}

	logger.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("db", cfg.Postgres.DBName).
		Int32("max_conns", pc.MaxConns).
		Msg("reading store connected")
	return &Repository{pool: pool}, nil
}

func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
