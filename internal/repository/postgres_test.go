package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/esports-health-service/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.PostgresConfig{
		Host: "db", Port: 5433, User: "coach", Password: "p@ss/word", DBName: "esports", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://coach:p%40ss%2Fword@db:5433/esports?sslmode=disable", got)

	bare := DSN(config.PostgresConfig{Host: "localhost", Port: 5432, DBName: "x"})
	assert.Equal(t, "postgres://localhost:5432/x", bare)
}

func TestMapPgError(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{pgerrcode.UniqueViolation, ErrAlreadyExists},
		{pgerrcode.ForeignKeyViolation, ErrConflict},
		{pgerrcode.CheckViolation, ErrOutOfRange},
		{pgerrcode.NotNullViolation, ErrOutOfRange},
	}
	for _, tc := range tests {
		assert.ErrorIs(t, MapPgError(&pgconn.PgError{Code: tc.code}), tc.want)
	}

	named := MapPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "readings_heart_rate_check"})
	assert.ErrorIs(t, named, ErrOutOfRange)
	assert.Contains(t, named.Error(), "readings_heart_rate_check")

	assert.ErrorIs(t, MapPgError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	other := errors.New("boom")
	assert.Same(t, other, MapPgError(other))
	assert.NoError(t, MapPgError(nil))
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.New(io.Discard).Level(zerolog.DebugLevel)))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.New(io.Discard).Level(zerolog.WarnLevel)))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.New(io.Discard).Level(zerolog.FatalLevel)))
}

func TestNew_RequiresConfigAndLogger(t *testing.T) {
	l := zerolog.New(io.Discard)
	_, err := New(context.Background(), nil, &l)
	assert.Error(t, err)
	_, err = New(context.Background(), &config.Config{}, nil)
	assert.Error(t, err)
}

func TestPoolConfig(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "esports-health-service"},
		Postgres: config.PostgresConfig{
			Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable",
			MaxConns: 7, MinConns: 2, MaxConnLifetime: 60, MaxConnIdleTime: 30, HealthCheckPeriod: 15,
		},
	}

	pc, err := poolConfig(cfg, zerolog.New(io.Discard).Level(zerolog.InfoLevel))
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 30*time.Second, pc.MaxConnIdleTime)
	assert.Equal(t, 15*time.Second, pc.HealthCheckPeriod)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "esports-health-service", pc.ConnConfig.RuntimeParams["application_name"])
	require.IsType(t, &tracelog.TraceLog{}, pc.ConnConfig.Tracer)
	assert.Equal(t, tracelog.LogLevelInfo, pc.ConnConfig.Tracer.(*tracelog.TraceLog).LogLevel)
}

func TestPgxLogger_LiftsQueryFields(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{1},
		"time": 2 * time.Millisecond,
		"pid":  42,
	})

	out := buf.String()
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"took":2`)
	assert.Contains(t, out, `"pid":42`)

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", map[string]any{})
	assert.Empty(t, buf.String())
}
