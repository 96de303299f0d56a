package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

var pgxToZerolog = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// pgxLogger sends pgx query traces to zerolog under component=pgx.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// traceLevel is the most verbose pgx level the logger would still print.
func traceLevel(logger zerolog.Logger) tracelog.LogLevel {
	lvl := logger.GetLevel()
	for _, l := range []tracelog.LogLevel{
		tracelog.LogLevelTrace, tracelog.LogLevelDebug, tracelog.LogLevelInfo, tracelog.LogLevelWarn,
	} {
		if lvl <= pgxToZerolog[l] {
			return l
		}
	}
	return tracelog.LogLevelError
}

func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	zl, ok := pgxToZerolog[level]
	if !ok {
		zl = zerolog.InfoLevel
	}
	event := l.logger.WithLevel(zl)

	// sql, args and time get typed fields; the rest pass through untouched.
	if sql, ok := data["sql"].(string); ok {
		event = event.Str("sql", sql)
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		event = event.Interface("args", args)
		delete(data, "args")
	}
	if took, ok := data["time"].(time.Duration); ok {
		event = event.Dur("took", took)
		delete(data, "time")
	}
	event.Fields(data).Msg(msg)
}
