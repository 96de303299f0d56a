// Package logger builds the process-wide zerolog.Logger from configuration.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level              string         `mapstructure:"level" json:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format             string         `mapstructure:"format" json:"format,omitempty" validate:"oneof=json console"`
	OutputTarget       string         `mapstructure:"output_target" json:"outputTarget,omitempty" validate:"oneof=stdout stderr"`
	TimeField          string         `mapstructure:"time_field" json:"timeField,omitempty"`
	TimeFormat         string         `mapstructure:"time_format" json:"timeFormat,omitempty" validate:"oneof=rfc3339 rfc3339nano unix unix_ms"`
	ServiceName        string         `mapstructure:"service_name" json:"serviceName,omitempty"`
	ServiceVersion     string         `mapstructure:"service_version" json:"serviceVersion,omitempty"`
	Env                string         `mapstructure:"env" json:"env,omitempty" validate:"oneof=dev staging prod"`
	WithCaller         bool           `mapstructure:"with_caller" json:"withCaller,omitempty"`
	Stacktrace         bool           `mapstructure:"stacktrace" json:"stacktrace,omitempty"`
	StacktraceMinLevel string         `mapstructure:"stacktrace_min_level" json:"stacktraceMinLevel,omitempty" validate:"oneof=debug info warn error fatal panic"`
	DebugFile          string         `mapstructure:"debug_file" json:"debugFile,omitempty"`
	Fields             map[string]any `mapstructure:"fields" json:"fields,omitempty"`
}

// New validates the config, applies global zerolog settings and returns the root logger.
func New(cfg *LoggerConfig) (zerolog.Logger, error) {
	return build(cfg, nil)
}

// NewWithWriter is New with the output redirected to w, used by tests and tools
// that capture logs. Format is still honored.
func NewWithWriter(cfg *LoggerConfig, w io.Writer) (zerolog.Logger, error) {
	return build(cfg, w)
}

func build(cfg *LoggerConfig, override io.Writer) (zerolog.Logger, error) {
	if cfg == nil {
		cfg = &LoggerConfig{}
	}
	cfg.setDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = timeFieldFormat(cfg.TimeFormat)

	out := override
	if out == nil {
		out = cfg.writer()
	}

	logger := zerolog.New(out).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	if cfg.Stacktrace {
		logger = logger.With().Stack().Logger()
	}
	if len(cfg.Fields) > 0 {
		logger = logger.With().Fields(cfg.Fields).Logger()
	}

	// must come after ParseLevel succeeded
	zerolog.SetGlobalLevel(level)
	return logger.Level(level), nil
}

// writer picks the sink: JSON to the configured stream in prod-like envs,
// a console writer in dev, plus the debug file when dev runs at debug level.
func (c *LoggerConfig) writer() io.Writer {
	var base io.Writer = os.Stdout
	if c.OutputTarget == "stderr" {
		base = os.Stderr
	}
	if c.Format == "console" {
		base = zerolog.ConsoleWriter{Out: base, TimeFormat: time.RFC3339}
	}

	if c.Env != "dev" || c.Level != "debug" || c.DebugFile == "" {
		return base
	}
	// don't crash if the file can't be used; console is enough
	if err := os.MkdirAll(filepath.Dir(c.DebugFile), 0o755); err != nil {
		return base
	}
	file, err := os.OpenFile(c.DebugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return base
	}
	return zerolog.MultiLevelWriter(base, file)
}

func timeFieldFormat(name string) string {
	switch name {
	case "rfc3339":
		return time.RFC3339
	case "unix":
		return zerolog.TimeFormatUnix
	case "unix_ms":
		return zerolog.TimeFormatUnixMs
	default:
		return time.RFC3339Nano
	}
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}

	// level and format follow the environment
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}

	if c.OutputTarget == "" {
		c.OutputTarget = "stdout"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "rfc3339nano"
	}

	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if !c.Stacktrace && c.Env != "dev" {
		c.Stacktrace = true
	}
	if c.StacktraceMinLevel == "" {
		c.StacktraceMinLevel = "error"
	}
	if c.DebugFile == "" && c.Env == "dev" {
		c.DebugFile = "logs/debug.log"
	}

	if c.ServiceName == "" {
		c.ServiceName = "esports-health-service"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
	if c.Fields == nil {
		c.Fields = make(map[string]any)
	}
}
