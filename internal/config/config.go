package config

import (
	"time"

	"github.com/maxviazov/esports-health-service/internal/logger"
)

// Config is the root configuration, loaded from YAML and APP_* environment variables.
type Config struct {
	App       AppConfig           `mapstructure:"app"`
	HTTP      HTTPConfig          `mapstructure:"http"`
	Logger    logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Storage   StorageConfig       `mapstructure:"storage"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	Analytics AnalyticsConfig     `mapstructure:"analytics"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type HTTPConfig struct {
	// AllowedOrigins feeds CORS; the dashboard frontend runs on its own origin.
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres memory"`
	// SeedOnStart fills an empty store with the sample roster when the server boots.
	SeedOnStart bool `mapstructure:"seed_on_start"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	MaxConns int32 `mapstructure:"max_conns" validate:"gte=1"`
	MinConns int32 `mapstructure:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	// Durations below are in seconds.
	MaxConnLifetime   int `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int `mapstructure:"health_check_period" validate:"gte=0"`
}

// AnalyticsConfig holds the default lookback windows, in hours, and the
// fan-out bound used when rolling up teams and the whole roster.
type AnalyticsConfig struct {
	PlayerWindowHours   int `mapstructure:"player_window_hours" validate:"gte=1"`
	TeamWindowHours     int `mapstructure:"team_window_hours" validate:"gte=1"`
	ReadingsWindowHours int `mapstructure:"readings_window_hours" validate:"gte=1"`
	SummaryWindowHours  int `mapstructure:"summary_window_hours" validate:"gte=1"`
	MaxConcurrency      int `mapstructure:"max_concurrency" validate:"gte=1,lte=256"`
}

func (a AnalyticsConfig) PlayerWindow() time.Duration {
	return time.Duration(a.PlayerWindowHours) * time.Hour
}

func (a AnalyticsConfig) TeamWindow() time.Duration {
	return time.Duration(a.TeamWindowHours) * time.Hour
}

func (a AnalyticsConfig) ReadingsWindow() time.Duration {
	return time.Duration(a.ReadingsWindowHours) * time.Hour
}

func (a AnalyticsConfig) SummaryWindow() time.Duration {
	return time.Duration(a.SummaryWindowHours) * time.Hour
}
