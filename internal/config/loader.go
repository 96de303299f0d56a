package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrMissingSecret is returned when the postgres driver is selected without credentials.
var ErrMissingSecret = errors.New("missing required postgres setting")

// Load reads the YAML file at path (skipped when path is empty), overlays APP_*
// environment variables, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Logger.Env == "" {
		config.Logger.Env = config.App.Env
	}
	if config.Logger.ServiceName == "" {
		config.Logger.ServiceName = config.App.Name
	}
	if config.Logger.ServiceVersion == "" {
		config.Logger.ServiceVersion = config.App.Version
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints and the postgres credentials the memory driver doesn't need.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.Storage.Driver != "postgres" {
		return nil
	}
	var missing []string
	if c.Postgres.User == "" {
		missing = append(missing, "postgres.user")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "postgres.password")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "postgres.db")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the file omits it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "esports-health-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.request_timeout", "5s")

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.format", "")

	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("storage.seed_on_start", false)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("analytics.player_window_hours", 8)
	v.SetDefault("analytics.team_window_hours", 4)
	v.SetDefault("analytics.readings_window_hours", 24)
	v.SetDefault("analytics.summary_window_hours", 8)
	v.SetDefault("analytics.max_concurrency", 8)
}
