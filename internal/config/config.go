// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types, and validates that required values
// are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix TUTORIALS_.
	Keys are lowercased with the prefix removed, and nested struct fields are
	mapped with the "." delimiter:

	  TUTORIALS_SERVER.PORT -> server.port -> Config.Server.Port
*/

const (
	// EnvPrefix is the prefix every configuration variable must carry.
	EnvPrefix = "TUTORIALS_"

	// DefaultClientOrigin is the single browser origin allowed by default.
	DefaultClientOrigin = "http://localhost:8081"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig selects the storage driver and carries its connection
// parameters. PostgreSQL fields are only required for the postgres driver.
type DatabaseConfig struct {
	Driver          string `koanf:"driver" validate:"omitempty,oneof=postgres sqlite"`
	Host            string `koanf:"host" validate:"required_unless=Driver sqlite"`
	Port            int    `koanf:"port" validate:"required_unless=Driver sqlite"`
	User            string `koanf:"user" validate:"required_unless=Driver sqlite"`
	Password        string `koanf:"password" validate:"required_unless=Driver sqlite"`
	Name            string `koanf:"name" validate:"required_unless=Driver sqlite"`
	SSLMode         string `koanf:"ssl_mode" validate:"required_unless=Driver sqlite"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`

	// Path is the SQLite database file (or ":memory:").
	Path string `koanf:"path"`
}

// IsSQLite reports whether the embedded SQLite driver is selected.
func (d DatabaseConfig) IsSQLite() bool {
	return d.Driver == DriverSQLite
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty disables Redis entirely.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// RateLimitConfig controls the per-client request limiter.
//
// With Redis configured, the limit is a fixed window of RequestsPerSecond*Window
// requests shared by every instance. Without Redis an in-process token bucket is
// used with the given Burst.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`
	Window            int     `koanf:"window" validate:"gte=0"`
}

// LoadConfig reads the TUTORIALS_ environment into a Config, fills in defaults
// and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{DefaultClientOrigin}
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.IsSQLite() && c.Database.Path == "" {
		c.Database.Path = "tutorials.db"
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 1
	}

	defaults := DefaultObservabilityConfig()
	if c.Observability == nil {
		c.Observability = defaults
	}

	// Service name and environment always follow the primary config.
	c.Observability.ServiceName = defaults.ServiceName
	c.Observability.Environment = c.Primary.Env

	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = defaults.Logging.Level
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = defaults.Logging.Format
	}
	if c.Observability.HealthChecks.Interval == 0 {
		c.Observability.HealthChecks.Interval = defaults.HealthChecks.Interval
	}
	if c.Observability.HealthChecks.Timeout == 0 {
		c.Observability.HealthChecks.Timeout = defaults.HealthChecks.Timeout
	}
	if len(c.Observability.HealthChecks.Checks) == 0 {
		c.Observability.HealthChecks.Checks = defaults.HealthChecks.Checks
	}
}
