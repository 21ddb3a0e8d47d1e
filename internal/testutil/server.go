// Package testutil builds fully wired servers on an in-memory SQLite
// database for package tests.
package testutil

import (
	"testing"

	"github.com/deppfellow/tutorial-api/internal/config"
	"github.com/deppfellow/tutorial-api/internal/logger"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/rs/zerolog"
)

// NewConfig returns a valid configuration for the sqlite driver with rate
// limiting off and New Relic disabled.
func NewConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{config.DefaultClientOrigin},
		},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			Path:   ":memory:",
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             20,
			Window:            1,
		},
		Observability: obs,
	}
}

// NewServer connects a server for cfg, or NewConfig() when cfg is nil. The
// database is closed when the test ends.
func NewServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig()
	}

	log := zerolog.Nop()
	srv, err := server.New(cfg, &log, logger.NewLoggerService(cfg.Observability))
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	t.Cleanup(func() {
		_ = srv.DB.Close()
	})

	return srv
}
