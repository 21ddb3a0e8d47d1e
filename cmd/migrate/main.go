// Command migrate applies the embedded PostgreSQL migrations and exits.
package main

import (
	"context"
	"os"
	"time"

	"github.com/deppfellow/tutorial-api/internal/config"
	"github.com/deppfellow/tutorial-api/internal/database"
	"github.com/deppfellow/tutorial-api/internal/logger"
	"github.com/rs/zerolog"
)

const migrateTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.NewLogger(cfg.Observability)

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
}
