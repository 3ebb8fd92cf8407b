// Command seed loads the base catalog, the test participants and the
// admin/captador accounts. Safe to re-run.
package main

import (
	"context"
	"os"

	"coicit/internal/platform/config"
	"coicit/internal/platform/logger"
	"coicit/internal/platform/postgres"
	"coicit/internal/seed"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("open database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Error("migrate database failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed completed")
}
