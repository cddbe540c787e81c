package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hetulpatel/warranty/internal/config"
	"github.com/hetulpatel/warranty/internal/logging"
	"github.com/hetulpatel/warranty/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	opts := sqlite.Options{JournalMode: cfg.JournalMode, BusyTimeout: cfg.BusyTimeout}
	if err := sqlite.InitializeSchema(ctx, cfg.DBPath, opts); err != nil {
		logging.Fatalf("[warranty-init] initialize schema: %v", err)
	}
	logging.Infof("[warranty-init] schema ready at %s", cfg.DBPath)
}
