package main

import (
	"context"

	"github.com/hetulpatel/warranty/internal/config"
	"github.com/hetulpatel/warranty/internal/logging"
	"github.com/hetulpatel/warranty/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.Open(cfg.DBPath, sqlite.Options{BusyTimeout: cfg.BusyTimeout})
	if err != nil {
		logging.Fatalf("[warranty-clear] %v", err)
	}
	defer store.Close()

	if err := store.ClearTables(context.Background()); err != nil {
		store.Close()
		logging.Fatalf("[warranty-clear] clear tables: %v", err)
	}
	logging.Infof("[warranty-clear] tables cleared at %s", store.Path())
}
