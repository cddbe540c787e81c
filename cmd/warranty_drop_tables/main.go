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
		logging.Fatalf("[warranty-drop] %v", err)
	}
	defer store.Close()

	if err := store.DropTables(context.Background()); err != nil {
		store.Close()
		logging.Fatalf("[warranty-drop] drop tables: %v", err)
	}
	logging.Infof("[warranty-drop] tables dropped at %s", store.Path())
}
