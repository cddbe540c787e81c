package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultDBPath      = "data/warranty.db"
	DefaultJournalMode = "WAL"
	DefaultBusyTimeout = 5 * time.Second
)

// Config holds the settings shared by the warranty tools.
type Config struct {
	DBPath      string
	JournalMode string
	BusyTimeout time.Duration
	LogLevel    string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	cfg := Config{
		DBPath:      envString("WARRANTY_DB_PATH", envString("SQLITE_PATH", DefaultDBPath)),
		JournalMode: DefaultJournalMode,
		BusyTimeout: DefaultBusyTimeout,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}
	// An explicitly empty SQLITE_JOURNAL_MODE keeps SQLite's own default.
	if val, ok := os.LookupEnv("SQLITE_JOURNAL_MODE"); ok {
		cfg.JournalMode = val
	}
	if ms := envInt("SQLITE_BUSY_TIMEOUT_MS", -1); ms >= 0 {
		cfg.BusyTimeout = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

func envString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}
