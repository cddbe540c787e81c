package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/hetulpatel/warranty/internal/logging"
)

const (
	defaultPath = "data/warranty.db"
	driverName  = "sqlite"
	memoryPath  = ":memory:"
)

// Options tune the connection. The zero value keeps SQLite defaults.
type Options struct {
	JournalMode string
	BusyTimeout time.Duration
}

// State is the initialization state of a database file.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
)

func (s State) String() string {
	if s == StateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Store wraps a SQLite DB connection.
type Store struct {
	path string
	db   *sqlx.DB
}

// openDB is swapped in tests to observe the handle lifecycle.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open(driverName, dsn)
}

// Open creates (if needed) and opens the SQLite database. It makes no schema
// changes. Failures are returned as *ConnectionError.
func Open(path string, opts Options) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if opts.JournalMode != "" && !validJournalMode(opts.JournalMode) {
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("unsupported journal mode %q", opts.JournalMode)}
	}
	// file: URIs are handed to SQLite as-is.
	if path != memoryPath && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &ConnectionError{Path: path, Err: fmt.Errorf("ensure data dir: %w", err)}
		}
	}
	db, err := openDB(buildDSN(path, opts))
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	// One connection keeps per-connection pragmas and :memory: databases coherent.
	db.SetMaxOpenConns(1)

	if err := probe(db, opts); err != nil {
		db.Close()
		logging.Errorf("[sqlite] error connecting to the database at %s: %v", path, err)
		return nil, &ConnectionError{Path: path, Err: err}
	}
	logging.Infof("[sqlite] connected to the database at %s", path)
	return &Store{path: path, db: sqlx.NewDb(db, driverName)}, nil
}

func validJournalMode(mode string) bool {
	switch strings.ToUpper(mode) {
	case "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF":
		return true
	}
	return false
}

func buildDSN(path string, opts Options) string {
	params := []string{"_pragma=foreign_keys(1)"}
	if opts.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_pragma=busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// probe forces the file to be opened and its header read, so unreadable or
// corrupt files fail here rather than on first use.
func probe(db *sql.DB, opts Options) error {
	var version int
	if err := db.QueryRow(`PRAGMA schema_version;`).Scan(&version); err != nil {
		return err
	}
	if opts.JournalMode == "" {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA journal_mode=%s;", opts.JournalMode)); err != nil {
		return fmt.Errorf("set journal mode %s: %w", opts.JournalMode, err)
	}
	return nil
}

// InitializeSchema opens the database at path, creates both tables and closes
// the connection again on every exit path.
func InitializeSchema(ctx context.Context, path string, opts Options) (err error) {
	store, err := Open(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sqlite: %w", cerr)
		}
		logging.Debugf("[sqlite] database connection closed")
	}()
	if err := store.CreateTables(ctx); err != nil {
		logging.Errorf("[sqlite] error initializing the database at %s: %v", store.Path(), err)
		return err
	}
	return nil
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for callers issuing their own queries.
func (s *Store) DB() *sql.DB {
	return s.db.DB
}

// Close closes the DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateTables ensures customers and warranty exist with the expected layout.
// Both are created in one transaction; on failure neither is left behind.
func (s *Store) CreateTables(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &SchemaError{Err: fmt.Errorf("begin: %w", err)}
	}
	defer tx.Rollback()

	for _, t := range managedTables {
		if _, err := tx.ExecContext(ctx, t.ddl); err != nil {
			return &SchemaError{Table: t.name, Err: err}
		}
	}
	if err := verifyTables(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &SchemaError{Err: fmt.Errorf("commit: %w", err)}
	}
	for _, t := range managedTables {
		logging.Infof("[sqlite] created or verified %q table", t.name)
	}
	return nil
}

// DropTables removes both tables, dependents first.
func (s *Store) DropTables(ctx context.Context) error {
	return s.execAll(ctx,
		`DROP TABLE IF EXISTS warranty;`,
		`DROP TABLE IF EXISTS customers;`,
	)
}

// ClearTables deletes every row and restarts id assignment at 1.
func (s *Store) ClearTables(ctx context.Context) error {
	return s.execAll(ctx,
		`DELETE FROM warranty;`,
		`DELETE FROM customers;`,
		`DELETE FROM sqlite_sequence WHERE name IN ('warranty', 'customers');`,
	)
}

func (s *Store) execAll(ctx context.Context, stmts ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Tables lists which of the managed tables currently exist, in creation order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (?, ?)`,
		TableCustomers, TableWarranty)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	out := make([]string, 0, len(names))
	for _, t := range managedTables {
		if present[t.name] {
			out = append(out, t.name)
		}
	}
	return out, nil
}

// State reports StateInitialized only when both tables are present with the
// expected layout. Incompatible tables yield a *SchemaError.
func (s *Store) State(ctx context.Context) (State, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return StateUninitialized, err
	}
	if len(tables) != len(managedTables) {
		return StateUninitialized, nil
	}
	if err := verifyTables(ctx, s.db); err != nil {
		return StateUninitialized, err
	}
	return StateInitialized, nil
}
