package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateSerial = errors.New("serial number already registered")
	ErrUnknownCustomer = errors.New("customer does not exist")

	ErrIncompatibleTable = errors.New("existing table does not match the warranty schema")
)

// ConnectionError reports that the database at Path could not be opened.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open sqlite %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaError reports a failed table statement. Table is empty when the
// failure was in the surrounding transaction rather than a single table.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema: %v", e.Err)
	}
	return fmt.Sprintf("schema %s: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// classifyConstraint maps SQLite constraint violations on warranty inserts to
// package sentinels, keeping the driver error in the chain.
func classifyConstraint(err error) error {
	var serr *sqlite.Error
	if !errors.As(err, &serr) || serr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}
	msg := serr.Error()
	switch {
	case strings.Contains(msg, "UNIQUE"):
		return fmt.Errorf("%w: %w", ErrDuplicateSerial, err)
	case strings.Contains(msg, "FOREIGN KEY"):
		return fmt.Errorf("%w: %w", ErrUnknownCustomer, err)
	}
	return err
}
