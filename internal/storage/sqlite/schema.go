package sqlite

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
)

const (
	TableCustomers = "customers"
	TableWarranty  = "warranty"
)

type tableDef struct {
	name    string
	ddl     string
	columns []string
}

// managedTables is in creation order: warranty references customers.
var managedTables = []tableDef{
	{
		name:    TableCustomers,
		ddl:     customersSchemaSQL,
		columns: []string{"id", "customer_name", "city", "city_type", "contact_person", "phone_number"},
	},
	{
		name:    TableWarranty,
		ddl:     warrantySchemaSQL,
		columns: []string{"id", "serial_number", "customer_id", "machine_model", "installation_date", "warranty_duration", "expiry_date"},
	},
}

const customersSchemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer_name VARCHAR(50) NOT NULL,
	city VARCHAR(50) NOT NULL,
	city_type VARCHAR(1) NOT NULL,
	contact_person VARCHAR(50) NOT NULL DEFAULT '',
	phone_number VARCHAR(20) NOT NULL DEFAULT ''
);
`

const warrantySchemaSQL = `
CREATE TABLE IF NOT EXISTS warranty (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	serial_number VARCHAR(20) NOT NULL UNIQUE,
	customer_id INTEGER NOT NULL,
	machine_model VARCHAR(10) NOT NULL,
	installation_date DATE NOT NULL,
	warranty_duration INTEGER NOT NULL,
	expiry_date DATE NOT NULL,
	FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
);
`

func isManagedTable(name string) bool {
	for _, t := range managedTables {
		if t.name == name {
			return true
		}
	}
	return false
}

// verifyTables checks that tables which already existed under the managed
// names have the expected layout, since CREATE TABLE IF NOT EXISTS skips them.
func verifyTables(ctx context.Context, q sqlx.QueryerContext) error {
	for _, t := range managedTables {
		var cols []string
		if err := sqlx.SelectContext(ctx, q, &cols, `SELECT name FROM pragma_table_info(?) ORDER BY cid`, t.name); err != nil {
			return &SchemaError{Table: t.name, Err: fmt.Errorf("read columns: %w", err)}
		}
		if !slices.Equal(cols, t.columns) {
			return &SchemaError{Table: t.name, Err: fmt.Errorf("%w: columns %v, want %v", ErrIncompatibleTable, cols, t.columns)}
		}
	}

	var cascades int
	err := sqlx.GetContext(ctx, q, &cascades, `
SELECT COUNT(*) FROM pragma_foreign_key_list('warranty')
WHERE "table" = 'customers' AND "from" = 'customer_id' AND "to" = 'id' AND on_delete = 'CASCADE'`)
	if err != nil {
		return &SchemaError{Table: TableWarranty, Err: fmt.Errorf("read foreign keys: %w", err)}
	}
	if cascades != 1 {
		return &SchemaError{Table: TableWarranty, Err: fmt.Errorf("%w: customer_id must reference customers(id) on delete cascade", ErrIncompatibleTable)}
	}

	var unique int
	err = sqlx.GetContext(ctx, q, &unique, `
SELECT COUNT(*) FROM pragma_index_list('warranty') AS il, pragma_index_info(il.name) AS ii
WHERE il."unique" = 1 AND ii.name = 'serial_number'`)
	if err != nil {
		return &SchemaError{Table: TableWarranty, Err: fmt.Errorf("read indexes: %w", err)}
	}
	if unique == 0 {
		return &SchemaError{Table: TableWarranty, Err: fmt.Errorf("%w: serial_number must be unique", ErrIncompatibleTable)}
	}
	return nil
}
