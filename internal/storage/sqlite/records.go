package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hetulpatel/warranty/internal/models"
)

// warrantyRow mirrors the warranty table with dates as their stored text.
type warrantyRow struct {
	ID               int64  `db:"id"`
	SerialNumber     string `db:"serial_number"`
	CustomerID       int64  `db:"customer_id"`
	MachineModel     string `db:"machine_model"`
	InstallationDate string `db:"installation_date"`
	Duration         int    `db:"warranty_duration"`
	ExpiryDate       string `db:"expiry_date"`
}

func newWarrantyRow(w models.Warranty) warrantyRow {
	return warrantyRow{
		ID:               w.ID,
		SerialNumber:     w.SerialNumber,
		CustomerID:       w.CustomerID,
		MachineModel:     w.MachineModel,
		InstallationDate: models.FormatDate(w.InstallationDate),
		Duration:         w.Duration,
		ExpiryDate:       models.FormatDate(w.ExpiryDate),
	}
}

func (r warrantyRow) toModel() (models.Warranty, error) {
	installed, err := models.ParseDate(r.InstallationDate)
	if err != nil {
		return models.Warranty{}, err
	}
	expiry, err := models.ParseDate(r.ExpiryDate)
	if err != nil {
		return models.Warranty{}, err
	}
	return models.Warranty{
		ID:               r.ID,
		SerialNumber:     r.SerialNumber,
		CustomerID:       r.CustomerID,
		MachineModel:     r.MachineModel,
		InstallationDate: installed,
		Duration:         r.Duration,
		ExpiryDate:       expiry,
	}, nil
}

// CAST drops the DATE declared type so the driver hands back plain text.
const selectWarrantySQL = `
SELECT id, serial_number, customer_id, machine_model,
	CAST(installation_date AS TEXT) AS installation_date,
	warranty_duration,
	CAST(expiry_date AS TEXT) AS expiry_date
FROM warranty`

// InsertCustomer stores c and returns the assigned id.
func (s *Store) InsertCustomer(ctx context.Context, c models.Customer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	res, err := s.db.NamedExecContext(ctx, `
INSERT INTO customers (customer_name, city, city_type, contact_person, phone_number)
VALUES (:customer_name, :city, :city_type, :contact_person, :phone_number)`, c)
	if err != nil {
		return 0, fmt.Errorf("insert customer %q: %w", c.Name, err)
	}
	return res.LastInsertId()
}

// InsertWarranty stores w and returns the assigned id. A reused serial number
// yields ErrDuplicateSerial, a missing customer ErrUnknownCustomer.
func (s *Store) InsertWarranty(ctx context.Context, w models.Warranty) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}
	res, err := s.db.NamedExecContext(ctx, `
INSERT INTO warranty (serial_number, customer_id, machine_model, installation_date, warranty_duration, expiry_date)
VALUES (:serial_number, :customer_id, :machine_model, :installation_date, :warranty_duration, :expiry_date)`,
		newWarrantyRow(w))
	if err != nil {
		return 0, fmt.Errorf("insert warranty %s: %w", w.SerialNumber, classifyConstraint(err))
	}
	return res.LastInsertId()
}

// GetCustomer loads a customer by id.
func (s *Store) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	var c models.Customer
	err := s.db.GetContext(ctx, &c, `
SELECT id, customer_name, city, city_type, contact_person, phone_number
FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Customer{}, fmt.Errorf("get customer %d: %w", id, err)
	}
	return c, nil
}

// DeleteCustomer removes a customer; its warranties go with it.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetWarrantyBySerial loads a warranty by its machine serial number.
func (s *Store) GetWarrantyBySerial(ctx context.Context, serial string) (models.Warranty, error) {
	var row warrantyRow
	err := s.db.GetContext(ctx, &row, selectWarrantySQL+` WHERE serial_number = ?`, serial)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Warranty{}, fmt.Errorf("warranty %s: %w", serial, ErrNotFound)
	}
	if err != nil {
		return models.Warranty{}, fmt.Errorf("get warranty %s: %w", serial, err)
	}
	return row.toModel()
}

// ListWarranties returns the warranties of one customer ordered by id.
func (s *Store) ListWarranties(ctx context.Context, customerID int64) ([]models.Warranty, error) {
	var rows []warrantyRow
	err := s.db.SelectContext(ctx, &rows, selectWarrantySQL+` WHERE customer_id = ? ORDER BY id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list warranties for customer %d: %w", customerID, err)
	}
	out := make([]models.Warranty, 0, len(rows))
	for _, r := range rows {
		w, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// CountRows counts the rows of a managed table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	if !isManagedTable(table) {
		return 0, fmt.Errorf("count rows: unknown table %q", table)
	}
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
