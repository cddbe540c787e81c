package models

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// DateLayout is the on-disk format of installation and expiry dates.
const DateLayout = "2006-01-02"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid record")

// Customer is a row of the customers table.
type Customer struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"customer_name" json:"customer_name"`
	City          string `db:"city" json:"city"`
	CityType      string `db:"city_type" json:"city_type"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	PhoneNumber   string `db:"phone_number" json:"phone_number"`
}

// Validate checks the customer against the column limits of the schema.
func (c Customer) Validate() error {
	if err := required("customer_name", c.Name, 50); err != nil {
		return err
	}
	if err := required("city", c.City, 50); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.CityType) != 1 {
		return fmt.Errorf("%w: city_type must be exactly one character, got %q", ErrInvalid, c.CityType)
	}
	if err := maxLen("contact_person", c.ContactPerson, 50); err != nil {
		return err
	}
	return maxLen("phone_number", c.PhoneNumber, 20)
}

// Warranty is a row of the warranty table. Duration is in months; ExpiryDate is
// stored as given and is not checked against InstallationDate+Duration.
type Warranty struct {
	ID               int64     `json:"id"`
	SerialNumber     string    `json:"serial_number"`
	CustomerID       int64     `json:"customer_id"`
	MachineModel     string    `json:"machine_model"`
	InstallationDate time.Time `json:"installation_date"`
	Duration         int       `json:"warranty_duration"`
	ExpiryDate       time.Time `json:"expiry_date"`
}

// Validate checks the warranty against the column limits of the schema.
func (w Warranty) Validate() error {
	if err := required("serial_number", w.SerialNumber, 20); err != nil {
		return err
	}
	if w.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id is required", ErrInvalid)
	}
	if err := required("machine_model", w.MachineModel, 10); err != nil {
		return err
	}
	if w.InstallationDate.IsZero() {
		return fmt.Errorf("%w: installation_date is required", ErrInvalid)
	}
	if w.Duration <= 0 {
		return fmt.Errorf("%w: warranty_duration must be positive, got %d", ErrInvalid, w.Duration)
	}
	if w.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: expiry_date is required", ErrInvalid)
	}
	return nil
}

// ExpiryFrom returns installation shifted by the given number of months.
func ExpiryFrom(installation time.Time, months int) time.Time {
	return installation.AddDate(0, months, 0)
}

// FormatDate renders a date the way it is persisted.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a persisted date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func required(field, val string, limit int) error {
	if val == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, field)
	}
	return maxLen(field, val, limit)
}

func maxLen(field, val string, limit int) error {
	if n := utf8.RuneCountInString(val); n > limit {
		return fmt.Errorf("%w: %s exceeds %d characters (%d)", ErrInvalid, field, limit, n)
	}
	return nil
}
