package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validCustomer() Customer {
	return Customer{Name: "Acme", City: "Springfield", CityType: "A"}
}

func validWarranty() Warranty {
	installed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return Warranty{
		SerialNumber:     "SN-001",
		CustomerID:       1,
		MachineModel:     "X100",
		InstallationDate: installed,
		Duration:         12,
		ExpiryDate:       ExpiryFrom(installed, 12),
	}
}

func TestCustomerValidate(t *testing.T) {
	if err := validCustomer().Validate(); err != nil {
		t.Fatalf("Validate(valid customer) failed: %v", err)
	}

	cases := map[string]func(*Customer){
		"missing name":      func(c *Customer) { c.Name = "" },
		"missing city":      func(c *Customer) { c.City = "" },
		"empty city type":   func(c *Customer) { c.CityType = "" },
		"long city type":    func(c *Customer) { c.CityType = "AB" },
		"long name":         func(c *Customer) { c.Name = strings.Repeat("n", 51) },
		"long contact":      func(c *Customer) { c.ContactPerson = strings.Repeat("c", 51) },
		"long phone number": func(c *Customer) { c.PhoneNumber = strings.Repeat("9", 21) },
	}
	for name, mutate := range cases {
		c := validCustomer()
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: Validate() = %v, want ErrInvalid", name, err)
		}
	}
}

func TestWarrantyValidate(t *testing.T) {
	if err := validWarranty().Validate(); err != nil {
		t.Fatalf("Validate(valid warranty) failed: %v", err)
	}

	cases := map[string]func(*Warranty){
		"missing serial":   func(w *Warranty) { w.SerialNumber = "" },
		"long serial":      func(w *Warranty) { w.SerialNumber = strings.Repeat("s", 21) },
		"missing customer": func(w *Warranty) { w.CustomerID = 0 },
		"long model":       func(w *Warranty) { w.MachineModel = "X100-EXTENDED" },
		"no installation":  func(w *Warranty) { w.InstallationDate = time.Time{} },
		"zero duration":    func(w *Warranty) { w.Duration = 0 },
		"no expiry":        func(w *Warranty) { w.ExpiryDate = time.Time{} },
	}
	for name, mutate := range cases {
		w := validWarranty()
		mutate(&w)
		if err := w.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: Validate() = %v, want ErrInvalid", name, err)
		}
	}
}

func TestExpiryFrom(t *testing.T) {
	installed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(ExpiryFrom(installed, 12)); got != "2025-01-01" {
		t.Errorf("ExpiryFrom(2024-01-01, 12) = %s, want 2025-01-01", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if FormatDate(d) != "2024-02-29" {
		t.Errorf("FormatDate(ParseDate) = %s, want 2024-02-29", FormatDate(d))
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
