package models

import (
	"fmt"
	"strings"
	"time"

	"encoding/json"

	"github.com/google/uuid"
)

// Customer represents one version in a customer's version chain. Edits
// never mutate a row: each update inserts a successor and deactivates the
// old version, so the full attribute history survives for audit purposes.
// Maps to: customers table
type Customer struct {
	ID      uuid.UUID `db:"id" json:"id"`
	Name    string    `db:"name" json:"name"`
	Email   string    `db:"email" json:"email"`
	Phone   string    `db:"phone" json:"phone"`
	Address string    `db:"address" json:"address"`
	TaxID   string    `db:"tax_id" json:"tax_id"`

	// Version chain columns. previous_version points at the row this one
	// superseded; replaced_by is the inverse edge on the old row. Exactly
	// one version per chain is active.
	IsActive        bool       `db:"is_active" json:"is_active"`
	PreviousVersion *uuid.UUID `db:"previous_version" json:"previous_version,omitempty"`
	ReplacedBy      *uuid.UUID `db:"replaced_by" json:"replaced_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CustomerAttrs are the mutable business fields of a customer
type CustomerAttrs struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// Validate checks the attributes
func (a *CustomerAttrs) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)
	a.TaxID = strings.TrimSpace(a.TaxID)

	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(a.Name) > 200 {
		return fmt.Errorf("name too long (max 200 characters)")
	}
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		return fmt.Errorf("email is not valid")
	}
	return nil
}

// NewCustomer builds a fresh chain head from attributes
func NewCustomer(attrs CustomerAttrs) *Customer {
	return &Customer{
		ID:        uuid.New(),
		Name:      attrs.Name,
		Email:     attrs.Email,
		Phone:     attrs.Phone,
		Address:   attrs.Address,
		TaxID:     attrs.TaxID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// Successor builds the next version of this customer with new attributes.
// The returned row points back at c; the caller persists both sides of the
// link atomically.
func (c *Customer) Successor(attrs CustomerAttrs) *Customer {
	prev := c.ID
	return &Customer{
		ID:              uuid.New(),
		Name:            attrs.Name,
		Email:           attrs.Email,
		Phone:           attrs.Phone,
		Address:         attrs.Address,
		TaxID:           attrs.TaxID,
		IsActive:        true,
		PreviousVersion: &prev,
		CreatedAt:       time.Now().UTC(),
	}
}

// AttrsJSON serializes the business attributes for diffing between versions
func (c *Customer) AttrsJSON() ([]byte, error) {
	return json.Marshal(CustomerAttrs{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		TaxID:   c.TaxID,
	})
}

// CustomerVersion is one element of a customer's history, oldest-first.
// Diff is a JSON merge patch against the preceding version (nil for the
// chain head).
type CustomerVersion struct {
	Customer *Customer       `json:"customer"`
	Diff     json.RawMessage `json:"diff,omitempty"`
}
