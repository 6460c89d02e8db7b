package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Supplier represents one version in a supplier's version chain, under the
// same supersede protocol as Customer.
// Maps to: suppliers table
type Supplier struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	TaxID         string    `db:"tax_id" json:"tax_id"`
	PaymentTerms  string    `db:"payment_terms" json:"payment_terms"`

	IsActive        bool       `db:"is_active" json:"is_active"`
	PreviousVersion *uuid.UUID `db:"previous_version" json:"previous_version,omitempty"`
	ReplacedBy      *uuid.UUID `db:"replaced_by" json:"replaced_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SupplierAttrs are the mutable business fields of a supplier
type SupplierAttrs struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	TaxID         string `json:"tax_id"`
	PaymentTerms  string `json:"payment_terms"`
}

// Validate checks the attributes
func (a *SupplierAttrs) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.ContactPerson = strings.TrimSpace(a.ContactPerson)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)
	a.TaxID = strings.TrimSpace(a.TaxID)
	a.PaymentTerms = strings.TrimSpace(a.PaymentTerms)

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

// NewSupplier builds a fresh chain head from attributes
func NewSupplier(attrs SupplierAttrs) *Supplier {
	return &Supplier{
		ID:            uuid.New(),
		Name:          attrs.Name,
		ContactPerson: attrs.ContactPerson,
		Email:         attrs.Email,
		Phone:         attrs.Phone,
		Address:       attrs.Address,
		TaxID:         attrs.TaxID,
		PaymentTerms:  attrs.PaymentTerms,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
}

// Successor builds the next version of this supplier with new attributes
func (s *Supplier) Successor(attrs SupplierAttrs) *Supplier {
	prev := s.ID
	return &Supplier{
		ID:              uuid.New(),
		Name:            attrs.Name,
		ContactPerson:   attrs.ContactPerson,
		Email:           attrs.Email,
		Phone:           attrs.Phone,
		Address:         attrs.Address,
		TaxID:           attrs.TaxID,
		PaymentTerms:    attrs.PaymentTerms,
		IsActive:        true,
		PreviousVersion: &prev,
		CreatedAt:       time.Now().UTC(),
	}
}

// AttrsJSON serializes the business attributes for diffing between versions
func (s *Supplier) AttrsJSON() ([]byte, error) {
	return json.Marshal(SupplierAttrs{
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		TaxID:         s.TaxID,
		PaymentTerms:  s.PaymentTerms,
	})
}

// SupplierVersion is one element of a supplier's history, oldest-first
type SupplierVersion struct {
	Supplier *Supplier       `json:"supplier"`
	Diff     json.RawMessage `json:"diff,omitempty"`
}
