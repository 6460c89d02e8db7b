package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item
// Maps to: products table
type Product struct {
	ID             uuid.UUID `db:"id" json:"id"`
	SKU            string    `db:"sku" json:"sku"`
	Name           string    `db:"name" json:"name"`
	Category       string    `db:"category" json:"category"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	TaxRateBP      int       `db:"tax_rate_bp" json:"tax_rate_bp"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ProductRequest is the payload for creating or updating a product
type ProductRequest struct {
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TaxRateBP      int    `json:"tax_rate_bp"`
}

// Validate checks the request
func (r *ProductRequest) Validate() error {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)

	if r.SKU == "" {
		return fmt.Errorf("sku is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.UnitPriceCents < 0 {
		return fmt.Errorf("unit_price_cents cannot be negative")
	}
	if r.TaxRateBP < 0 || r.TaxRateBP > 10000 {
		return fmt.Errorf("tax_rate_bp must be between 0 and 10000")
	}
	return nil
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}
