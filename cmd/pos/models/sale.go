package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is one completed checkout
// Maps to: sales table
type Sale struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	CashierID     uuid.UUID  `db:"cashier_id" json:"cashier_id"`
	CustomerID    *uuid.UUID `db:"customer_id" json:"customer_id,omitempty"`
	SubtotalCents int64      `db:"subtotal_cents" json:"subtotal_cents"`
	DiscountCents int64      `db:"discount_cents" json:"discount_cents"`
	TotalCents    int64      `db:"total_cents" json:"total_cents"`
	PromotionCode *string    `db:"promotion_code" json:"promotion_code,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// SaleItem is one product line of a sale
// Maps to: sale_items table
type SaleItem struct {
	SaleID         uuid.UUID `db:"sale_id" json:"sale_id"`
	ProductID      uuid.UUID `db:"product_id" json:"product_id"`
	Quantity       int64     `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	LineTotalCents int64     `db:"line_total_cents" json:"line_total_cents"`
}

// CheckoutRequest finalizes the caller's cart into a sale
type CheckoutRequest struct {
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

// Receipt is the checkout response: the sale plus its lines
type Receipt struct {
	Sale  *Sale      `json:"sale"`
	Items []SaleItem `json:"items"`
}

// SalesSummary aggregates sales over a period, fed to the insight reports
type SalesSummary struct {
	Since        time.Time `json:"since"`
	SaleCount    int64     `json:"sale_count"`
	RevenueCents int64     `json:"revenue_cents"`
}
