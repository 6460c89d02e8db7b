package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MovementDirection says which way stock moved
type MovementDirection string

const (
	MovementInbound  MovementDirection = "inbound"
	MovementOutbound MovementDirection = "outbound"
)

// StockLevel is the current quantity on hand for a product
// Maps to: inventory table
type StockLevel struct {
	ProductID    uuid.UUID `db:"product_id" json:"product_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	SKU          string    `db:"sku" json:"sku"`
	Quantity     int64     `db:"quantity" json:"quantity"`
	ReorderLevel int64     `db:"reorder_level" json:"reorder_level"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StockMovement is one inbound receipt or outbound adjustment
// Maps to: stock_movements table
type StockMovement struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	ProductID     uuid.UUID         `db:"product_id" json:"product_id"`
	Direction     MovementDirection `db:"direction" json:"direction"`
	Quantity      int64             `db:"quantity" json:"quantity"`
	UnitCostCents *int64            `db:"unit_cost_cents" json:"unit_cost_cents,omitempty"`
	SupplierID    *uuid.UUID        `db:"supplier_id" json:"supplier_id,omitempty"`
	SaleID        *uuid.UUID        `db:"sale_id" json:"sale_id,omitempty"`
	Reason        *string           `db:"reason" json:"reason,omitempty"`
	RecordedBy    string            `db:"recorded_by" json:"recorded_by"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}

// InboundRequest records goods received from a supplier
type InboundRequest struct {
	ProductID     uuid.UUID  `json:"product_id"`
	Quantity      int64      `json:"quantity"`
	UnitCostCents *int64     `json:"unit_cost_cents,omitempty"`
	SupplierID    *uuid.UUID `json:"supplier_id,omitempty"`
}

// Validate checks the request
func (r *InboundRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.UnitCostCents != nil && *r.UnitCostCents < 0 {
		return fmt.Errorf("unit_cost_cents cannot be negative")
	}
	return nil
}

// OutboundRequest records stock leaving outside of a sale (damage,
// shrinkage, manual correction)
type OutboundRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Reason    string    `json:"reason"`
}

// Validate checks the request
func (r *OutboundRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}
