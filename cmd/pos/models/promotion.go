package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Promotion is a discount rule. Expression is a CEL predicate evaluated
// against the cart at checkout; when it holds, DiscountBP basis points are
// taken off the subtotal. Example expressions:
//
//	subtotal_cents >= 10000
//	item_count >= 5 && subtotal_cents >= 2500
//
// Maps to: promotions table
type Promotion struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	Expression  string    `db:"expression" json:"expression"`
	DiscountBP  int       `db:"discount_bp" json:"discount_bp"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PromotionRequest is the payload for creating a promotion
type PromotionRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Expression  string `json:"expression"`
	DiscountBP  int    `json:"discount_bp"`
}

// Validate checks the request. Expression compilation happens in the
// promotion service, which owns the CEL environment.
func (r *PromotionRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	r.Expression = strings.TrimSpace(r.Expression)

	if r.Code == "" {
		return fmt.Errorf("code is required")
	}
	if r.Expression == "" {
		return fmt.Errorf("expression is required")
	}
	if r.DiscountBP <= 0 || r.DiscountBP > 10000 {
		return fmt.Errorf("discount_bp must be between 1 and 10000")
	}
	return nil
}
