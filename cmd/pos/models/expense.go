package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is one operations-expense entry
// Maps to: expenses table
type Expense struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	IncurredOn  time.Time `db:"incurred_on" json:"incurred_on"`
	RecordedBy  string    `db:"recorded_by" json:"recorded_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ExpenseRequest is the payload for logging an expense
type ExpenseRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	IncurredOn  string `json:"incurred_on"` // YYYY-MM-DD
}

// Validate checks the request and parses the date
func (r *ExpenseRequest) Validate() (time.Time, error) {
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)

	if r.Category == "" {
		return time.Time{}, fmt.Errorf("category is required")
	}
	if r.AmountCents <= 0 {
		return time.Time{}, fmt.Errorf("amount_cents must be positive")
	}

	incurredOn, err := time.Parse("2006-01-02", r.IncurredOn)
	if err != nil {
		return time.Time{}, fmt.Errorf("incurred_on must be YYYY-MM-DD: %w", err)
	}

	return incurredOn, nil
}
