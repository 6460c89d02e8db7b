package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories and services. Handlers map
// them to HTTP status codes.
var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("not found")

	// ErrVersionSuperseded is returned when an update targets a version
	// that is no longer the active head of its chain
	ErrVersionSuperseded = errors.New("version already superseded")

	// ErrInsufficientStock is returned when an outbound movement would
	// drive a stock level negative
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart is returned when checkout is attempted on an empty cart
	ErrEmptyCart = errors.New("cart is empty")

	// ErrForbidden is returned when the session lacks a required permission
	ErrForbidden = errors.New("forbidden")

	// ErrInsightsDisabled is returned when no generation endpoint is configured
	ErrInsightsDisabled = errors.New("insights are not configured")
)

// DuplicateField names the attribute a duplicate probe matched on
type DuplicateField string

const (
	DuplicateByName  DuplicateField = "name"
	DuplicateByEmail DuplicateField = "email"
	DuplicateByPhone DuplicateField = "phone"
)

// DuplicateEntityError is returned when creating an entity that collides
// with an existing active one. EntityID and EntityName identify the row
// that matched; Field says which probe caught it (name wins over email,
// email over phone).
type DuplicateEntityError struct {
	Kind       string
	Field      DuplicateField
	EntityID   string
	EntityName string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s with the same %s already exists: %s", e.Kind, e.Field, e.EntityName)
}

// IsDuplicateEntity reports whether err is a DuplicateEntityError
func IsDuplicateEntity(err error) (*DuplicateEntityError, bool) {
	var dup *DuplicateEntityError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
