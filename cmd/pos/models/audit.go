package models

import (
	"encoding/json"
	"time"
)

// AuditEvent is the queue payload published by services after a state
// change. The recorder consumes it and persists an AuditEntry.
type AuditEvent struct {
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	EntityKind string         `json:"entity_kind"`
	EntityID   string         `json:"entity_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// AuditEntry is a persisted audit-log row
// Maps to: audit_log table
type AuditEntry struct {
	ID         int64           `db:"id" json:"id"`
	Actor      string          `db:"actor" json:"actor"`
	Action     string          `db:"action" json:"action"`
	EntityKind string          `db:"entity_kind" json:"entity_kind"`
	EntityID   string          `db:"entity_id" json:"entity_id"`
	Detail     json.RawMessage `db:"detail" json:"detail,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit-log listings
type AuditFilter struct {
	EntityKind string
	EntityID   string
	Limit      int
	Offset     int
}
