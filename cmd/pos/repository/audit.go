package repository

import (
	"context"
	"fmt"

	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/db"
)

// AuditRepository persists and queries audit-log rows
type AuditRepository struct {
	db *db.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *db.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit row. Detail may be nil.
func (r *AuditRepository) Insert(ctx context.Context, actor, action, entityKind, entityID string, detail []byte) error {
	var detailArg any
	if len(detail) > 0 {
		detailArg = detail
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_log (actor, action, entity_kind, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)`,
		actor, action, entityKind, entityID, detailArg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// List retrieves audit entries, newest first, optionally narrowed to one entity
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, actor, action, entity_kind, entity_id, detail, created_at
		FROM audit_log
		WHERE ($1 = '' OR entity_kind = $1)
		AND ($2 = '' OR entity_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.EntityKind, filter.EntityID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		e := &models.AuditEntry{}
		err := rows.Scan(
			&e.ID,
			&e.Actor,
			&e.Action,
			&e.EntityKind,
			&e.EntityID,
			&e.Detail,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, nil
}
