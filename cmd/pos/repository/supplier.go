package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/db"
)

const supplierColumns = `id, name, contact_person, email, phone, address, tax_id, payment_terms, is_active, previous_version, replaced_by, created_at`

// SupplierRepository handles database operations for supplier version chains
type SupplierRepository struct {
	db *db.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *db.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	s := &models.Supplier{}
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ContactPerson,
		&s.Email,
		&s.Phone,
		&s.Address,
		&s.TaxID,
		&s.PaymentTerms,
		&s.IsActive,
		&s.PreviousVersion,
		&s.ReplacedBy,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Insert inserts a new chain head
func (r *SupplierRepository) Insert(ctx context.Context, s *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_person, email, phone, address, tax_id, payment_terms, is_active, previous_version, replaced_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		s.ID,
		s.Name,
		s.ContactPerson,
		s.Email,
		s.Phone,
		s.Address,
		s.TaxID,
		s.PaymentTerms,
		s.IsActive,
		s.PreviousVersion,
		s.ReplacedBy,
		s.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

// Supersede performs the three-step update protocol in one transaction.
// Same guard as the customer repository: the deactivation only hits the
// still-active row, so a stale update rolls back with ErrVersionSuperseded.
func (r *SupplierRepository) Supersede(ctx context.Context, existingID uuid.UUID, next *models.Supplier) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx,
			`UPDATE suppliers SET is_active = false WHERE id = $1 AND is_active = true`,
			existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate supplier version: %w", err)
		}
		if res.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1)`, existingID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check supplier existence: %w", err)
			}
			if !exists {
				return models.ErrNotFound
			}
			return models.ErrVersionSuperseded
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO suppliers (id, name, contact_person, email, phone, address, tax_id, payment_terms, is_active, previous_version, replaced_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			next.ID,
			next.Name,
			next.ContactPerson,
			next.Email,
			next.Phone,
			next.Address,
			next.TaxID,
			next.PaymentTerms,
			next.IsActive,
			next.PreviousVersion,
			next.ReplacedBy,
			next.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert supplier successor: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE suppliers SET replaced_by = $1 WHERE id = $2`,
			next.ID, existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to link supplier versions: %w", err)
		}

		return nil
	})
}

// GetByID retrieves any supplier version by id
func (r *SupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	s, err := scanSupplier(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return s, nil
}

// FindActiveByField probes for an active supplier matching the given field
// value (case-insensitive exact match). Returns nil when nothing matches.
func (r *SupplierRepository) FindActiveByField(ctx context.Context, field models.DuplicateField, value string) (*models.Supplier, error) {
	var column string
	switch field {
	case models.DuplicateByName:
		column = "name"
	case models.DuplicateByEmail:
		column = "email"
	case models.DuplicateByPhone:
		column = "phone"
	default:
		return nil, fmt.Errorf("unknown duplicate field: %s", field)
	}

	query := `SELECT ` + supplierColumns + ` FROM suppliers
		WHERE is_active = true AND LOWER(` + column + `) = LOWER($1)
		LIMIT 1`

	s, err := scanSupplier(r.db.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to probe suppliers by %s: %w", field, err)
	}

	return s, nil
}

// ListActive retrieves active suppliers, newest first
func (r *SupplierRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating suppliers: %w", err)
	}

	return suppliers, nil
}

// Deactivate soft-deletes an active supplier version without a successor
func (r *SupplierRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx,
		`UPDATE suppliers SET is_active = false WHERE id = $1 AND is_active = true`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate supplier: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
