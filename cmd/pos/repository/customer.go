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

const customerColumns = `id, name, email, phone, address, tax_id, is_active, previous_version, replaced_by, created_at`

// CustomerRepository handles database operations for customer version chains
type CustomerRepository struct {
	db *db.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *db.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Insert inserts a new chain head
func (r *CustomerRepository) Insert(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, tax_id, is_active, previous_version, replaced_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.TaxID,
		c.IsActive,
		c.PreviousVersion,
		c.ReplacedBy,
		c.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// Supersede performs the three-step update protocol in one transaction:
// deactivate the old version, insert the successor, and set the old row's
// forward pointer. The deactivation is guarded on is_active so a
// concurrent update of the same version loses and rolls back instead of
// producing two active children of one parent.
func (r *CustomerRepository) Supersede(ctx context.Context, existingID uuid.UUID, next *models.Customer) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx,
			`UPDATE customers SET is_active = false WHERE id = $1 AND is_active = true`,
			existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate customer version: %w", err)
		}
		if res.RowsAffected() == 0 {
			// Either the id is unknown or the version was already superseded
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, existingID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check customer existence: %w", err)
			}
			if !exists {
				return models.ErrNotFound
			}
			return models.ErrVersionSuperseded
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO customers (id, name, email, phone, address, tax_id, is_active, previous_version, replaced_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			next.ID,
			next.Name,
			next.Email,
			next.Phone,
			next.Address,
			next.TaxID,
			next.IsActive,
			next.PreviousVersion,
			next.ReplacedBy,
			next.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer successor: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE customers SET replaced_by = $1 WHERE id = $2`,
			next.ID, existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to link customer versions: %w", err)
		}

		return nil
	})
}

// GetByID retrieves any customer version by id
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c := &models.Customer{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.TaxID,
		&c.IsActive,
		&c.PreviousVersion,
		&c.ReplacedBy,
		&c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return c, nil
}

// FindActiveByField probes for an active customer matching the given field
// value (case-insensitive exact match). Returns nil when nothing matches.
func (r *CustomerRepository) FindActiveByField(ctx context.Context, field models.DuplicateField, value string) (*models.Customer, error) {
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

	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE is_active = true AND LOWER(` + column + `) = LOWER($1)
		LIMIT 1`

	c := &models.Customer{}
	err := r.db.QueryRow(ctx, query, value).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.TaxID,
		&c.IsActive,
		&c.PreviousVersion,
		&c.ReplacedBy,
		&c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to probe customers by %s: %w", field, err)
	}

	return c, nil
}

// ListActive retrieves active customers, newest first
func (r *CustomerRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c := &models.Customer{}
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Address,
			&c.TaxID,
			&c.IsActive,
			&c.PreviousVersion,
			&c.ReplacedBy,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Deactivate soft-deletes an active customer version without a successor
func (r *CustomerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx,
		`UPDATE customers SET is_active = false WHERE id = $1 AND is_active = true`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
