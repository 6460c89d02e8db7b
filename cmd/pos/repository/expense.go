package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/db"
)

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	db *db.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *db.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts an expense entry
func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO expenses (id, category, description, amount_cents, incurred_on, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID,
		e.Category,
		e.Description,
		e.AmountCents,
		e.IncurredOn,
		e.RecordedBy,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by id
func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	e := &models.Expense{}
	err := r.db.QueryRow(ctx, `
		SELECT id, category, description, amount_cents, incurred_on, recorded_by, created_at
		FROM expenses WHERE id = $1`, id).Scan(
		&e.ID,
		&e.Category,
		&e.Description,
		&e.AmountCents,
		&e.IncurredOn,
		&e.RecordedBy,
		&e.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// List retrieves expenses filtered by category and date window, newest first
func (r *ExpenseRepository) List(ctx context.Context, category string, from, to time.Time, limit, offset int) ([]*models.Expense, error) {
	query := `
		SELECT id, category, description, amount_cents, incurred_on, recorded_by, created_at
		FROM expenses
		WHERE ($1 = '' OR category = $1)
		AND ($2::timestamptz IS NULL OR incurred_on >= $2)
		AND ($3::timestamptz IS NULL OR incurred_on <= $3)
		ORDER BY incurred_on DESC, created_at DESC
		LIMIT $4 OFFSET $5`

	var fromArg, toArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}
	if !to.IsZero() {
		toArg = &to
	}

	rows, err := r.db.Query(ctx, query, category, fromArg, toArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		err := rows.Scan(
			&e.ID,
			&e.Category,
			&e.Description,
			&e.AmountCents,
			&e.IncurredOn,
			&e.RecordedBy,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// Delete removes an expense entry
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TotalSince sums expense amounts from a point in time, fed to insight stats
func (r *ExpenseRepository) TotalSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE incurred_on >= $1`,
		since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to total expenses: %w", err)
	}
	return total, nil
}
