package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/db"
)

const promotionColumns = `id, code, description, expression, discount_bp, is_active, created_at`

// PromotionRepository handles database operations for promotions
type PromotionRepository struct {
	db *db.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *db.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func scanPromotion(row pgx.Row) (*models.Promotion, error) {
	p := &models.Promotion{}
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Description,
		&p.Expression,
		&p.DiscountBP,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a promotion
func (r *PromotionRepository) Create(ctx context.Context, p *models.Promotion) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO promotions (id, code, description, expression, discount_bp, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID,
		p.Code,
		p.Description,
		p.Expression,
		p.DiscountBP,
		p.IsActive,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

// GetActiveByCode retrieves an active promotion by code
func (r *PromotionRepository) GetActiveByCode(ctx context.Context, code string) (*models.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE code = $1 AND is_active = true`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}
	return p, nil
}

// ListActive retrieves active promotions
func (r *PromotionRepository) ListActive(ctx context.Context) ([]*models.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE is_active = true ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*models.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating promotions: %w", err)
	}

	return promotions, nil
}

// Deactivate retires a promotion by code
func (r *PromotionRepository) Deactivate(ctx context.Context, code string) error {
	res, err := r.db.Exec(ctx,
		`UPDATE promotions SET is_active = false WHERE code = $1 AND is_active = true`,
		code,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate promotion: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
