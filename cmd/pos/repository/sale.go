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

// SaleRepository handles the checkout write path and sale queries
type SaleRepository struct {
	db *db.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *db.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// CreateSale persists the sale, its lines, the stock decrements and the
// outbound movements atomically. Any short stock row rolls the whole
// checkout back with ErrInsufficientStock.
func (r *SaleRepository) CreateSale(ctx context.Context, sale *models.Sale, items []models.SaleItem) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (id, cashier_id, customer_id, subtotal_cents, discount_cents, total_cents, promotion_code, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sale.ID,
			sale.CashierID,
			sale.CustomerID,
			sale.SubtotalCents,
			sale.DiscountCents,
			sale.TotalCents,
			sale.PromotionCode,
			sale.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		for _, item := range items {
			_, err := tx.Exec(ctx, `
				INSERT INTO sale_items (sale_id, product_id, quantity, unit_price_cents, line_total_cents)
				VALUES ($1, $2, $3, $4, $5)`,
				item.SaleID,
				item.ProductID,
				item.Quantity,
				item.UnitPriceCents,
				item.LineTotalCents,
			)
			if err != nil {
				return fmt.Errorf("failed to insert sale item: %w", err)
			}

			if err := decrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			movement := &models.StockMovement{
				ID:         uuid.New(),
				ProductID:  item.ProductID,
				Direction:  models.MovementOutbound,
				Quantity:   item.Quantity,
				SaleID:     &sale.ID,
				RecordedBy: sale.CashierID.String(),
				CreatedAt:  sale.CreatedAt,
			}
			if err := insertMovement(ctx, tx, movement); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID retrieves a sale with its lines
func (r *SaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	sale := &models.Sale{}
	err := r.db.QueryRow(ctx, `
		SELECT id, cashier_id, customer_id, subtotal_cents, discount_cents, total_cents, promotion_code, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&sale.ID,
		&sale.CashierID,
		&sale.CustomerID,
		&sale.SubtotalCents,
		&sale.DiscountCents,
		&sale.TotalCents,
		&sale.PromotionCode,
		&sale.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT sale_id, product_id, quantity, unit_price_cents, line_total_cents
		FROM sale_items WHERE sale_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale items: %w", err)
	}
	defer rows.Close()

	var items []models.SaleItem
	for rows.Next() {
		var item models.SaleItem
		err := rows.Scan(
			&item.SaleID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.LineTotalCents,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale items: %w", err)
	}

	return &models.Receipt{Sale: sale, Items: items}, nil
}

// List retrieves sales newest first
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, cashier_id, customer_id, subtotal_cents, discount_cents, total_cents, promotion_code, created_at
		FROM sales
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		sale := &models.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.CashierID,
			&sale.CustomerID,
			&sale.SubtotalCents,
			&sale.DiscountCents,
			&sale.TotalCents,
			&sale.PromotionCode,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}

// Summarize aggregates sale count and revenue since a point in time
func (r *SaleRepository) Summarize(ctx context.Context, since time.Time) (*models.SalesSummary, error) {
	summary := &models.SalesSummary{Since: since}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
		FROM sales WHERE created_at >= $1`, since).Scan(
		&summary.SaleCount,
		&summary.RevenueCents,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales: %w", err)
	}
	return summary, nil
}
