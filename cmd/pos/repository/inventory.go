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

// InventoryRepository handles stock levels and movement history
type InventoryRepository struct {
	db *db.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *db.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetStockLevel retrieves the current quantity for one product
func (r *InventoryRepository) GetStockLevel(ctx context.Context, productID uuid.UUID) (*models.StockLevel, error) {
	query := `
		SELECT i.product_id, p.name, p.sku, i.quantity, i.reorder_level, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.product_id = $1`

	level := &models.StockLevel{}
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&level.ProductID,
		&level.ProductName,
		&level.SKU,
		&level.Quantity,
		&level.ReorderLevel,
		&level.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock level: %w", err)
	}

	return level, nil
}

// ListStockLevels retrieves stock levels for all active products
func (r *InventoryRepository) ListStockLevels(ctx context.Context, limit, offset int) ([]*models.StockLevel, error) {
	query := `
		SELECT i.product_id, p.name, p.sku, i.quantity, i.reorder_level, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE p.is_active = true
		ORDER BY p.name ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}
	defer rows.Close()

	return collectStockLevels(rows)
}

// ListLowStock retrieves active products at or below their reorder level
func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]*models.StockLevel, error) {
	query := `
		SELECT i.product_id, p.name, p.sku, i.quantity, i.reorder_level, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE p.is_active = true AND i.quantity <= i.reorder_level
		ORDER BY i.quantity ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	defer rows.Close()

	return collectStockLevels(rows)
}

func collectStockLevels(rows pgx.Rows) ([]*models.StockLevel, error) {
	var levels []*models.StockLevel
	for rows.Next() {
		level := &models.StockLevel{}
		err := rows.Scan(
			&level.ProductID,
			&level.ProductName,
			&level.SKU,
			&level.Quantity,
			&level.ReorderLevel,
			&level.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock levels: %w", err)
	}

	return levels, nil
}

// SetReorderLevel updates the reorder threshold for a product
func (r *InventoryRepository) SetReorderLevel(ctx context.Context, productID uuid.UUID, level int64) error {
	res, err := r.db.Exec(ctx,
		`UPDATE inventory SET reorder_level = $2, updated_at = NOW() WHERE product_id = $1`,
		productID, level,
	)
	if err != nil {
		return fmt.Errorf("failed to set reorder level: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RecordInbound increments stock and writes the movement in one transaction
func (r *InventoryRepository) RecordInbound(ctx context.Context, m *models.StockMovement) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx,
			`UPDATE inventory SET quantity = quantity + $2, updated_at = NOW() WHERE product_id = $1`,
			m.ProductID, m.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to increment stock: %w", err)
		}
		if res.RowsAffected() == 0 {
			return models.ErrNotFound
		}

		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
		return nil
	})
}

// RecordOutbound decrements stock and writes the movement in one transaction.
// The decrement is guarded so stock never goes negative; a short row turns
// into ErrInsufficientStock and the transaction rolls back.
func (r *InventoryRepository) RecordOutbound(ctx context.Context, m *models.StockMovement) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		if err := decrementStock(ctx, tx, m.ProductID, m.Quantity); err != nil {
			return err
		}
		if err := insertMovement(ctx, tx, m); err != nil {
			return err
		}
		return nil
	})
}

// decrementStock takes quantity off a product's stock inside tx, refusing
// to go below zero. Shared with the checkout write path.
func decrementStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int64) error {
	res, err := tx.Exec(ctx,
		`UPDATE inventory SET quantity = quantity - $2, updated_at = NOW()
		 WHERE product_id = $1 AND quantity >= $2`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM inventory WHERE product_id = $1)`, productID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check inventory row: %w", err)
		}
		if !exists {
			return models.ErrNotFound
		}
		return fmt.Errorf("product %s: %w", productID, models.ErrInsufficientStock)
	}
	return nil
}

func insertMovement(ctx context.Context, tx pgx.Tx, m *models.StockMovement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, direction, quantity, unit_cost_cents, supplier_id, sale_id, reason, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID,
		m.ProductID,
		m.Direction,
		m.Quantity,
		m.UnitCostCents,
		m.SupplierID,
		m.SaleID,
		m.Reason,
		m.RecordedBy,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement: %w", err)
	}
	return nil
}

// ListMovements retrieves movement history for a product, newest first
func (r *InventoryRepository) ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	query := `
		SELECT id, product_id, direction, quantity, unit_cost_cents, supplier_id, sale_id, reason, recorded_by, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		m := &models.StockMovement{}
		err := rows.Scan(
			&m.ID,
			&m.ProductID,
			&m.Direction,
			&m.Quantity,
			&m.UnitCostCents,
			&m.SupplierID,
			&m.SaleID,
			&m.Reason,
			&m.RecordedBy,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movements: %w", err)
	}

	return movements, nil
}
