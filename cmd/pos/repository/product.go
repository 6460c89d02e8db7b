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

const productColumns = `id, sku, name, category, unit_price_cents, tax_rate_bp, is_active, created_at, updated_at`

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *db.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *db.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Category,
		&p.UnitPriceCents,
		&p.TaxRateBP,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new product and its zero inventory row
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, sku, name, category, unit_price_cents, tax_rate_bp, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID,
			p.SKU,
			p.Name,
			p.Category,
			p.UnitPriceCents,
			p.TaxRateBP,
			p.IsActive,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO inventory (product_id, quantity, updated_at) VALUES ($1, 0, $2)`,
			p.ID, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create inventory row: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a product by id
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// GetBySKU retrieves a product by SKU
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product by sku: %w", err)
	}

	return p, nil
}

// Update rewrites a product's mutable fields
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	res, err := r.db.Exec(ctx, `
		UPDATE products
		SET sku = $2, name = $3, category = $4, unit_price_cents = $5, tax_rate_bp = $6, updated_at = NOW()
		WHERE id = $1`,
		p.ID,
		p.SKU,
		p.Name,
		p.Category,
		p.UnitPriceCents,
		p.TaxRateBP,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a product
func (r *ProductRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// List retrieves active products with optional category/search filters
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active = true
		AND ($1 = '' OR category = $1)
		AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR sku ILIKE '%' || $2 || '%')
		ORDER BY name ASC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, filter.Category, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
