package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
)

// CheckoutService turns a cart into a sale. Pricing is resolved from the
// catalog at checkout time, the optional promotion is evaluated over the
// cart aggregates, and the sale plus stock decrements land in one
// database transaction. The cart is cleared only after commit.
type CheckoutService struct {
	carts      *CartService
	catalog    *CatalogService
	promotions *PromotionService
	sales      *repository.SaleRepository
	audit      *AuditService
	log        *logger.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(carts *CartService, catalog *CatalogService, promotions *PromotionService, sales *repository.SaleRepository, audit *AuditService, log *logger.Logger) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		catalog:    catalog,
		promotions: promotions,
		sales:      sales,
		audit:      audit,
		log:        log,
	}
}

// Checkout finalizes the caller's cart into a sale and returns the receipt
func (s *CheckoutService) Checkout(ctx context.Context, session models.Session, req models.CheckoutRequest, promotionCode string) (*models.Receipt, error) {
	if err := session.Require(models.PermCheckout); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, session)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	cashierID, err := uuid.Parse(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid session user id: %w", err)
	}

	saleID := uuid.New()
	now := time.Now().UTC()

	var items []models.SaleItem
	var subtotalCents, itemCount int64
	for _, line := range cart.Items {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart references product %s: %w", line.ProductID, err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %s is no longer available: %w", product.SKU, models.ErrNotFound)
		}

		lineTotal := product.UnitPriceCents * line.Quantity
		items = append(items, models.SaleItem{
			SaleID:         saleID,
			ProductID:      product.ID,
			Quantity:       line.Quantity,
			UnitPriceCents: product.UnitPriceCents,
			LineTotalCents: lineTotal,
		})
		subtotalCents += lineTotal
		itemCount += line.Quantity
	}

	var discountCents int64
	var appliedCode *string
	if promotionCode != "" {
		discountCents, err = s.promotions.ApplyDiscount(ctx, promotionCode, subtotalCents, itemCount, int64(len(items)))
		if err != nil {
			return nil, err
		}
		if discountCents > 0 {
			appliedCode = &promotionCode
		}
	}

	sale := &models.Sale{
		ID:            saleID,
		CashierID:     cashierID,
		CustomerID:    req.CustomerID,
		SubtotalCents: subtotalCents,
		DiscountCents: discountCents,
		TotalCents:    subtotalCents - discountCents,
		PromotionCode: appliedCode,
		CreatedAt:     now,
	}

	if err := s.sales.CreateSale(ctx, sale, items); err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, session); err != nil {
		// The sale is committed; a surviving cart is an annoyance, not a loss
		s.log.Warn("failed to clear cart after checkout", "user_id", session.UserID, "sale_id", saleID, "error", err)
	}

	s.log.Info("checkout complete",
		"sale_id", saleID,
		"lines", len(items),
		"total_cents", sale.TotalCents,
	)
	s.audit.Record(ctx, session.UserID, "sale.checkout", "sale", saleID.String(), map[string]any{
		"total_cents":    sale.TotalCents,
		"discount_cents": sale.DiscountCents,
		"lines":          len(items),
	})

	return &models.Receipt{Sale: sale, Items: items}, nil
}

// GetReceipt retrieves a past sale with its lines
func (s *CheckoutService) GetReceipt(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	return s.sales.GetByID(ctx, id)
}

// ListSales retrieves sales newest first
func (s *CheckoutService) ListSales(ctx context.Context, limit, offset int) ([]*models.Sale, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.sales.List(ctx, limit, offset)
}
