package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
)

// InventoryService handles stock movements outside the checkout path:
// inbound receipts from suppliers and manual outbound adjustments.
type InventoryService struct {
	repo  *repository.InventoryRepository
	audit *AuditService
	log   *logger.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo *repository.InventoryRepository, audit *AuditService, log *logger.Logger) *InventoryService {
	return &InventoryService{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// RecordInbound receives stock from a supplier
func (s *InventoryService) RecordInbound(ctx context.Context, session models.Session, req models.InboundRequest) (*models.StockMovement, error) {
	if err := session.Require(models.PermInventoryWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	movement := &models.StockMovement{
		ID:            uuid.New(),
		ProductID:     req.ProductID,
		Direction:     models.MovementInbound,
		Quantity:      req.Quantity,
		UnitCostCents: req.UnitCostCents,
		SupplierID:    req.SupplierID,
		RecordedBy:    session.UserID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.RecordInbound(ctx, movement); err != nil {
		return nil, err
	}

	s.log.Info("recorded inbound stock",
		"product_id", req.ProductID,
		"quantity", req.Quantity,
	)
	s.audit.Record(ctx, session.UserID, "stock.inbound", "product", req.ProductID.String(), map[string]any{
		"quantity": req.Quantity,
	})

	return movement, nil
}

// RecordOutbound removes stock outside of a sale. Refuses to drive the
// level negative.
func (s *InventoryService) RecordOutbound(ctx context.Context, session models.Session, req models.OutboundRequest) (*models.StockMovement, error) {
	if err := session.Require(models.PermInventoryWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reason := req.Reason
	movement := &models.StockMovement{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		Direction:  models.MovementOutbound,
		Quantity:   req.Quantity,
		Reason:     &reason,
		RecordedBy: session.UserID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.RecordOutbound(ctx, movement); err != nil {
		return nil, err
	}

	s.log.Info("recorded outbound stock",
		"product_id", req.ProductID,
		"quantity", req.Quantity,
		"reason", req.Reason,
	)
	s.audit.Record(ctx, session.UserID, "stock.outbound", "product", req.ProductID.String(), map[string]any{
		"quantity": req.Quantity,
		"reason":   req.Reason,
	})

	return movement, nil
}

// GetStockLevel retrieves the current level for one product
func (s *InventoryService) GetStockLevel(ctx context.Context, productID uuid.UUID) (*models.StockLevel, error) {
	return s.repo.GetStockLevel(ctx, productID)
}

// ListStockLevels retrieves levels across the active catalog
func (s *InventoryService) ListStockLevels(ctx context.Context, limit, offset int) ([]*models.StockLevel, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListStockLevels(ctx, limit, offset)
}

// ListLowStock retrieves products at or below their reorder level
func (s *InventoryService) ListLowStock(ctx context.Context) ([]*models.StockLevel, error) {
	return s.repo.ListLowStock(ctx)
}

// SetReorderLevel updates the reorder threshold for a product
func (s *InventoryService) SetReorderLevel(ctx context.Context, session models.Session, productID uuid.UUID, level int64) error {
	if err := session.Require(models.PermInventoryWrite); err != nil {
		return err
	}
	if level < 0 {
		level = 0
	}

	if err := s.repo.SetReorderLevel(ctx, productID, level); err != nil {
		return err
	}

	s.audit.Record(ctx, session.UserID, "stock.reorder_level", "product", productID.String(), map[string]any{
		"reorder_level": level,
	})
	return nil
}

// ListMovements retrieves movement history for a product
func (s *InventoryService) ListMovements(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*models.StockMovement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ListMovements(ctx, productID, limit, offset)
}
