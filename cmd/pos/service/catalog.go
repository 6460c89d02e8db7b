package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/cache"
	"github.com/storeline/pos/common/logger"
)

// CatalogService handles product catalog operations. Reads of single
// products go through the in-process cache; writes invalidate.
type CatalogService struct {
	repo     *repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
	audit    *AuditService
	log      *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo *repository.ProductRepository, c cache.Cache, cacheTTL time.Duration, audit *AuditService, log *logger.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		audit:    audit,
		log:      log,
	}
}

func productCacheKey(id uuid.UUID) string {
	return "product:" + id.String()
}

// CreateProduct creates a product plus its zero stock row
func (s *CatalogService) CreateProduct(ctx context.Context, session models.Session, req models.ProductRequest) (*models.Product, error) {
	if err := session.Require(models.PermCatalogWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:             uuid.New(),
		SKU:            req.SKU,
		Name:           req.Name,
		Category:       req.Category,
		UnitPriceCents: req.UnitPriceCents,
		TaxRateBP:      req.TaxRateBP,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("created product", "product_id", product.ID, "sku", product.SKU)
	s.audit.Record(ctx, session.UserID, "product.create", "product", product.ID.String(), map[string]any{
		"sku":  product.SKU,
		"name": product.Name,
	})

	return product, nil
}

// GetProduct retrieves one product, cache first
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productCacheKey(id)

	if data, found, err := s.cache.Get(ctx, key); err == nil && found {
		product := &models.Product{}
		if err := json.Unmarshal(data, product); err == nil {
			return product, nil
		}
		// Corrupt entry; fall through to the database
		_ = s.cache.Delete(ctx, key)
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache product", "product_id", id, "error", err)
		}
	}

	return product, nil
}

// UpdateProduct rewrites a product's attributes
func (s *CatalogService) UpdateProduct(ctx context.Context, session models.Session, id uuid.UUID, req models.ProductRequest) (*models.Product, error) {
	if err := session.Require(models.PermCatalogWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Category = req.Category
	product.UnitPriceCents = req.UnitPriceCents
	product.TaxRateBP = req.TaxRateBP

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate product cache", "product_id", id, "error", err)
	}

	s.log.Info("updated product", "product_id", id, "sku", product.SKU)
	s.audit.Record(ctx, session.UserID, "product.update", "product", id.String(), map[string]any{
		"sku": product.SKU,
	})

	return product, nil
}

// DeactivateProduct soft-deletes a product
func (s *CatalogService) DeactivateProduct(ctx context.Context, session models.Session, id uuid.UUID) error {
	if err := session.Require(models.PermCatalogWrite); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate product cache", "product_id", id, "error", err)
	}

	s.log.Info("deactivated product", "product_id", id)
	s.audit.Record(ctx, session.UserID, "product.deactivate", "product", id.String(), nil)

	return nil
}

// ListProducts retrieves active products matching the filter
func (s *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
