package service

import (
	"context"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/common/logger"
)

// SupplierStore is the persistence surface the supplier service needs
type SupplierStore interface {
	Insert(ctx context.Context, s *models.Supplier) error
	Supersede(ctx context.Context, existingID uuid.UUID, next *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	FindActiveByField(ctx context.Context, field models.DuplicateField, value string) (*models.Supplier, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// SupplierService owns supplier version chains under the same supersede
// protocol, probe order and masking rules as customers.
type SupplierService struct {
	store SupplierStore
	audit *AuditService
	log   *logger.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(store SupplierStore, audit *AuditService, log *logger.Logger) *SupplierService {
	return &SupplierService{
		store: store,
		audit: audit,
		log:   log,
	}
}

// CreateSupplier starts a new version chain after probing for duplicates
func (s *SupplierService) CreateSupplier(ctx context.Context, session models.Session, attrs models.SupplierAttrs) (*models.Supplier, error) {
	if err := session.Require(models.PermEntityWrite); err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	probeValues := map[models.DuplicateField]string{
		models.DuplicateByName:  attrs.Name,
		models.DuplicateByEmail: attrs.Email,
		models.DuplicateByPhone: attrs.Phone,
	}

	for _, field := range duplicateProbeOrder {
		value := probeValues[field]
		if value == "" {
			continue
		}
		match, err := s.store.FindActiveByField(ctx, field, value)
		if err != nil {
			return nil, err
		}
		if match != nil {
			return nil, &models.DuplicateEntityError{
				Kind:       "supplier",
				Field:      field,
				EntityID:   match.ID.String(),
				EntityName: match.Name,
			}
		}
	}

	supplier := models.NewSupplier(attrs)
	if err := s.store.Insert(ctx, supplier); err != nil {
		return nil, err
	}

	s.log.Info("created supplier", "supplier_id", supplier.ID, "name", supplier.Name)
	s.audit.Record(ctx, session.UserID, "supplier.create", "supplier", supplier.ID.String(), map[string]any{
		"name": supplier.Name,
	})

	return s.maskFor(session, supplier), nil
}

// UpdateSupplier supersedes the given version with new attributes
func (s *SupplierService) UpdateSupplier(ctx context.Context, session models.Session, id uuid.UUID, attrs models.SupplierAttrs) (*models.Supplier, error) {
	if err := session.Require(models.PermEntityWrite); err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := existing.Successor(attrs)
	if err := s.store.Supersede(ctx, id, next); err != nil {
		return nil, err
	}

	s.log.Info("superseded supplier version",
		"supplier_id", id,
		"successor_id", next.ID,
	)
	s.audit.Record(ctx, session.UserID, "supplier.update", "supplier", next.ID.String(), map[string]any{
		"previous_version": id.String(),
	})

	return s.maskFor(session, next), nil
}

// GetSupplier retrieves one version, masked per the session's clearance
func (s *SupplierService) GetSupplier(ctx context.Context, session models.Session, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.maskFor(session, supplier), nil
}

// ListSuppliers retrieves active suppliers, masked per the session
func (s *SupplierService) ListSuppliers(ctx context.Context, session models.Session, limit, offset int) ([]*models.Supplier, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	suppliers, err := s.store.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	masked := make([]*models.Supplier, len(suppliers))
	for i, sup := range suppliers {
		masked[i] = s.maskFor(session, sup)
	}
	return masked, nil
}

// GetHistory reconstructs the version chain containing id, oldest first,
// truncating at broken links
func (s *SupplierService) GetHistory(ctx context.Context, session models.Session, id uuid.UUID) ([]models.SupplierVersion, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chain := []*models.Supplier{current}
	for current.PreviousVersion != nil {
		prev, err := s.store.GetByID(ctx, *current.PreviousVersion)
		if errors.Is(err, models.ErrNotFound) {
			s.log.Warn("supplier version chain is broken, truncating history",
				"supplier_id", current.ID,
				"missing_version", *current.PreviousVersion,
			)
			break
		}
		if err != nil {
			return nil, err
		}
		chain = append(chain, prev)
		current = prev
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	history := make([]models.SupplierVersion, len(chain))
	for i, version := range chain {
		history[i] = models.SupplierVersion{Supplier: s.maskFor(session, version)}
		if i == 0 {
			continue
		}

		prevJSON, err := chain[i-1].AttrsJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode supplier version: %w", err)
		}
		currJSON, err := version.AttrsJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode supplier version: %w", err)
		}

		diff, err := jsonpatch.CreateMergePatch(prevJSON, currJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to diff supplier versions: %w", err)
		}
		history[i].Diff = diff
	}

	return history, nil
}

// DeleteSupplier deactivates the active version without a successor
func (s *SupplierService) DeleteSupplier(ctx context.Context, session models.Session, id uuid.UUID) error {
	if err := session.Require(models.PermEntityWrite); err != nil {
		return err
	}

	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("deactivated supplier", "supplier_id", id)
	s.audit.Record(ctx, session.UserID, "supplier.delete", "supplier", id.String(), nil)
	return nil
}

func (s *SupplierService) maskFor(session models.Session, sup *models.Supplier) *models.Supplier {
	if session.Role.Allows(models.PermViewContacts) {
		return sup
	}

	masked := *sup
	masked.Email = MaskEmail(sup.Email)
	masked.Phone = MaskPhone(sup.Phone)
	masked.Address = MaskAddress(sup.Address)
	return &masked
}
