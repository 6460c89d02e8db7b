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

// CustomerStore is the persistence surface the customer service needs.
// Satisfied by repository.CustomerRepository; tests substitute a fake.
type CustomerStore interface {
	Insert(ctx context.Context, c *models.Customer) error
	Supersede(ctx context.Context, existingID uuid.UUID, next *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindActiveByField(ctx context.Context, field models.DuplicateField, value string) (*models.Customer, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Customer, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// duplicateProbeOrder is the fixed probe priority: a name match wins over
// an email match, which wins over a phone match.
var duplicateProbeOrder = []models.DuplicateField{
	models.DuplicateByName,
	models.DuplicateByEmail,
	models.DuplicateByPhone,
}

// CustomerService owns customer version chains: create, supersede,
// history reconstruction and contact masking.
type CustomerService struct {
	store CustomerStore
	audit *AuditService
	log   *logger.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(store CustomerStore, audit *AuditService, log *logger.Logger) *CustomerService {
	return &CustomerService{
		store: store,
		audit: audit,
		log:   log,
	}
}

// CreateCustomer starts a new version chain after probing for duplicates
// among active customers
func (s *CustomerService) CreateCustomer(ctx context.Context, session models.Session, attrs models.CustomerAttrs) (*models.Customer, error) {
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
				Kind:       "customer",
				Field:      field,
				EntityID:   match.ID.String(),
				EntityName: match.Name,
			}
		}
	}

	customer := models.NewCustomer(attrs)
	if err := s.store.Insert(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Info("created customer", "customer_id", customer.ID, "name", customer.Name)
	s.audit.Record(ctx, session.UserID, "customer.create", "customer", customer.ID.String(), map[string]any{
		"name": customer.Name,
	})

	return s.maskFor(session, customer), nil
}

// UpdateCustomer supersedes the given version with new attributes. The
// target must be the active head of its chain; updating an already
// superseded version returns ErrVersionSuperseded.
func (s *CustomerService) UpdateCustomer(ctx context.Context, session models.Session, id uuid.UUID, attrs models.CustomerAttrs) (*models.Customer, error) {
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

	s.log.Info("superseded customer version",
		"customer_id", id,
		"successor_id", next.ID,
	)
	s.audit.Record(ctx, session.UserID, "customer.update", "customer", next.ID.String(), map[string]any{
		"previous_version": id.String(),
	})

	return s.maskFor(session, next), nil
}

// GetCustomer retrieves one version, masked per the session's clearance
func (s *CustomerService) GetCustomer(ctx context.Context, session models.Session, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.maskFor(session, customer), nil
}

// ListCustomers retrieves active customers, masked per the session
func (s *CustomerService) ListCustomers(ctx context.Context, session models.Session, limit, offset int) ([]*models.Customer, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	customers, err := s.store.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	masked := make([]*models.Customer, len(customers))
	for i, c := range customers {
		masked[i] = s.maskFor(session, c)
	}
	return masked, nil
}

// GetHistory reconstructs the version chain containing id, oldest first.
// The walk follows previous_version pointers from the given version; a
// broken link truncates the history at that point instead of failing,
// and whatever was collected is returned.
func (s *CustomerService) GetHistory(ctx context.Context, session models.Session, id uuid.UUID) ([]models.CustomerVersion, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Newest-to-oldest collection, reversed at the end
	chain := []*models.Customer{current}
	for current.PreviousVersion != nil {
		prev, err := s.store.GetByID(ctx, *current.PreviousVersion)
		if errors.Is(err, models.ErrNotFound) {
			s.log.Warn("customer version chain is broken, truncating history",
				"customer_id", current.ID,
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

	history := make([]models.CustomerVersion, len(chain))
	for i, version := range chain {
		history[i] = models.CustomerVersion{Customer: s.maskFor(session, version)}
		if i == 0 {
			continue
		}

		prevJSON, err := chain[i-1].AttrsJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode customer version: %w", err)
		}
		currJSON, err := version.AttrsJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode customer version: %w", err)
		}

		diff, err := jsonpatch.CreateMergePatch(prevJSON, currJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to diff customer versions: %w", err)
		}
		history[i].Diff = diff
	}

	return history, nil
}

// DeleteCustomer deactivates the active version without a successor
func (s *CustomerService) DeleteCustomer(ctx context.Context, session models.Session, id uuid.UUID) error {
	if err := session.Require(models.PermEntityWrite); err != nil {
		return err
	}

	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("deactivated customer", "customer_id", id)
	s.audit.Record(ctx, session.UserID, "customer.delete", "customer", id.String(), nil)
	return nil
}

// maskFor returns a copy with contact fields redacted unless the session
// may view them
func (s *CustomerService) maskFor(session models.Session, c *models.Customer) *models.Customer {
	if session.Role.Allows(models.PermViewContacts) {
		return c
	}

	masked := *c
	masked.Email = MaskEmail(c.Email)
	masked.Phone = MaskPhone(c.Phone)
	masked.Address = MaskAddress(c.Address)
	return &masked
}
