package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
)

// ExpenseService handles operations-expense bookkeeping
type ExpenseService struct {
	repo  *repository.ExpenseRepository
	audit *AuditService
	log   *logger.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo *repository.ExpenseRepository, audit *AuditService, log *logger.Logger) *ExpenseService {
	return &ExpenseService{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// CreateExpense logs one expense entry
func (s *ExpenseService) CreateExpense(ctx context.Context, session models.Session, req models.ExpenseRequest) (*models.Expense, error) {
	if err := session.Require(models.PermExpenseWrite); err != nil {
		return nil, err
	}

	incurredOn, err := req.Validate()
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          uuid.New(),
		Category:    req.Category,
		Description: req.Description,
		AmountCents: req.AmountCents,
		IncurredOn:  incurredOn,
		RecordedBy:  session.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.log.Info("logged expense",
		"expense_id", expense.ID,
		"category", expense.Category,
		"amount_cents", expense.AmountCents,
	)
	s.audit.Record(ctx, session.UserID, "expense.create", "expense", expense.ID.String(), map[string]any{
		"category":     expense.Category,
		"amount_cents": expense.AmountCents,
	})

	return expense, nil
}

// GetExpense retrieves one expense
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteExpense removes a mislogged expense entry
func (s *ExpenseService) DeleteExpense(ctx context.Context, session models.Session, id uuid.UUID) error {
	if err := session.Require(models.PermExpenseWrite); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("deleted expense", "expense_id", id)
	s.audit.Record(ctx, session.UserID, "expense.delete", "expense", id.String(), nil)
	return nil
}

// ListExpenses retrieves expenses filtered by category and date window
func (s *ExpenseService) ListExpenses(ctx context.Context, category string, from, to time.Time, limit, offset int) ([]*models.Expense, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.List(ctx, category, from, to, limit, offset)
}
