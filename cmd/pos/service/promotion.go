package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
)

// PromotionService owns discount rules. Rule expressions are CEL
// predicates over the cart's aggregates; compiled programs are cached by
// expression text since rules change rarely and checkouts are hot.
type PromotionService struct {
	repo  *repository.PromotionRepository
	audit *AuditService
	log   *logger.Logger

	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewPromotionService creates a new promotion service
func NewPromotionService(repo *repository.PromotionRepository, audit *AuditService, log *logger.Logger) (*PromotionService, error) {
	env, err := cel.NewEnv(
		cel.Variable("subtotal_cents", cel.IntType),
		cel.Variable("item_count", cel.IntType),
		cel.Variable("line_count", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	return &PromotionService{
		repo:  repo,
		audit: audit,
		log:   log,
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// compile compiles an expression, reusing the program cache
func (s *PromotionService) compile(expr string) (cel.Program, error) {
	s.mu.RLock()
	prg, exists := s.cache[expr]
	s.mu.RUnlock()

	if exists {
		return prg, nil
	}

	ast, issues := s.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid promotion expression: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("promotion expression must be a boolean predicate, got %s", ast.OutputType())
	}

	prg, err := s.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build promotion program: %w", err)
	}

	s.mu.Lock()
	s.cache[expr] = prg
	s.mu.Unlock()

	return prg, nil
}

// CreatePromotion validates, compiles and stores a new rule
func (s *PromotionService) CreatePromotion(ctx context.Context, session models.Session, req models.PromotionRequest) (*models.Promotion, error) {
	if err := session.Require(models.PermCatalogWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Reject uncompilable expressions at write time, not at checkout
	if _, err := s.compile(req.Expression); err != nil {
		return nil, err
	}

	promotion := &models.Promotion{
		ID:          uuid.New(),
		Code:        req.Code,
		Description: req.Description,
		Expression:  req.Expression,
		DiscountBP:  req.DiscountBP,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, promotion); err != nil {
		return nil, err
	}

	s.log.Info("created promotion", "code", promotion.Code, "discount_bp", promotion.DiscountBP)
	s.audit.Record(ctx, session.UserID, "promotion.create", "promotion", promotion.Code, map[string]any{
		"expression":  promotion.Expression,
		"discount_bp": promotion.DiscountBP,
	})

	return promotion, nil
}

// ListPromotions retrieves active promotions
func (s *PromotionService) ListPromotions(ctx context.Context) ([]*models.Promotion, error) {
	return s.repo.ListActive(ctx)
}

// DeactivatePromotion retires a rule by code
func (s *PromotionService) DeactivatePromotion(ctx context.Context, session models.Session, code string) error {
	if err := session.Require(models.PermCatalogWrite); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, code); err != nil {
		return err
	}

	s.audit.Record(ctx, session.UserID, "promotion.deactivate", "promotion", code, nil)
	return nil
}

// ApplyDiscount evaluates the coded rule against the cart aggregates and
// returns the discount in cents. A rule whose predicate does not hold
// yields a zero discount, not an error.
func (s *PromotionService) ApplyDiscount(ctx context.Context, code string, subtotalCents, itemCount, lineCount int64) (int64, error) {
	promotion, err := s.repo.GetActiveByCode(ctx, code)
	if err != nil {
		return 0, err
	}

	prg, err := s.compile(promotion.Expression)
	if err != nil {
		return 0, err
	}

	out, _, err := prg.Eval(map[string]any{
		"subtotal_cents": subtotalCents,
		"item_count":     itemCount,
		"line_count":     lineCount,
	})
	if err != nil {
		return 0, fmt.Errorf("promotion evaluation error: %w", err)
	}

	holds, ok := out.Value().(bool)
	if !ok {
		return 0, fmt.Errorf("promotion expression did not return boolean, got %T", out.Value())
	}
	if !holds {
		return 0, nil
	}

	return subtotalCents * int64(promotion.DiscountBP) / 10000, nil
}
