package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/common/logger"
)

// UserService handles staff-account administration
type UserService struct {
	repo  *repository.UserRepository
	audit *AuditService
	log   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository, audit *AuditService, log *logger.Logger) *UserService {
	return &UserService{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// CreateUser creates a staff account
func (s *UserService) CreateUser(ctx context.Context, session models.Session, req models.CreateUserRequest) (*models.User, error) {
	if err := session.Require(models.PermUserAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New(),
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Role:        role,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("created user", "user_id", user.ID, "username", user.Username, "role", user.Role)
	s.audit.Record(ctx, session.UserID, "user.create", "user", user.ID.String(), map[string]any{
		"username": user.Username,
		"role":     string(user.Role),
	})

	return user, nil
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateRole changes a user's role
func (s *UserService) UpdateRole(ctx context.Context, session models.Session, id uuid.UUID, req models.UpdateUserRoleRequest) error {
	if err := session.Require(models.PermUserAdmin); err != nil {
		return err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	s.log.Info("updated user role", "user_id", id, "role", role)
	s.audit.Record(ctx, session.UserID, "user.update_role", "user", id.String(), map[string]any{
		"role": string(role),
	})

	return nil
}

// DeactivateUser disables a staff account
func (s *UserService) DeactivateUser(ctx context.Context, session models.Session, id uuid.UUID) error {
	if err := session.Require(models.PermUserAdmin); err != nil {
		return err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("deactivated user", "user_id", id)
	s.audit.Record(ctx, session.UserID, "user.deactivate", "user", id.String(), nil)
	return nil
}

// ListUsers retrieves all staff accounts
func (s *UserService) ListUsers(ctx context.Context, session models.Session, limit, offset int) ([]*models.User, error) {
	if err := session.Require(models.PermUserAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.List(ctx, limit, offset)
}
