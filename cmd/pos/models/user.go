package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a staff account
// Maps to: users table
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Role        Role      `db:"role" json:"role"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CreateUserRequest is the payload for creating a staff account
type CreateUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Validate checks the request
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.DisplayName = strings.TrimSpace(r.DisplayName)

	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if len(r.Username) > 100 {
		return fmt.Errorf("username too long (max 100 characters)")
	}
	for _, ch := range r.Username {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '-' || ch == '_' || ch == '.') {
			return fmt.Errorf("username can only contain letters, numbers, hyphens, underscores and dots")
		}
	}
	if r.DisplayName == "" {
		return fmt.Errorf("display_name is required")
	}
	if _, err := ParseRole(r.Role); err != nil {
		return err
	}
	return nil
}

// UpdateUserRoleRequest changes a user's role
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}
