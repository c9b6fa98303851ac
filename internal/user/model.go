package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email_already_used", "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "inactive_user", "user is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email_required", "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password_too_short", "password is too short")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name_required", "name is required")
)

// User represents a marketplace member. The same account can own items and borrow others'.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	Name          string
	CreatedAt     time.Time
	LastLoginAt   *time.Time
	IsActive      bool
	IsSystemAdmin bool
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email    string
	Name     string
	IsActive *bool // Use pointer to distinguish between false and nil (not set)

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// UpdateUserRequest holds the optional fields an admin may change.
type UpdateUserRequest struct {
	Name          *string
	Email         *string
	IsActive      *bool
	IsSystemAdmin *bool
}
