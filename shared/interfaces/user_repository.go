package interfaces

import (
	"context"

	"github.com/dnlksnvv/Trainova-sub001/shared/models"

	"github.com/google/uuid"
)

// UserRepository defines user account persistence for the auth service.
// Defined in shared so implementations and consumers can share it.
type UserRepository interface {
	// CreateUser inserts a new user. Returns models.ErrEmailAlreadyExists
	// on a duplicate email.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns models.ErrUserNotFound when the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUserByEmail returns models.ErrUserNotFound when the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePassword sets a new password hash and bumps password_version,
	// returning the new version.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) (int, error)

	// UpdateEmail changes the user's email address.
	UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error
}
