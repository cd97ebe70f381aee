package ports

import (
	"context"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// email is already registered (enforced by a unique index).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
