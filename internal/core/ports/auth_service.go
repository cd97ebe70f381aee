package ports

import (
	"context"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

// AuthService handles registration, login, and profile lookup.
type AuthService interface {
	// Register creates an account and returns it together with a freshly
	// issued bearer token.
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	// Login verifies credentials and issues a bearer token. Unknown email
	// and wrong password both map to domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
