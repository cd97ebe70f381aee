package ports

import (
	"context"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

// TaskService exposes owner-scoped task operations. Every method takes the
// verified caller identity and guarantees that a task owned by somebody else
// behaves exactly like a missing one (domain.ErrTaskNotFound), so existence
// is never leaked across accounts.
type TaskService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Create(ctx context.Context, ownerID, title, description string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID, title, description string) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
}
