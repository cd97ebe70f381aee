package ports

import (
	"context"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

// TaskRepository defines the persistence interface for tasks.
//
// None of these operations check ownership — they look up purely by id.
// Ownership enforcement is the task service's responsibility.
type TaskRepository interface {
	// ListByOwner returns the owner's tasks, newest-created first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// FindByID returns domain.ErrTaskNotFound when no task has that id.
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// Update sets the given fields and refreshes the updated timestamp.
	// Empty fields are left unchanged (partial update).
	Update(ctx context.Context, id, title, description string) (*domain.Task, error)
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
	// SetCompleted writes the completion flag and refreshes the updated
	// timestamp.
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error)
}
