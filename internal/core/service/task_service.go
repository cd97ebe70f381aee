package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskmanager-api/internal/api/metrics"
	"github.com/taskforge/taskmanager-api/internal/core/domain"
	"github.com/taskforge/taskmanager-api/internal/core/ports"
)

// TaskService implements owner-scoped task operations on top of a plain
// by-id repository. The ownership check lives here: fetch, compare owner,
// then act. A task owned by another account is indistinguishable from a
// missing one.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID, title, description string) (*domain.Task, error) {
	if _, err := s.owned(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, taskID, title, description)
	if err != nil {
		return nil, err
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.owned(ctx, ownerID, taskID); err != nil {
		return err
	}

	removed, err := s.repo.Delete(ctx, taskID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrTaskNotFound
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}

func (s *TaskService) Toggle(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.owned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	toggled, err := s.repo.SetCompleted(ctx, taskID, !task.Completed)
	if err != nil {
		return nil, err
	}

	metrics.TaskOperationsTotal.WithLabelValues("toggle").Inc()
	return toggled, nil
}

// owned fetches the task and verifies the caller owns it. Both "does not
// exist" and "not yours" come back as domain.ErrTaskNotFound so existence
// of other accounts' tasks is never leaked.
func (s *TaskService) owned(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		s.log.Warn().Str("user_id", ownerID).Str("task_id", taskID).Msg("cross-owner access rejected")
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
