package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task), nextID: 1}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// touch refreshes the updated timestamp, guaranteeing a strict increase
// even when two mutations land inside the clock's resolution.
func (r *stubTaskRepo) touch(t *domain.Task) {
	now := time.Now().UTC()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

func (r *stubTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	copy := cloneTask(task)
	copy.ID = fmt.Sprintf("task_%d", r.nextID)
	r.nextID++
	r.tasks[copy.ID] = cloneTask(copy)
	return cloneTask(copy), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, id, title, description string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if title != "" {
		t.Title = title
	}
	if description != "" {
		t.Description = description
	}
	r.touch(t)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *stubTaskRepo) SetCompleted(_ context.Context, id string, completed bool) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Completed = completed
	r.touch(t)
	return cloneTask(t), nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func newTaskService(repo *stubTaskRepo) *TaskService {
	return NewTaskService(repo, zerolog.Nop())
}

func TestTaskService_Create(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	task, err := svc.Create(context.Background(), "user_a", "Buy milk", "2%")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if task.OwnerID != "user_a" {
		t.Fatalf("expected owner user_a, got %s", task.OwnerID)
	}
	if task.Completed {
		t.Fatalf("new task must start incomplete")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", task)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	cases := []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "desc"},
		{"empty description", "title", ""},
		{"whitespace title", "   ", "desc"},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), "user_a", tc.title, tc.description); err != domain.ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("expected nothing persisted, got %d tasks", len(repo.tasks))
	}
}

func TestTaskService_List_OwnerScoped(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	first, _ := svc.Create(context.Background(), "user_a", "first", "d")
	time.Sleep(time.Millisecond)
	second, _ := svc.Create(context.Background(), "user_a", "second", "d")
	_, _ = svc.Create(context.Background(), "user_b", "other", "d")

	tasks, err := svc.List(context.Background(), "user_a")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	// Newest-created first.
	if tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("wrong order: %s, %s", tasks[0].ID, tasks[1].ID)
	}

	other, err := svc.List(context.Background(), "user_c")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for user_c, got %d", len(other))
	}
}

func TestTaskService_Update(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	task, _ := svc.Create(context.Background(), "user_a", "title", "desc")

	updated, err := svc.Update(context.Background(), "user_a", task.ID, "new title", "new desc")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "new title" || updated.Description != "new desc" {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed")
	}

	// Omitted fields stay as they were.
	partial, err := svc.Update(context.Background(), "user_a", task.ID, "", "only desc")
	if err != nil {
		t.Fatalf("partial update error: %v", err)
	}
	if partial.Title != "new title" || partial.Description != "only desc" {
		t.Fatalf("partial update wrong: %+v", partial)
	}
}

func TestTaskService_CrossOwnerIsolation(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	task, _ := svc.Create(context.Background(), "user_a", "private", "a's task")

	if _, err := svc.Update(context.Background(), "user_b", task.ID, "stolen", "x"); err != domain.ErrTaskNotFound {
		t.Fatalf("update: expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_b", task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("delete: expected ErrTaskNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user_b", task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("toggle: expected ErrTaskNotFound for foreign owner, got %v", err)
	}

	// A's record must be untouched by the rejected attempts.
	stored := repo.tasks[task.ID]
	if stored.Title != "private" || stored.Completed {
		t.Fatalf("task mutated by foreign owner: %+v", stored)
	}
}

func TestTaskService_Toggle_RoundTrip(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	task, _ := svc.Create(context.Background(), "user_a", "toggle me", "d")

	once, err := svc.Toggle(context.Background(), "user_a", task.ID)
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !once.Completed {
		t.Fatalf("expected completed=true after first toggle")
	}
	if !once.UpdatedAt.After(task.UpdatedAt) {
		t.Fatalf("updatedAt did not increase on first toggle")
	}

	twice, err := svc.Toggle(context.Background(), "user_a", task.ID)
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if twice.Completed {
		t.Fatalf("expected completed=false after second toggle")
	}
	if !twice.UpdatedAt.After(once.UpdatedAt) {
		t.Fatalf("updatedAt did not increase on second toggle")
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	task, _ := svc.Create(context.Background(), "user_a", "ephemeral", "d")

	if err := svc.Delete(context.Background(), "user_a", task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_a", task.ID); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}

func TestTaskService_NotFound(t *testing.T) {
	repo := newStubTaskRepo()
	svc := newTaskService(repo)

	if _, err := svc.Update(context.Background(), "user_a", "missing", "t", "d"); err != domain.ErrTaskNotFound {
		t.Fatalf("update: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "user_a", "missing"); err != domain.ErrTaskNotFound {
		t.Fatalf("toggle: expected ErrTaskNotFound, got %v", err)
	}
}
