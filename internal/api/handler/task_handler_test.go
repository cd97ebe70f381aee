package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskmanager-api/internal/api/middleware"
	"github.com/taskforge/taskmanager-api/internal/core/domain"
)

type stubTaskService struct {
	tasks []*domain.Task
	err   error

	lastOwnerID string
	lastTaskID  string
}

func (s *stubTaskService) List(_ context.Context, ownerID string) ([]*domain.Task, error) {
	s.lastOwnerID = ownerID
	return s.tasks, s.err
}

func (s *stubTaskService) Create(_ context.Context, ownerID, title, description string) (*domain.Task, error) {
	s.lastOwnerID = ownerID
	if s.err != nil {
		return nil, s.err
	}
	now := time.Now().UTC()
	return &domain.Task{ID: "task_1", OwnerID: ownerID, Title: title, Description: description, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *stubTaskService) Update(_ context.Context, ownerID, taskID, title, description string) (*domain.Task, error) {
	s.lastOwnerID, s.lastTaskID = ownerID, taskID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: taskID, OwnerID: ownerID, Title: title, Description: description}, nil
}

func (s *stubTaskService) Delete(_ context.Context, ownerID, taskID string) error {
	s.lastOwnerID, s.lastTaskID = ownerID, taskID
	return s.err
}

func (s *stubTaskService) Toggle(_ context.Context, ownerID, taskID string) (*domain.Task, error) {
	s.lastOwnerID, s.lastTaskID = ownerID, taskID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Task{ID: taskID, OwnerID: ownerID, Completed: true}, nil
}

func TestTaskHandler_List(t *testing.T) {
	svc := &stubTaskService{tasks: []*domain.Task{
		{ID: "task_2", OwnerID: "user_1", Title: "newer"},
		{ID: "task_1", OwnerID: "user_1", Title: "older"},
	}}
	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/api/tasks", "")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastOwnerID != "user_1" {
		t.Fatalf("service called with wrong owner: %q", svc.lastOwnerID)
	}

	var got []domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 2 || got[0].ID != "task_2" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestTaskHandler_List_RequiresAuth(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})
	c, _ := newTestContext(t, http.MethodGet, "/api/tasks", "")

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError without injected user id, got %v", err)
	}
}

func TestTaskHandler_Create(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/api/tasks", `{"title":"Buy milk","description":"2%"}`)
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if task.Title != "Buy milk" || task.OwnerID != "user_1" || task.Completed {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{})

	cases := []string{
		`{"description":"no title"}`,
		`{"title":"no description"}`,
		`{}`,
	}
	for _, body := range cases {
		c, _ := newTestContext(t, http.MethodPost, "/api/tasks", body)
		c.Set(middleware.UserIDKey, "user_1")
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestTaskHandler_Update(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodPut, "/api/tasks/task_9", `{"title":"new","description":"d"}`)
	c.SetParamNames("id")
	c.SetParamValues("task_9")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastTaskID != "task_9" || svc.lastOwnerID != "user_1" {
		t.Fatalf("service called with wrong ids: %q %q", svc.lastOwnerID, svc.lastTaskID)
	}
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{err: domain.ErrTaskNotFound})
	c, _ := newTestContext(t, http.MethodPut, "/api/tasks/task_9", `{"title":"new","description":"d"}`)
	c.SetParamNames("id")
	c.SetParamValues("task_9")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Update(c); err != domain.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound passthrough, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodDelete, "/api/tasks/task_9", "")
	c.SetParamNames("id")
	c.SetParamValues("task_9")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Message != "Task deleted successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestTaskHandler_Toggle(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)
	c, rec := newTestContext(t, http.MethodPatch, "/api/tasks/task_9/toggle", "")
	c.SetParamNames("id")
	c.SetParamValues("task_9")
	c.Set(middleware.UserIDKey, "user_1")

	if err := h.Toggle(c); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !task.Completed {
		t.Fatalf("expected toggled task in response: %+v", task)
	}
}
