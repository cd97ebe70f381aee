package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskmanager-api/internal/core/ports"
)

// TaskHandler handles owner-scoped task CRUD. Every route is behind the
// Auth middleware; the service layer re-checks ownership on all by-id
// operations.
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns the caller's tasks, newest first.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  messageResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create adds a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and description are required")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and description are required")
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Update rewrites a task's title and description.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, c.Param("id"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

// Toggle flips a task's completion flag.
//
// @Summary      Toggle task completion
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/tasks/{id}/toggle [patch]
func (h *TaskHandler) Toggle(c echo.Context) error {
	userID, err := CallerID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Toggle(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
