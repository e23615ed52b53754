package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"socialscope/internal/tasks"
)

// TaskHandler answers task status queries.
type TaskHandler struct {
	registry *tasks.Registry
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(registry *tasks.Registry) *TaskHandler {
	return &TaskHandler{registry: registry}
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	task, ok := h.registry.Get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task not found"})
	}
	return c.JSON(http.StatusOK, task)
}
