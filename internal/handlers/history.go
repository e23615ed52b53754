package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"socialscope/internal/storage"
)

// HistoryHandler exposes the scrape history.
type HistoryHandler struct {
	repo *storage.HistoryRepository
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(repo *storage.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// List handles GET /api/history.
func (h *HistoryHandler) List(c echo.Context) error {
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	records, err := h.repo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if records == nil {
		records = []storage.ScrapeRecord{}
	}
	return c.JSON(http.StatusOK, records)
}
