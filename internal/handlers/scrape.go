package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"socialscope/internal/normalize"
	"socialscope/internal/scraper"
)

// ScrapeHandler accepts scrape requests and hands them to background
// workers. Responses return immediately with a task id; callers poll
// /api/tasks/:id for the outcome.
type ScrapeHandler struct {
	svc *scraper.Service
}

// NewScrapeHandler creates a new ScrapeHandler.
func NewScrapeHandler(svc *scraper.Service) *ScrapeHandler {
	return &ScrapeHandler{svc: svc}
}

type scrapeRequest struct {
	URL      string `json:"url"`
	Username string `json:"username"`
}

// Start handles POST /api/scrape/:platform.
func (h *ScrapeHandler) Start(c echo.Context) error {
	var req scrapeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	var taskID, message string
	switch c.Param("platform") {
	case normalize.PlatformYouTube:
		if req.URL == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing URL or query parameter"})
		}
		taskID = h.svc.StartYouTube(req.URL)
		message = "Started YouTube scraping for: " + req.URL
	case normalize.PlatformInstagram:
		if req.Username == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing username parameter"})
		}
		taskID = h.svc.StartInstagram(req.Username)
		message = "Started Instagram scraping for: " + req.Username
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported platform: " + c.Param("platform")})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"task_id": taskID,
		"status":  "running",
		"message": message,
	})
}
