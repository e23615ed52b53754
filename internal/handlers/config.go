package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"socialscope/internal/config"
	"socialscope/internal/normalize"
)

// ConfigHandler exposes non-sensitive configuration to the frontend.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Get handles GET /api/config. The token itself is never returned.
func (h *ConfigHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"youtube_data_dir":   h.cfg.DataDir + "/" + normalize.PlatformYouTube + "_data",
		"instagram_data_dir": h.cfg.DataDir + "/" + normalize.PlatformInstagram + "_data",
		"is_api_token_set":   h.cfg.TokenConfigured(),
	})
}
