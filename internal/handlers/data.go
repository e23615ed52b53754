package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"socialscope/internal/normalize"
	"socialscope/internal/storage"
)

// DataHandler exposes read-only access to persisted exports.
type DataHandler struct {
	store *storage.SnapshotStore
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(store *storage.SnapshotStore) *DataHandler {
	return &DataHandler{store: store}
}

// List handles GET /api/data/list, returning the newest snapshot per
// identity for each platform.
func (h *DataHandler) List(c echo.Context) error {
	youtube := make([]map[string]any, 0)
	for _, snap := range h.store.List(normalize.PlatformYouTube) {
		youtube = append(youtube, map[string]any{
			"channel_name": snap.Identity,
			"item_count":   snap.ItemCount,
			"file_path":    snap.FilePath,
			"created":      snap.Created,
			"data":         snap.Preview,
		})
	}

	instagram := make([]map[string]any, 0)
	for _, snap := range h.store.List(normalize.PlatformInstagram) {
		instagram = append(instagram, map[string]any{
			"username":   snap.Identity,
			"item_count": snap.ItemCount,
			"file_path":  snap.FilePath,
			"created":    snap.Created,
			"data":       snap.Preview,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"youtube":   youtube,
		"instagram": instagram,
	})
}

// Get handles GET /api/data/*, serving a persisted export file. Only paths
// under the snapshot root are served. JSON files are re-served with a JSON
// content type so browsers render them directly.
func (h *DataHandler) Get(c echo.Context) error {
	path := filepath.Clean(c.Param("*"))
	if filepath.IsAbs(path) || strings.Contains(path, "..") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid path"})
	}
	rel, err := filepath.Rel(filepath.Clean(h.store.Root()), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid path"})
	}

	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "File not found", "path": path})
	}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error reading file: " + err.Error()})
		}
		return c.JSONBlob(http.StatusOK, data)
	}
	return c.File(path)
}
