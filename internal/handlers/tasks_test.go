package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialscope/internal/tasks"
)

func TestTaskGet(t *testing.T) {
	registry := tasks.NewRegistry()
	registry.Create("youtube_1", "Scraping started")
	registry.Complete("youtube_1", "Scraping completed", map[string]any{"item_count": 3})
	h := NewTaskHandler(registry)

	rec := doRequest(h.Get, http.MethodGet, "/api/tasks/youtube_1", "", map[string]string{"id": "youtube_1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var task tasks.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, tasks.StatusCompleted, task.Status)
	assert.EqualValues(t, 3, task.Data["item_count"])
}

func TestTaskGetNotFound(t *testing.T) {
	h := NewTaskHandler(tasks.NewRegistry())

	rec := doRequest(h.Get, http.MethodGet, "/api/tasks/nope", "", map[string]string{"id": "nope"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Task not found", resp["error"])
}
