package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialscope/internal/storage"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestDataList(t *testing.T) {
	root := t.TempDir()
	store := storage.NewSnapshotStore(root)

	dir := filepath.Join(store.PlatformDir("youtube"), "@chan_2024-01-01_10-00-00")
	require.NoError(t, os.MkdirAll(dir, 0755))
	items, err := json.Marshal([]map[string]any{{"title": "a"}, {"title": "b"}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "@chan.json"), items, 0644))

	h := NewDataHandler(store)
	rec := doRequest(h.List, http.MethodGet, "/api/data/list", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		YouTube []struct {
			ChannelName string           `json:"channel_name"`
			ItemCount   int              `json:"item_count"`
			Data        []map[string]any `json:"data"`
		} `json:"youtube"`
		Instagram []any `json:"instagram"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.YouTube, 1)
	assert.Equal(t, "@chan", resp.YouTube[0].ChannelName)
	assert.Equal(t, 2, resp.YouTube[0].ItemCount)
	assert.Len(t, resp.YouTube[0].Data, 2)
	assert.Empty(t, resp.Instagram)
}

func TestDataGet(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("data/youtube_data/@chan_2024-01-01_10-00-00", 0755))
	path := "data/youtube_data/@chan_2024-01-01_10-00-00/export.json"
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"a"}]`), 0644))

	h := NewDataHandler(storage.NewSnapshotStore("data"))
	rec := doRequest(h.Get, http.MethodGet, "/api/data/"+path, "", map[string]string{"*": path})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[{"title":"a"}]`, rec.Body.String())
}

func TestDataGetRejectsTraversal(t *testing.T) {
	h := NewDataHandler(storage.NewSnapshotStore(t.TempDir()))

	for _, path := range []string{"../etc/passwd", "/etc/passwd", "data/../../etc/passwd"} {
		rec := doRequest(h.Get, http.MethodGet, "/api/data/"+path, "", map[string]string{"*": path})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestDataGetRejectsOutsideRoot(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("secrets.txt", []byte("nope"), 0644))
	require.NoError(t, os.MkdirAll("other/youtube_data", 0755))
	require.NoError(t, os.WriteFile("other/youtube_data/x.json", []byte(`[]`), 0644))

	h := NewDataHandler(storage.NewSnapshotStore("data"))

	// Existing files that are not under the snapshot root are refused.
	for _, path := range []string{"secrets.txt", "other/youtube_data/x.json"} {
		rec := doRequest(h.Get, http.MethodGet, "/api/data/"+path, "", map[string]string{"*": path})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestDataGetNotFound(t *testing.T) {
	chdir(t, t.TempDir())
	h := NewDataHandler(storage.NewSnapshotStore("data"))

	rec := doRequest(h.Get, http.MethodGet, "/api/data/data/nope.json", "", map[string]string{"*": "data/nope.json"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
