package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeExport(t *testing.T, dir string, items []map[string]any) {
	t.Helper()
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "export.json"), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCreateFolder(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())

	path, err := store.CreateFolder("youtube", "@somechannel")
	if err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Fatalf("snapshot dir not created: %v", err)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "@somechannel_") {
		t.Errorf("folder name = %s", base)
	}
	if !strings.Contains(path, filepath.Join("youtube_data")) {
		t.Errorf("path = %s, want platform subdir", path)
	}
}

func TestDeletePrevious(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	dir := store.PlatformDir("youtube")

	old1 := filepath.Join(dir, "@chan_2024-01-01_10-00-00")
	old2 := filepath.Join(dir, "@chan_2024-02-01_10-00-00")
	other := filepath.Join(dir, "@other_2024-01-01_10-00-00")
	prefix := filepath.Join(dir, "@chan_extra_2024-01-01_10-00-00")
	for _, d := range []string{old1, old2, other, prefix} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	deleted := store.DeletePrevious("youtube", "@chan")
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}
	for _, d := range []string{old1, old2} {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			t.Errorf("%s still exists", d)
		}
	}
	for _, d := range []string{other, prefix} {
		if _, err := os.Stat(d); err != nil {
			t.Errorf("%s removed, should have been kept", d)
		}
	}
}

func TestDeletePreviousMissingDir(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	if deleted := store.DeletePrevious("youtube", "@chan"); deleted != 0 {
		t.Errorf("deleted = %d", deleted)
	}
}

func TestListNewestPerIdentity(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	dir := store.PlatformDir("youtube")

	oldDir := filepath.Join(dir, "@chan_2024-01-01_10-00-00")
	newDir := filepath.Join(dir, "@chan_2024-02-01_10-00-00")
	otherDir := filepath.Join(dir, "@other_2024-01-15_10-00-00")
	for _, d := range []string{oldDir, newDir, otherDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	writeExport(t, oldDir, []map[string]any{{"title": "old"}})
	items := make([]map[string]any, 7)
	for i := range items {
		items[i] = map[string]any{"title": "new"}
	}
	writeExport(t, newDir, items)
	writeExport(t, otherDir, []map[string]any{{"title": "other"}})

	// Listing orders by mod time, newest first.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldDir, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(otherDir, past.Add(time.Minute), past.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	snapshots := store.List("youtube")
	if len(snapshots) != 2 {
		t.Fatalf("snapshots = %d, want one per identity", len(snapshots))
	}
	if snapshots[0].Identity != "@chan" {
		t.Errorf("first = %s, want newest", snapshots[0].Identity)
	}
	if snapshots[0].ItemCount != 7 {
		t.Errorf("ItemCount = %d, want 7", snapshots[0].ItemCount)
	}
	if len(snapshots[0].Preview) != 5 {
		t.Errorf("Preview = %d, want capped at 5", len(snapshots[0].Preview))
	}
	if snapshots[0].Preview[0]["title"] != "new" {
		t.Errorf("preview from wrong folder: %v", snapshots[0].Preview[0])
	}
	if snapshots[1].Identity != "@other" {
		t.Errorf("second = %s", snapshots[1].Identity)
	}
}

func TestListSkipsEmptyFolders(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	empty := filepath.Join(store.PlatformDir("instagram"), "someone_2024-01-01_10-00-00")
	if err := os.MkdirAll(empty, 0755); err != nil {
		t.Fatal(err)
	}

	if snapshots := store.List("instagram"); len(snapshots) != 0 {
		t.Errorf("snapshots = %v, want folders without exports skipped", snapshots)
	}
}

func TestListMissingPlatformDir(t *testing.T) {
	store := NewSnapshotStore(t.TempDir())
	if snapshots := store.List("youtube"); snapshots != nil {
		t.Errorf("snapshots = %v", snapshots)
	}
}
