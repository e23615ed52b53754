package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// folderTimestampLayout names snapshot folders <identity>_<timestamp>.
const folderTimestampLayout = "2006-01-02_15-04-05"

// snapshotSuffixPattern matches the timestamp portion of a snapshot folder
// name, anchored after an exact identity prefix.
const snapshotSuffixPattern = `_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}$`

// previewItems is the number of records attached to a listing entry.
const previewItems = 5

// Snapshot describes the newest on-disk export for one identity.
type Snapshot struct {
	Identity  string           `json:"identity"`
	ItemCount int              `json:"item_count"`
	FilePath  string           `json:"file_path"`
	Created   time.Time        `json:"created"`
	Preview   []map[string]any `json:"data"`
}

// SnapshotStore manages per-platform snapshot directories under a common
// root: <root>/youtube_data, <root>/instagram_data. The latest snapshot for
// an identity replaces any prior one.
type SnapshotStore struct {
	root string
}

// NewSnapshotStore creates a store rooted at dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{root: dir}
}

// Root returns the directory all snapshots live under.
func (s *SnapshotStore) Root() string {
	return s.root
}

// PlatformDir returns the snapshot directory for a platform.
func (s *SnapshotStore) PlatformDir(platform string) string {
	return filepath.Join(s.root, platform+"_data")
}

// CreateFolder creates a fresh snapshot directory for an identity and
// returns its path. The identity must already be sanitized.
func (s *SnapshotStore) CreateFolder(platform, identity string) (string, error) {
	name := identity + "_" + time.Now().Format(folderTimestampLayout)
	path := filepath.Join(s.PlatformDir(platform), name)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory %s: %w", path, err)
	}
	return path, nil
}

// DeletePrevious removes all existing snapshot directories for an identity
// and returns how many were removed. Deletion is best-effort: individual
// failures are logged and skipped, never propagated, since a leftover old
// snapshot must not fail a scrape.
func (s *SnapshotStore) DeletePrevious(platform, identity string) int {
	dir := s.PlatformDir(platform)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(identity) + snapshotSuffixPattern)

	deleted := 0
	for _, entry := range entries {
		if !entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Printf("failed to delete previous snapshot %s: %v", path, err)
			continue
		}
		log.Printf("deleted previous snapshot: %s", path)
		deleted++
	}
	return deleted
}

// List returns the newest snapshot per identity for a platform, newest
// first. Each entry carries the item count and a short record preview read
// from the JSON export.
func (s *SnapshotStore) List(platform string) []Snapshot {
	dir := s.PlatformDir(platform)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	type folder struct {
		path     string
		identity string
		modTime  time.Time
	}
	var folders []folder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		folders = append(folders, folder{
			path:     filepath.Join(dir, entry.Name()),
			identity: strings.SplitN(entry.Name(), "_", 2)[0],
			modTime:  info.ModTime(),
		})
	}
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].modTime.After(folders[j].modTime)
	})

	seen := make(map[string]bool)
	var snapshots []Snapshot
	for _, f := range folders {
		if seen[f.identity] {
			continue
		}

		jsonPath, items := readExport(f.path)
		if jsonPath == "" || len(items) == 0 {
			continue
		}

		preview := items
		if len(preview) > previewItems {
			preview = preview[:previewItems]
		}
		snapshots = append(snapshots, Snapshot{
			Identity:  f.identity,
			ItemCount: len(items),
			FilePath:  jsonPath,
			Created:   f.modTime,
			Preview:   preview,
		})
		seen[f.identity] = true
	}
	return snapshots
}

// readExport locates and decodes the first JSON export in a snapshot folder.
func readExport(dir string) (string, []map[string]any) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("error loading snapshot data from %s: %v", path, err)
			continue
		}
		var items []map[string]any
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("error parsing snapshot data from %s: %v", path, err)
			continue
		}
		return path, items
	}
	return "", nil
}
