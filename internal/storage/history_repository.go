package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ScrapeRecord is one row of scrape history: which identity was scraped on
// which platform, when, how many items came back, and where the snapshot
// folder lives.
type ScrapeRecord struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Identity  string    `json:"identity"`
	ItemCount int       `json:"item_count"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryRepository is the data access layer for scrape history.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts a completed scrape.
func (r *HistoryRepository) Record(ctx context.Context, rec *ScrapeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scrapes (id, platform, identity, item_count, folder, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Platform, rec.Identity, rec.ItemCount, rec.Folder, rec.CreatedAt,
	)
	return err
}

// ListRecent returns the most recent scrapes, newest first.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]ScrapeRecord, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, platform, identity, item_count, folder, created_at
		 FROM scrapes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScrapes(rows)
}

// LatestByIdentity returns the newest scrape for a platform/identity pair,
// or nil if none exists.
func (r *HistoryRepository) LatestByIdentity(ctx context.Context, platform, identity string) (*ScrapeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, platform, identity, item_count, folder, created_at
		 FROM scrapes WHERE platform = ? AND identity = ?
		 ORDER BY created_at DESC LIMIT 1`, platform, identity)

	var rec ScrapeRecord
	err := row.Scan(&rec.ID, &rec.Platform, &rec.Identity, &rec.ItemCount, &rec.Folder, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanScrapes(rows *sql.Rows) ([]ScrapeRecord, error) {
	var records []ScrapeRecord
	for rows.Next() {
		var rec ScrapeRecord
		if err := rows.Scan(&rec.ID, &rec.Platform, &rec.Identity, &rec.ItemCount, &rec.Folder, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
