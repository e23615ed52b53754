package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Default actor IDs on the remote scraping service. Overridable per
// deployment because actors get rotated when they start getting blocked.
const (
	defaultYouTubeActor   = "mpYxtaoX6"
	defaultInstagramActor = "shu8hvrXbJbY3Eb9W"
)

// Config holds all runtime configuration, read from environment variables.
type Config struct {
	Port     string
	APIToken string

	// DataDir is the root under which per-platform snapshot directories
	// (youtube_data, instagram_data) are created.
	DataDir string
	DBPath  string

	APIBaseURL     string
	YouTubeActor   string
	InstagramActor string
}

// Load reads configuration from the environment. APIFY_API_TOKEN is the only
// required variable.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		APIToken:       os.Getenv("APIFY_API_TOKEN"),
		DataDir:        getenv("DATA_DIR", "data"),
		APIBaseURL:     getenv("APIFY_BASE_URL", "https://api.apify.com/v2"),
		YouTubeActor:   getenv("YOUTUBE_ACTOR_ID", defaultYouTubeActor),
		InstagramActor: getenv("INSTAGRAM_ACTOR_ID", defaultInstagramActor),
	}
	cfg.DBPath = getenv("DB_PATH", filepath.Join(cfg.DataDir, "socialscope.db"))

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("APIFY_API_TOKEN environment variable not set")
	}
	return cfg, nil
}

// TokenConfigured reports whether a usable API token is present without
// exposing the token itself.
func (c *Config) TokenConfigured() bool {
	return c.APIToken != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
