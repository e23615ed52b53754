package normalize

import "encoding/json"

// Platform identifiers stamped onto every normalized record.
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
)

// scrapeDateLayout is the human-oriented stamp applied at normalization
// time. It records when we scraped, not when the content was published.
const scrapeDateLayout = "2006-01-02 15:04:05"

// Record is the canonical shape every raw platform record is mapped into.
// Engagement metrics default to 0 when the source value is missing or
// unparseable. Identity fields are resolved once per batch and are the same
// on every record of that batch.
//
// Extra carries platform-specific fields that have no canonical slot; they
// are merged into the JSON output, with typed fields winning on collision.
type Record struct {
	Platform   string `json:"platform"`
	ScrapeDate string `json:"scrape_date"`

	ChannelName   string `json:"channel_name,omitempty"`
	ChannelOwner  string `json:"channel_owner,omitempty"`
	ChannelHandle string `json:"channel_handle,omitempty"`
	Username      string `json:"username,omitempty"`

	ID          string `json:"id,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Title       string `json:"title,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
	ShortCode   string `json:"short_code,omitempty"`

	CreatorName string `json:"creator_name,omitempty"`
	CreatorID   string `json:"creator_id,omitempty"`
	CreatorURL  string `json:"creator_url,omitempty"`

	PublishedDate string `json:"published_date,omitempty"`

	Views         int64 `json:"views"`
	Likes         int64 `json:"likes"`
	CommentsCount int64 `json:"comments_count"`
	Followers     int64 `json:"followers"`

	Duration     string `json:"duration,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	Extra map[string]any `json:"-"`
}

// MarshalJSON flattens Extra into the output object. Canonical fields are
// authoritative: an Extra key that collides with one is dropped.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	base, err := json.Marshal(plain(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]any, len(r.Extra)+16)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
