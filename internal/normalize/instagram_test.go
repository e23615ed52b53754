package normalize

import (
	"encoding/json"
	"testing"
)

func TestInstagramUsernameDefaulting(t *testing.T) {
	items := []map[string]any{
		{"id": "p1"},
		{"id": "p2", "ownerUsername": "actual_owner", "username": "actual_owner"},
	}

	records := Instagram(items, "fallback_user")

	if records[0].Username != "fallback_user" {
		t.Errorf("missing username not defaulted: %q", records[0].Username)
	}
	if records[0].Extra["ownerUsername"] != "fallback_user" {
		t.Errorf("missing ownerUsername not defaulted: %v", records[0].Extra["ownerUsername"])
	}
	if records[1].Username != "actual_owner" {
		t.Errorf("present username overwritten: %q", records[1].Username)
	}
}

func TestInstagramPlatformForced(t *testing.T) {
	// The remote payload is not trusted for the platform tag.
	items := []map[string]any{
		{"id": "p1", "platform": "tiktok"},
	}

	records := Instagram(items, "user")
	if records[0].Platform != PlatformInstagram {
		t.Errorf("Platform = %q, want instagram", records[0].Platform)
	}

	data, err := json.Marshal(records[0])
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["platform"] != "instagram" {
		t.Errorf("marshaled platform = %v, raw payload leaked through", out["platform"])
	}
}

func TestInstagramMetricsAndFields(t *testing.T) {
	items := []map[string]any{{
		"id":             "post1",
		"type":           "Video",
		"shortCode":      "Abc123",
		"caption":        "hello world",
		"likesCount":     "2,500",
		"commentsCount":  float64(12),
		"videoViewCount": float64(999),
		"timestamp":      "2024-03-01T12:00:00.000Z",
		"url":            "https://www.instagram.com/p/Abc123/",
	}}

	rec := Instagram(items, "user")[0]
	if rec.Likes != 2500 || rec.CommentsCount != 12 || rec.Views != 999 {
		t.Errorf("metrics = likes %d, comments %d, views %d", rec.Likes, rec.CommentsCount, rec.Views)
	}
	if rec.ShortCode != "Abc123" || rec.Caption != "hello world" || rec.ContentType != "Video" {
		t.Errorf("fields wrong: %+v", rec)
	}
}

func TestInstagramExtraCarriedThrough(t *testing.T) {
	items := []map[string]any{{
		"id":          "p1",
		"displayUrl":  "https://cdn.example/img.jpg",
		"isSponsored": true,
	}}

	rec := Instagram(items, "user")[0]
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["displayUrl"] != "https://cdn.example/img.jpg" {
		t.Errorf("extra field dropped: %v", out["displayUrl"])
	}
	if out["isSponsored"] != true {
		t.Errorf("extra field dropped: %v", out["isSponsored"])
	}
	// The canonical id slot wins over the raw duplicate.
	if out["id"] != "p1" {
		t.Errorf("id = %v", out["id"])
	}
}

func TestRequestErrors(t *testing.T) {
	items := []map[string]any{{
		"requestErrorMessages": []any{"blocked", "blocked", "timeout"},
	}}
	msgs := RequestErrors(items)
	if len(msgs) != 3 {
		t.Errorf("RequestErrors = %v, want 3 entries", msgs)
	}

	if got := RequestErrors(nil); got != nil {
		t.Errorf("RequestErrors(nil) = %v", got)
	}
	if got := RequestErrors([]map[string]any{{"id": "x"}}); got != nil {
		t.Errorf("RequestErrors without field = %v", got)
	}
}
