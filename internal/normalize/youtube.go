package normalize

import (
	"strings"
	"time"
)

// likesAliases is the ordered candidate list for the likes metric. Different
// scraper actors report it in different places.
var likesAliases = []string{
	"likeCount",
	"likes",
	"statistics.likeCount",
	"snippet.likeCount",
	"engagement.likes",
}

// thumbnailQualities in selection priority order.
var thumbnailQualities = []string{"maxres", "high", "medium", "default"}

// YouTube maps one raw batch into canonical records, stamping every record
// with the already-resolved batch identity.
func YouTube(items []map[string]any, id Identity) []Record {
	now := time.Now().Format(scrapeDateLayout)
	records := make([]Record, 0, len(items))

	for _, item := range items {
		rec := Record{
			Platform:      PlatformYouTube,
			ScrapeDate:    now,
			ChannelName:   id.Fallback,
			ChannelOwner:  id.Owner,
			ChannelHandle: id.Handle,

			ID:          str(item["id"]),
			URL:         str(item["url"]),
			Title:       str(item["title"]),
			Description: str(item["description"]),
			Duration:    str(item["duration"]),

			CreatorName: str(pick(item, "channelTitle", "author", "ownerChannelName")),
			CreatorID:   str(pick(item, "channelId", "authorId", "ownerChannelId")),
			CreatorURL:  str(pick(item, "channelUrl", "authorUrl")),

			PublishedDate: str(pick(item, "publishedAt", "date")),

			Views:         coerceInt(item["viewCount"]),
			Likes:         coerceInt(pick(item, likesAliases...)),
			CommentsCount: coerceInt(item["commentCount"]),
			Followers:     coerceInt(pick(item, "subscriberCount", "numberOfSubscribers")),
		}

		rec.ContentType = contentType(item, rec.URL)
		rec.ThumbnailURL = thumbnailURL(item)

		records = append(records, rec)
	}
	return records
}

// contentType uses the explicit type field when present and falls back to
// URL shape inference.
func contentType(item map[string]any, url string) string {
	if t := str(item["type"]); t != "" {
		return t
	}
	switch {
	case strings.Contains(url, "/channel/"),
		strings.Contains(url, "/c/"),
		strings.Contains(url, "/user/"),
		strings.Contains(url, "/@"):
		return "channel"
	case strings.Contains(url, "watch?v="),
		strings.Contains(url, "youtu.be/"):
		return "video"
	default:
		return "unknown"
	}
}

// thumbnailURL picks the first available quality in priority order.
func thumbnailURL(item map[string]any) string {
	thumbs, ok := item["thumbnails"].(map[string]any)
	if !ok {
		return ""
	}
	for _, quality := range thumbnailQualities {
		entry, ok := thumbs[quality].(map[string]any)
		if !ok {
			continue
		}
		if u := str(entry["url"]); u != "" {
			return u
		}
	}
	return ""
}
