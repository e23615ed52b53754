package normalize

import "time"

// Instagram maps one raw profile batch into canonical records. The batch
// username is authoritative: it backfills missing username/ownerUsername
// fields, and the platform tag always overwrites whatever the remote payload
// claims. The full raw item rides along in Extra, so nothing the scraper
// returned is lost.
func Instagram(items []map[string]any, username string) []Record {
	now := time.Now().Format(scrapeDateLayout)
	records := make([]Record, 0, len(items))

	for _, item := range items {
		if item == nil {
			continue
		}

		owner := str(item["ownerUsername"])
		if owner == "" {
			owner = username
		}
		name := str(item["username"])
		if name == "" {
			name = username
		}

		extra := make(map[string]any, len(item))
		for k, v := range item {
			extra[k] = v
		}
		extra["ownerUsername"] = owner

		rec := Record{
			Platform:   PlatformInstagram,
			ScrapeDate: now,
			Username:   name,

			ID:          str(item["id"]),
			URL:         str(item["url"]),
			ContentType: str(item["type"]),
			Caption:     str(item["caption"]),
			ShortCode:   str(item["shortCode"]),

			CreatorName: str(item["ownerFullName"]),
			CreatorID:   str(item["ownerId"]),

			PublishedDate: str(item["timestamp"]),

			Views:         coerceInt(pick(item, "videoViewCount", "videoPlayCount")),
			Likes:         coerceInt(item["likesCount"]),
			CommentsCount: coerceInt(item["commentsCount"]),
			Followers:     coerceInt(item["followersCount"]),

			Extra: extra,
		}

		records = append(records, rec)
	}
	return records
}

// RequestErrors returns the per-request error messages the Instagram actor
// attaches to the first item of a batch, if any.
func RequestErrors(items []map[string]any) []string {
	if len(items) == 0 {
		return nil
	}
	raw, ok := items[0]["requestErrorMessages"].([]any)
	if !ok {
		return nil
	}
	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		if s := str(m); s != "" {
			msgs = append(msgs, s)
		}
	}
	return msgs
}
