package normalize

import (
	"regexp"
	"strings"
	"time"
)

var (
	handleRe      = regexp.MustCompile(`youtube\.com/(@[^/\s?]+)`)
	channelPathRe = regexp.MustCompile(`/(channel|c|user)/([^/]+)`)
	unsafePathRe  = regexp.MustCompile(`[\\/*?:"<>|]`)
)

// Identity is the account identity resolved for one raw batch. All records
// normalized from that batch carry the same identity fields.
//
// Handle, Owner and Fallback are independent signals scanned separately
// across the whole batch in original item order; Name applies the final
// priority handle > owner > fallback > synthetic.
type Identity struct {
	Handle   string
	Owner    string
	Fallback string
	Name     string
}

// ResolveIdentity determines the canonical account identity for a raw batch.
// The result is deterministic for a given batch and safe to use as a
// filesystem path component.
func ResolveIdentity(items []map[string]any) Identity {
	id := Identity{}

	// Channel URLs with an @handle segment are the strongest signal.
	for _, item := range items {
		if m := handleRe.FindStringSubmatch(str(item["channelUrl"])); m != nil {
			id.Handle = strings.TrimPrefix(m[1], "@")
			break
		}
	}
	// Some scrapers put the handle straight into author fields.
	if id.Handle == "" {
		for _, item := range items {
			if v := str(item["author"]); strings.HasPrefix(v, "@") {
				id.Handle = v[1:]
				break
			}
			if v := str(item["channelTitle"]); strings.HasPrefix(v, "@") {
				id.Handle = v[1:]
				break
			}
		}
	}

	// Human-readable owner name. Opaque channel ids (the UC... convention)
	// are not names and are rejected.
	ownerFields := []string{
		"ownerChannelName",
		"author",
		"channelTitle",
		"channel.name",
		"channel.title",
		"snippet.channelTitle",
	}
scanOwner:
	for _, item := range items {
		for _, field := range ownerFields {
			v, _ := lookup(item, field)
			if name := str(v); name != "" && !strings.HasPrefix(name, "UC") {
				id.Owner = name
				break scanOwner
			}
		}
	}

	// Last-resort identifier; anything stable beats a synthetic name.
scanFallback:
	for _, item := range items {
		for _, field := range []string{"channelTitle", "channelId", "authorId", "ownerChannelId"} {
			if v := str(item[field]); v != "" {
				id.Fallback = v
				break scanFallback
			}
		}
	}
	if id.Fallback == "" {
		for _, item := range items {
			if m := channelPathRe.FindStringSubmatch(str(item["channelUrl"])); m != nil {
				id.Fallback = m[2]
				break
			}
		}
	}

	switch {
	case id.Handle != "":
		id.Name = id.Handle
	case id.Owner != "":
		id.Name = id.Owner
	case id.Fallback != "":
		id.Name = id.Fallback
	default:
		id.Name = "youtube_channel_" + time.Now().Format("20060102150405")
	}
	id.Name = Sanitize(id.Name)

	return id
}

// HandleFromURL extracts an @handle from a caller-supplied channel URL, if
// any. A handle found here overrides the batch-resolved name when the batch
// did not already surface it.
func HandleFromURL(rawURL string) string {
	if !strings.Contains(rawURL, "youtube.com/") || !strings.Contains(rawURL, "@") {
		return ""
	}
	m := handleRe.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return strings.TrimPrefix(m[1], "@")
}

// Sanitize makes an identity safe for use as a directory name.
func Sanitize(name string) string {
	return unsafePathRe.ReplaceAllString(name, "_")
}
