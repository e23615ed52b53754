package scraper

import (
	"fmt"
	"strings"
)

// extendOutputFn is pushed to the YouTube actor so likes end up in a
// predictable place regardless of which scraper build is running.
const extendOutputFn = `({ data, customData }) => {
    return {
        ...data,
        comments: customData && customData.comments || [],
        likeCount: data.likeCount || data.likes ||
                  (data.statistics ? data.statistics.likeCount : null)
    }
}`

// residentialProxy is the proxy configuration sent with every job. Shared
// datacenter exits get blocked almost immediately on both platforms.
var residentialProxy = map[string]any{
	"useApifyProxy":    true,
	"apifyProxyGroups": []string{"RESIDENTIAL"},
}

// youtubeInput builds the actor job configuration for a YouTube URL or
// search query. Single-video URLs cap results at 1; channel URLs and search
// queries fetch a modest page to limit blocking.
func youtubeInput(urlOrQuery string) map[string]any {
	input := map[string]any{
		"proxy":                residentialProxy,
		"extendOutputFunction": extendOutputFn,
		"commentsLimit":        5,
		"maxComments":          5,
		"scrapeCommentReplies": true,
		"includeLikes":         true,
		"scrapeStatistics":     true,
	}

	isYouTubeURL := strings.Contains(urlOrQuery, "youtube.com") || strings.Contains(urlOrQuery, "youtu.be")
	switch {
	case isYouTubeURL && (strings.Contains(urlOrQuery, "watch?v=") || strings.Contains(urlOrQuery, "youtu.be")):
		input["startUrls"] = []map[string]string{{"url": urlOrQuery}}
		input["maxResults"] = 1
	case isYouTubeURL:
		input["startUrls"] = []map[string]string{{"url": urlOrQuery}}
		input["maxResults"] = 20
	default:
		input["search"] = urlOrQuery
		input["maxResults"] = 20
	}
	return input
}

// instagramInput builds the actor job configuration for scraping one
// profile. The limits and wait times are tuned down from the actor defaults
// to keep runs under the blocking threshold.
func instagramInput(username string) map[string]any {
	return map[string]any{
		"directUrls":        []string{fmt.Sprintf("https://www.instagram.com/%s/", username)},
		"resultsLimit":      50,
		"addParentData":     true,
		"expandOwners":      true,
		"scrollWaitSecs":    20,
		"maxRequestRetries": 10,
		"maxPosts":          25,
		"scrapeComments":    true,
		"commentsLimit":     5,
		"proxy":             residentialProxy,
		"randomWaitBetweenRequests": map[string]any{
			"min": 2000,
			"max": 5000,
		},
	}
}
