package scraper

import "testing"

func TestYouTubeInput(t *testing.T) {
	tests := []struct {
		name        string
		urlOrQuery  string
		wantSearch  bool
		wantMaxRes  int
	}{
		{"single video", "https://youtube.com/watch?v=abc123", false, 1},
		{"short link", "https://youtu.be/abc123", false, 1},
		{"channel", "https://youtube.com/@somechannel", false, 20},
		{"search query", "golang tutorials", true, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := youtubeInput(tt.urlOrQuery)

			if tt.wantSearch {
				if input["search"] != tt.urlOrQuery {
					t.Errorf("search = %v", input["search"])
				}
				if _, ok := input["startUrls"]; ok {
					t.Error("startUrls set for a search query")
				}
			} else {
				urls, ok := input["startUrls"].([]map[string]string)
				if !ok || len(urls) != 1 || urls[0]["url"] != tt.urlOrQuery {
					t.Errorf("startUrls = %v", input["startUrls"])
				}
			}
			if input["maxResults"] != tt.wantMaxRes {
				t.Errorf("maxResults = %v, want %d", input["maxResults"], tt.wantMaxRes)
			}
			if input["proxy"] == nil {
				t.Error("proxy configuration missing")
			}
		})
	}
}

func TestInstagramInput(t *testing.T) {
	input := instagramInput("someone")

	urls, ok := input["directUrls"].([]string)
	if !ok || len(urls) != 1 || urls[0] != "https://www.instagram.com/someone/" {
		t.Errorf("directUrls = %v", input["directUrls"])
	}
	if input["resultsLimit"] != 50 {
		t.Errorf("resultsLimit = %v", input["resultsLimit"])
	}
	if input["maxPosts"] != 25 {
		t.Errorf("maxPosts = %v", input["maxPosts"])
	}
	if input["proxy"] == nil {
		t.Error("proxy configuration missing")
	}
}
