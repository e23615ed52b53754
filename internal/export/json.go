package export

import (
	"encoding/json"
	"os"
	"time"

	"socialscope/internal/normalize"
)

type jsonWriter struct{}

// Write saves the canonical array as indented JSON. ISO published dates are
// rewritten in a readable form, with the original kept alongside so nothing
// is lost for downstream consumers.
func (jsonWriter) Write(dir, name string, records []normalize.Record) (string, error) {
	out := make([]normalize.Record, len(records))
	for i, rec := range records {
		if formatted, ok := formatDate(rec.PublishedDate); ok {
			extra := make(map[string]any, len(rec.Extra)+1)
			for k, v := range rec.Extra {
				extra[k] = v
			}
			extra["original_iso_date"] = rec.PublishedDate
			rec.Extra = extra
			rec.PublishedDate = formatted
		}
		out[i] = rec
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	path := outputPath(dir, name, "json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// formatDate renders an ISO 8601 date in a readable form. Unparseable input
// is left untouched.
func formatDate(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", false
	}
	return t.Format("January 02, 2006 - 3:04 PM"), true
}
