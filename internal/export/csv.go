package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"socialscope/internal/normalize"
)

// csvColumns is the flattened field subset exported to CSV.
var csvColumns = []string{
	"platform",
	"id",
	"content_type",
	"title",
	"caption",
	"views",
	"likes",
	"comments_count",
	"followers",
	"published_date",
	"url",
}

type csvWriter struct{}

func (csvWriter) Write(dir, name string, records []normalize.Record) (string, error) {
	path := outputPath(dir, name, "csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return "", err
	}
	for _, rec := range records {
		row := []string{
			rec.Platform,
			rec.ID,
			rec.ContentType,
			rec.Title,
			rec.Caption,
			strconv.FormatInt(rec.Views, 10),
			strconv.FormatInt(rec.Likes, 10),
			strconv.FormatInt(rec.CommentsCount, 10),
			strconv.FormatInt(rec.Followers, 10),
			rec.PublishedDate,
			rec.URL,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
