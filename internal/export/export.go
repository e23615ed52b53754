package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"socialscope/internal/normalize"
)

// Format names accepted by the exporter.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatHTML = "html"
)

// Writer persists one export format for a normalized batch. Implementations
// return the path written.
type Writer interface {
	Write(dir, name string, records []normalize.Record) (string, error)
}

// Exporter fans a batch out to every configured format concurrently.
type Exporter struct {
	writers map[string]Writer
}

// NewExporter creates an exporter with the standard JSON, CSV and HTML
// writers registered.
func NewExporter() *Exporter {
	return &Exporter{
		writers: map[string]Writer{
			FormatJSON: jsonWriter{},
			FormatCSV:  csvWriter{},
			FormatHTML: htmlWriter{},
		},
	}
}

// Write persists records into dir under the given base name, one file per
// requested format. It returns a map of format to written path. An unknown
// format is an error; writers for separate formats run concurrently.
func (e *Exporter) Write(ctx context.Context, dir, name string, records []normalize.Record, formats []string) (map[string]string, error) {
	if len(formats) == 0 {
		formats = []string{FormatJSON, FormatCSV, FormatHTML}
	}

	var mu sync.Mutex
	paths := make(map[string]string, len(formats))

	g, _ := errgroup.WithContext(ctx)
	for _, format := range formats {
		writer, ok := e.writers[format]
		if !ok {
			return nil, fmt.Errorf("unknown export format: %s", format)
		}
		format := format
		g.Go(func() error {
			path, err := writer.Write(dir, name, records)
			if err != nil {
				return fmt.Errorf("%s export: %w", format, err)
			}
			mu.Lock()
			paths[format] = path
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func outputPath(dir, name, ext string) string {
	return filepath.Join(dir, name+"."+ext)
}
