package scraper

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"socialscope/internal/apify"
	"socialscope/internal/export"
	"socialscope/internal/normalize"
	"socialscope/internal/storage"
	"socialscope/internal/tasks"
)

// Randomized spacing around remote calls, per job-submission etiquette for
// the scraping service.
const (
	requestDelayMin = 1 * time.Second
	requestDelayMax = 3 * time.Second
)

// Actors holds the remote actor ids used per platform.
type Actors struct {
	YouTube   string
	Instagram string
}

// Service runs scrape jobs end to end: submit the remote run, poll it to a
// terminal state, fetch and normalize the dataset, replace the prior
// on-disk snapshot, export, and record the outcome.
//
// Each scrape runs in its own fire-and-forget goroutine; callers get a task
// id immediately and poll the registry for status. There is no cancellation:
// a started worker runs to completion or to the poll attempt ceiling.
type Service struct {
	client   *apify.Client
	poller   *apify.Poller
	registry *tasks.Registry
	store    *storage.SnapshotStore
	history  *storage.HistoryRepository
	exporter *export.Exporter
	actors   Actors
	formats  []string
	logger   *log.Logger

	// delay spaces requests against the remote service. Swapped out in
	// tests.
	delay func(min, max time.Duration)
}

// NewService creates a scrape service. history may be nil, in which case no
// scrape history is recorded.
func NewService(
	client *apify.Client,
	poller *apify.Poller,
	registry *tasks.Registry,
	store *storage.SnapshotStore,
	history *storage.HistoryRepository,
	exporter *export.Exporter,
	actors Actors,
	formats []string,
) *Service {
	return &Service{
		client:   client,
		poller:   poller,
		registry: registry,
		store:    store,
		history:  history,
		exporter: exporter,
		actors:   actors,
		formats:  formats,
		logger:   log.Default(),
		delay: func(min, max time.Duration) {
			time.Sleep(apify.Jitter(min, max))
		},
	}
}

// StartYouTube registers a running task for a YouTube URL or search query
// and launches a background worker. It never blocks on the scrape itself.
func (s *Service) StartYouTube(urlOrQuery string) string {
	taskID := tasks.NewTaskID(normalize.PlatformYouTube)
	s.registry.Create(taskID, "Started YouTube scraping for: "+urlOrQuery)
	go s.runYouTube(taskID, urlOrQuery)
	return taskID
}

// StartInstagram registers a running task for an Instagram username and
// launches a background worker.
func (s *Service) StartInstagram(username string) string {
	taskID := tasks.NewTaskID(normalize.PlatformInstagram)
	s.registry.Create(taskID, "Started Instagram scraping for: "+username)
	go s.runInstagram(taskID, username)
	return taskID
}

func (s *Service) runYouTube(taskID, urlOrQuery string) {
	jobID := shortID()
	defer s.recoverTask(taskID, jobID)
	ctx := context.Background()

	s.logger.Printf("[JOB %s] starting YouTube scrape for: %s", jobID, urlOrQuery)

	// A handle in the requested URL is the most reliable identity signal
	// we will ever get; remember it before the batch muddies the water.
	urlHandle := normalize.HandleFromURL(urlOrQuery)

	items, ok := s.fetchDataset(ctx, taskID, jobID, s.actors.YouTube, youtubeInput(urlOrQuery), "YouTube")
	if !ok {
		return
	}
	if len(items) == 0 {
		s.registry.Complete(taskID, "YouTube scraper completed but found no data", map[string]any{
			"item_count":    0,
			"error_message": "No data items were found for the provided URL/query",
		})
		return
	}

	id := normalize.ResolveIdentity(items)
	name := id.Name
	if urlHandle != "" && !strings.Contains(name, urlHandle) {
		s.logger.Printf("[JOB %s] prioritizing handle %q from request URL over resolved name %q", jobID, urlHandle, name)
		name = normalize.Sanitize(urlHandle)
	}

	records := normalize.YouTube(items, id)

	deleted := s.store.DeletePrevious(normalize.PlatformYouTube, name)
	folder, err := s.store.CreateFolder(normalize.PlatformYouTube, name)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to create output folder", err)
		return
	}

	paths, err := s.exporter.Write(ctx, folder, name, records, s.formats)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to save YouTube data", err)
		return
	}

	s.recordHistory(ctx, jobID, normalize.PlatformYouTube, name, len(records), folder)

	s.logger.Printf("[JOB %s] completed: %d items for %s", jobID, len(records), name)
	s.registry.Complete(taskID, "Successfully scraped YouTube data for "+name, map[string]any{
		"channel_name":          name,
		"item_count":            len(records),
		"file_path":             paths[export.FormatJSON],
		"previous_data_deleted": deleted,
	})
}

func (s *Service) runInstagram(taskID, username string) {
	jobID := shortID()
	defer s.recoverTask(taskID, jobID)
	ctx := context.Background()

	s.logger.Printf("[JOB %s] starting Instagram scrape for: %s", jobID, username)

	// Identity is known up front, so the old snapshot is cleared and the
	// new folder laid down before the remote run even starts.
	identity := normalize.Sanitize(username)
	deleted := s.store.DeletePrevious(normalize.PlatformInstagram, identity)
	folder, err := s.store.CreateFolder(normalize.PlatformInstagram, identity)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to create output folder", err)
		return
	}

	items, ok := s.fetchDataset(ctx, taskID, jobID, s.actors.Instagram, instagramInput(username), "Instagram")
	if !ok {
		return
	}
	if len(items) == 0 {
		s.registry.Complete(taskID, fmt.Sprintf("Instagram scraper completed but found no data for %s", username), map[string]any{
			"username":      username,
			"item_count":    0,
			"error_message": "No data items were found for the provided username",
		})
		return
	}

	requestErrors := normalize.RequestErrors(items)
	if len(requestErrors) > 0 {
		s.logger.Printf("[JOB %s] scrape reported %d request errors", jobID, len(requestErrors))
	}

	records := normalize.Instagram(items, username)

	paths, err := s.exporter.Write(ctx, folder, identity, records, s.formats)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to save Instagram data", err)
		return
	}

	s.recordHistory(ctx, jobID, normalize.PlatformInstagram, identity, len(records), folder)

	s.logger.Printf("[JOB %s] completed: %d items for %s", jobID, len(records), username)
	s.registry.Complete(taskID, "Successfully scraped Instagram data for "+username, map[string]any{
		"username":              username,
		"item_count":            len(records),
		"file_path":             paths[export.FormatJSON],
		"previous_data_deleted": deleted,
		"had_errors":            len(requestErrors) > 0,
		"error_count":           len(requestErrors),
	})
}

// fetchDataset drives the submit/poll/fetch sequence shared by both
// platforms. On failure it marks the task failed and returns ok=false; an
// empty item list is returned as-is, since "remote ran but found nothing"
// is a valid completion, not an error.
func (s *Service) fetchDataset(ctx context.Context, taskID, jobID, actorID string, input map[string]any, label string) ([]map[string]any, bool) {
	s.delay(requestDelayMin, requestDelayMax)

	runID, err := s.client.StartRun(ctx, actorID, input)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to start "+label+" scrape", err)
		return nil, false
	}
	s.logger.Printf("[JOB %s] run started: %s", jobID, runID)

	outcome, err := s.poller.Wait(ctx, runID)
	if err != nil {
		if apify.IsNoDataset(err) {
			s.failTask(taskID, jobID, label+" run produced no dataset", err)
		} else {
			s.failTask(taskID, jobID, "Failed waiting for "+label+" run", err)
		}
		return nil, false
	}
	s.logger.Printf("[JOB %s] run finished with status %s after %d attempts", jobID, outcome.Status, outcome.Attempts)

	s.delay(requestDelayMin, requestDelayMax)

	items, err := s.client.DatasetItems(ctx, outcome.DatasetID)
	if err != nil {
		s.failTask(taskID, jobID, "Failed to retrieve "+label+" data", err)
		return nil, false
	}
	s.logger.Printf("[JOB %s] retrieved %d items from dataset %s", jobID, len(items), outcome.DatasetID)
	return items, true
}

func (s *Service) recordHistory(ctx context.Context, jobID, platform, identity string, itemCount int, folder string) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, &storage.ScrapeRecord{
		Platform:  platform,
		Identity:  identity,
		ItemCount: itemCount,
		Folder:    folder,
	})
	if err != nil {
		s.logger.Printf("[JOB %s] failed to record scrape history: %v", jobID, err)
	}
}

func (s *Service) failTask(taskID, jobID, message string, err error) {
	s.logger.Printf("[JOB %s] ERROR: %s: %v", jobID, message, err)
	s.registry.Fail(taskID, message, err.Error())
}

// recoverTask converts a worker panic into a task error so a bad payload
// can never take the process down.
func (s *Service) recoverTask(taskID, jobID string) {
	if r := recover(); r != nil {
		stack := string(debug.Stack())
		s.logger.Printf("[JOB %s] PANIC: %v\n%s", jobID, r, stack)
		s.registry.Fail(taskID, fmt.Sprintf("Error: %v", r), stack)
	}
}

func shortID() string {
	return uuid.New().String()[:8]
}
