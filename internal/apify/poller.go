package apify

import (
	"context"
	"log"
	"time"
)

// statusClient is the slice of Client the poller needs. Narrowed to an
// interface so tests can drive the poll loop with a scripted status source.
type statusClient interface {
	RunStatus(ctx context.Context, runID string) (RunInfo, error)
}

// Outcome is what a completed poll loop reports: the last status seen, the
// last dataset id observed at any point during polling, and how many probes
// were made.
type Outcome struct {
	Status    string
	DatasetID string
	Attempts  int
}

// Poller drives a run from submission to a terminal status using
// bounded-attempt fixed-interval polling.
//
// Transient probe failures do not abort the loop; they count as an attempt
// and polling continues. Every fifth attempt an extra randomized delay is
// added so long-running polls do not stay in lock-step with other workers
// hitting the same service.
type Poller struct {
	client      statusClient
	interval    time.Duration
	maxAttempts int

	// sleep is swapped out in tests. It must honor ctx cancellation.
	sleep func(ctx context.Context, d time.Duration) error
}

const (
	defaultInterval    = 10 * time.Second
	defaultMaxAttempts = 60

	jitterEvery = 5
	jitterMin   = 2 * time.Second
	jitterMax   = 5 * time.Second
)

// NewPoller creates a poller with the default interval (10s) and attempt
// ceiling (60, roughly ten minutes of waiting).
func NewPoller(client statusClient) *Poller {
	return &Poller{
		client:      client,
		interval:    defaultInterval,
		maxAttempts: defaultMaxAttempts,
		sleep:       sleepContext,
	}
}

// SetInterval overrides the poll interval.
func (p *Poller) SetInterval(d time.Duration) { p.interval = d }

// SetMaxAttempts overrides the attempt ceiling.
func (p *Poller) SetMaxAttempts(n int) { p.maxAttempts = n }

// Wait polls runID until the remote service reports a terminal status or the
// attempt ceiling is reached. It never treats a terminal FAILED/ABORTED run
// as an error by itself: whatever dataset id was observed is returned so the
// caller can attempt a best-effort fetch of partial data.
//
// Only two things fail the wait: context cancellation, and finishing without
// ever observing a dataset id (KindNoDataset).
func (p *Poller) Wait(ctx context.Context, runID string) (Outcome, error) {
	out := Outcome{}

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if err := p.sleep(ctx, p.interval); err != nil {
			return out, err
		}
		// Break the fixed cadence occasionally.
		if attempt > 0 && attempt%jitterEvery == 0 {
			if err := p.sleep(ctx, Jitter(jitterMin, jitterMax)); err != nil {
				return out, err
			}
		}

		out.Attempts = attempt + 1

		info, err := p.client.RunStatus(ctx, runID)
		if err != nil {
			// Status unknown this round; keep polling.
			log.Printf("[poll %s] status probe failed (attempt %d/%d): %v", runID, attempt+1, p.maxAttempts, err)
			continue
		}

		out.Status = info.Status
		if info.DatasetID != "" {
			out.DatasetID = info.DatasetID
		}
		log.Printf("[poll %s] status %s (attempt %d/%d)", runID, info.Status, attempt+1, p.maxAttempts)

		if Terminal(info.Status) {
			break
		}
	}

	if out.DatasetID == "" {
		return out, &Error{Kind: KindNoDataset, Op: "wait", RunID: runID, Attempts: out.Attempts}
	}
	return out, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
