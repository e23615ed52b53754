package apify

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Run statuses reported by the remote service. Anything in terminalStatuses
// will never change again; the dataset it produced (if any) is fetchable
// regardless of which terminal state was reached.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusTimedOut  = "TIMED-OUT"
	StatusAborted   = "ABORTED"
)

var terminalStatuses = map[string]bool{
	StatusSucceeded: true,
	StatusFailed:    true,
	StatusTimedOut:  true,
	StatusAborted:   true,
}

// Terminal reports whether status is one the remote service never leaves.
func Terminal(status string) bool {
	return terminalStatuses[status]
}

// RunInfo is a single status probe result.
type RunInfo struct {
	Status    string
	DatasetID string
}

// Client talks to the remote job service. The underlying transport retries
// idempotent calls up to retryCount times with exponential backoff starting
// at retryWait on 429 and 5xx responses.
type Client struct {
	baseURL string
	token   string
	http    *resty.Client
}

const (
	retryCount = 5
	retryWait  = 1 * time.Second
)

var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Option customizes a Client.
type Option func(*Client)

// WithRetryWait overrides the initial retry backoff. Used by tests to avoid
// wall-clock waits.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetRetryWaitTime(d)
	}
}

// NewClient creates a client for the remote job service at baseURL.
func NewClient(baseURL, token string, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(5 * time.Minute)
	httpClient.SetRetryCount(retryCount)
	httpClient.SetRetryWaitTime(retryWait)
	httpClient.SetRetryMaxWaitTime(retryWait << retryCount)
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return retryStatuses[resp.StatusCode()]
	})

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type runEnvelope struct {
	ID   string `json:"id"`
	Data struct {
		ID         string `json:"id"`
		ActorRunID string `json:"actorRunId"`
		Resource   string `json:"resource"`
	} `json:"data"`
}

// StartRun submits a job configuration to the given actor and returns the
// run id. The service answers 201 with the run wrapped in a data envelope,
// but several alternate response shapes are seen in the wild and all of
// them are accepted.
func (c *Client) StartRun(ctx context.Context, actorID string, input map[string]any) (string, error) {
	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, actorID, c.token)

	var envelope runEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(input).
		SetResult(&envelope).
		Post(url)
	if err != nil {
		return "", &Error{Kind: KindTransport, Op: "start run", Cause: err}
	}
	if resp.StatusCode() != http.StatusCreated {
		return "", statusError("start run", resp.StatusCode(), string(resp.Body()))
	}

	runID := extractRunID(envelope)
	if runID == "" {
		return "", statusError("start run: no run id in response", resp.StatusCode(), string(resp.Body()))
	}
	return runID, nil
}

// extractRunID tries the known response shapes in order: data.id,
// data.actorRunId, root-level id, and finally the trailing path segment of
// the resource URL.
func extractRunID(envelope runEnvelope) string {
	if envelope.Data.ID != "" {
		return envelope.Data.ID
	}
	if envelope.Data.ActorRunID != "" {
		return envelope.Data.ActorRunID
	}
	if envelope.ID != "" {
		return envelope.ID
	}
	if envelope.Data.Resource != "" {
		parts := strings.Split(strings.TrimSuffix(envelope.Data.Resource, "/"), "/")
		return parts[len(parts)-1]
	}
	return ""
}

// RunStatus probes the current status of a run.
func (c *Client) RunStatus(ctx context.Context, runID string) (RunInfo, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)

	var status struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&status).
		Get(url)
	if err != nil {
		return RunInfo{}, &Error{Kind: KindTransport, Op: "run status", RunID: runID, Cause: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return RunInfo{}, statusError("run status", resp.StatusCode(), string(resp.Body()))
	}

	return RunInfo{
		Status:    status.Data.Status,
		DatasetID: status.Data.DefaultDatasetID,
	}, nil
}

// DatasetItems retrieves the full result set of a dataset. An empty array is
// a valid outcome and is returned as an empty, non-nil slice. Items that are
// not JSON objects are dropped rather than failing the whole batch.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s", c.baseURL, datasetID, c.token)

	var raw []any
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&raw).
		Get(url)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: "dataset items", Cause: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, statusError("dataset items", resp.StatusCode(), string(resp.Body()))
	}

	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		item, ok := entry.(map[string]any)
		if !ok {
			log.Printf("dataset %s: skipping malformed item of type %T", datasetID, entry)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Jitter returns a random duration in [min, max). Every request against the
// remote service is spaced with it to avoid correlated bursts.
func Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}
