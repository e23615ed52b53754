package apify

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures talking to the remote job service so callers
// can branch on kind instead of parsing message strings.
type ErrorKind int

const (
	// KindTransport covers non-2xx responses and connection failures after
	// the transport retry budget is exhausted.
	KindTransport ErrorKind = iota
	// KindAuth is a rejected token (401/403).
	KindAuth
	// KindNoDataset means a run reached a terminal state without ever
	// reporting a dataset id. Distinct from an empty dataset.
	KindNoDataset
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindNoDataset:
		return "no_dataset"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by the client and poller. Cause
// holds the underlying transport error on connection-level failures.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Body       string
	Attempts   int
	RunID      string
	Cause      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoDataset:
		return fmt.Sprintf("apify: %s: run %s produced no dataset after %d attempts", e.Op, e.RunID, e.Attempts)
	case KindAuth:
		return fmt.Sprintf("apify: %s: authentication rejected (status %d)", e.Op, e.StatusCode)
	default:
		if e.StatusCode != 0 {
			return fmt.Sprintf("apify: %s: status %d, body: %s", e.Op, e.StatusCode, e.Body)
		}
		if e.Cause != nil {
			return fmt.Sprintf("apify: %s: %v", e.Op, e.Cause)
		}
		return fmt.Sprintf("apify: %s: request failed", e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsNoDataset reports whether err is a no-dataset error.
func IsNoDataset(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNoDataset
}

func statusError(op string, status int, body string) *Error {
	kind := KindTransport
	if status == 401 || status == 403 {
		kind = KindAuth
	}
	return &Error{Kind: kind, Op: op, StatusCode: status, Body: body}
}
