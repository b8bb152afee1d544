package sources

import (
	"errors"
	"fmt"
)

// Classified failure modes. A chain treats every one of these as a signal to
// try the next adapter; anything else bubbles up unchanged.
var (
	// ErrTimeout reports that an adapter exceeded its per-attempt budget.
	ErrTimeout = errors.New("source timed out")

	// ErrMalformed reports a response that arrived but could not be parsed
	// into the expected shape.
	ErrMalformed = errors.New("source returned malformed response")

	// ErrNotConfigured reports a source whose credentials or endpoint are
	// absent. Chains skip these without logging a failure.
	ErrNotConfigured = errors.New("source not configured")

	// ErrExhausted reports that every adapter in a chain failed. Chains that
	// end in a static adapter never return it.
	ErrExhausted = errors.New("all sources exhausted")
)

// UpstreamError reports a non-success status from an external service.
type UpstreamError struct {
	Source string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream status %d", e.Source, e.Status)
}

// IsTransient reports whether err is one of the classified failures that a
// fallback chain absorbs by moving to the next adapter.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrMalformed) || errors.Is(err, ErrNotConfigured) {
		return true
	}
	var ue *UpstreamError
	return errors.As(err, &ue)
}
