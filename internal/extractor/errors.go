// internal/extractor/errors.go
package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput indicates the request URL failed validation. No strategy
// is attempted for such inputs.
var ErrInvalidInput = errors.New("invalid input URL")

// ErrUnconfigured indicates the rendered-DOM strategy has no rendering
// service credential and skipped itself.
var ErrUnconfigured = errors.New("rendering service credential not configured")

// RenderError wraps a failure of the remote rendering service.
type RenderError struct {
	URL string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering failed for %s: %v", e.URL, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// HTTPError represents a non-2xx response from a direct fetch.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, e.Status, e.URL)
}

// NetworkError represents a transport-level failure of a direct fetch.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StrategyError records which strategy failed and why.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// AllFailedError aggregates the per-strategy failures after every strategy
// in the pipeline has been exhausted.
type AllFailedError struct {
	URL      string
	Attempts []*StrategyError
}

func (e *AllFailedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("all extraction strategies failed for %s: [%s]", e.URL, strings.Join(parts, "; "))
}
