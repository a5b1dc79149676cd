// internal/extractor/validate.go
package extractor

import (
	"fmt"
	"net/url"
	"strings"
)

// targetDomain is the domain token a post URL must belong to.
const targetDomain = "linkedin.com"

// ValidatePostURL confirms the raw input is an absolute HTTP(S) URL on the
// target domain. It runs before any network activity; failures are terminal
// and wrap ErrInvalidInput so callers can distinguish them from extraction
// failures.
func ValidatePostURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: URL is empty", ErrInvalidInput)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("%w: URL %q is not absolute", ErrInvalidInput, trimmed)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidInput, u.Scheme)
	}
	if !strings.Contains(strings.ToLower(u.Hostname()), targetDomain) {
		return "", fmt.Errorf("%w: host %q is not a %s URL", ErrInvalidInput, u.Hostname(), targetDomain)
	}

	return trimmed, nil
}
