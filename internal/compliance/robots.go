// internal/compliance/robots.go
package compliance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// Checker answers robots.txt queries for target hosts, caching the parsed
// policy per host. It is optional: the extraction pipeline only consults it
// when compliance checking is enabled in configuration.
type Checker struct {
	userAgent  string
	httpClient *http.Client
	cache      map[string]*robotstxt.RobotsData
	cacheMu    sync.Mutex
}

// NewChecker creates a robots.txt checker identifying as userAgent.
func NewChecker(userAgent string) *Checker {
	if userAgent == "" {
		userAgent = "*"
	}
	return &Checker{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed returns nil when the target URL may be fetched under the host's
// robots.txt policy. Hosts whose robots.txt cannot be retrieved are treated
// as allowing everything, matching crawler convention for unreachable
// policies.
func (c *Checker) Allowed(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	data, err := c.policyFor(ctx, u)
	if err != nil || data == nil {
		return nil
	}

	if !data.TestAgent(u.Path, c.userAgent) {
		return fmt.Errorf("robots.txt disallows %s for agent %q", u.Path, c.userAgent)
	}
	return nil
}

// policyFor fetches and caches the robots.txt policy for a host.
func (c *Checker) policyFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Scheme + "://" + u.Host

	c.cacheMu.Lock()
	if data, ok := c.cache[host]; ok {
		c.cacheMu.Unlock()
		return data, nil
	}
	c.cacheMu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cache[host] = data
	c.cacheMu.Unlock()
	return data, nil
}
