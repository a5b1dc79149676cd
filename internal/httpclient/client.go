// internal/httpclient/client.go
package httpclient

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client is an HTTP client tuned for fetching pages from an uncooperative
// origin: randomized realistic browser headers, outbound rate limiting, and
// retry with exponential backoff on transient status codes.
type Client struct {
	httpClient    *http.Client
	userAgents    []string
	uaMutex       sync.Mutex
	rng           *rand.Rand
	rateLimiter   *rate.Limiter
	retryAttempts int
	retryDelay    time.Duration
	headers       map[string]string
}

// Config defines construction options for the client. Zero values fall back
// to conservative defaults.
type Config struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	UserAgents    []string
	Headers       map[string]string
	RateLimit     float64 // requests per second
	RateBurst     int
}

// New creates a client with the specified configuration.
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 2
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1.0
	}
	if config.RateBurst == 0 {
		config.RateBurst = 5
	}
	if len(config.UserAgents) == 0 {
		config.UserAgents = DefaultUserAgents()
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		httpClient:    httpClient,
		userAgents:    config.UserAgents,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		rateLimiter:   rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
		headers:       config.Headers,
	}
}

// Get performs a GET request with browser-like headers and retry on
// transient failures. The caller owns the response body.
func (c *Client) Get(ctx context.Context, targetURL string) (*http.Response, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		c.setRequestHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w",
				attempt+1, c.retryAttempts+1, err)
			if attempt < c.retryAttempts && ctx.Err() == nil {
				c.waitForRetry(ctx, attempt)
				continue
			}
			break
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		// Non-2xx responses are surfaced to the caller after retries on
		// the retryable subset are exhausted.
		if !shouldRetryStatusCode(resp.StatusCode) || attempt == c.retryAttempts {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("HTTP %d: %s (attempt %d/%d)",
			resp.StatusCode, resp.Status, attempt+1, c.retryAttempts+1)
		c.waitForRetry(ctx, attempt)
	}

	return nil, lastErr
}

// setRequestHeaders applies a randomized User-Agent and the standard
// browser-like header set, then any configured overrides.
func (c *Client) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	// Accept-Encoding is left to the transport so gzip responses are
	// decompressed before parsing.
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}

// randomUserAgent picks a user agent at random so repeated calls never form
// a fingerprintable rotation pattern.
func (c *Client) randomUserAgent() string {
	c.uaMutex.Lock()
	defer c.uaMutex.Unlock()

	if len(c.userAgents) == 0 {
		return "Mozilla/5.0 (compatible; extractor/1.0)"
	}
	return c.userAgents[c.rng.Intn(len(c.userAgents))]
}

// waitForRetry sleeps with exponential backoff plus jitter, bailing early
// when the request context is cancelled.
func (c *Client) waitForRetry(ctx context.Context, attempt int) {
	backoff := c.retryDelay * time.Duration(1<<uint(attempt))

	c.uaMutex.Lock()
	jitter := time.Duration(c.rng.Int63n(int64(backoff/2) + 1))
	c.uaMutex.Unlock()

	total := backoff + jitter
	if total > 30*time.Second {
		total = 30 * time.Second
	}

	select {
	case <-time.After(total):
	case <-ctx.Done():
	}
}

// shouldRetryStatusCode reports whether a status code warrants a retry.
func shouldRetryStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		520, 521, 522, 523, 524: // CloudFlare errors
		return true
	}
	return false
}

// DefaultUserAgents returns a pool of realistic desktop browser user agent
// strings for rotation.
func DefaultUserAgents() []string {
	return []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:125.0) Gecko/20100101 Firefox/125.0",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	}
}

// BrowserHeaders returns a header set suitable for fetching media assets on
// behalf of a browser client, with the referer pointed at the post origin.
func BrowserHeaders(userAgent, referer string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "image/avif,image/webp,video/*,application/pdf,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Referer":         referer,
	}
}
