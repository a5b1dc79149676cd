// internal/extractor/rendered.go
package extractor

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// contentReadySelector is the selector whose appearance signals that the
// client-side feed markup has rendered. Its absence is tolerated; the page
// HTML is harvested either way once the wait window closes.
const contentReadySelector = ".feed-shared-update-v2, .update-components-text, article"

// RenderedStrategy asks a remote headless-browser service to fully render
// the target page (executing its scripts) and mines the resulting DOM. It
// requires a service credential; without one it fails fast with
// ErrUnconfigured so the pipeline can fall through immediately.
type RenderedStrategy struct {
	serviceURL   string
	token        string
	timeout      time.Duration
	selectorWait time.Duration
	logger       zerolog.Logger
}

// RenderedConfig configures the rendered-DOM strategy.
type RenderedConfig struct {
	ServiceURL   string        // websocket endpoint of the rendering service
	Token        string        // service credential; empty disables the strategy
	Timeout      time.Duration // overall rendering budget
	SelectorWait time.Duration // bounded wait for content markup, independent of Timeout
}

// NewRenderedStrategy creates the rendered-DOM strategy.
func NewRenderedStrategy(config RenderedConfig, logger zerolog.Logger) *RenderedStrategy {
	if config.ServiceURL == "" {
		config.ServiceURL = "wss://chrome.browserless.io"
	}
	if config.Timeout == 0 {
		config.Timeout = 45 * time.Second
	}
	if config.SelectorWait == 0 {
		config.SelectorWait = 10 * time.Second
	}
	return &RenderedStrategy{
		serviceURL:   config.ServiceURL,
		token:        config.Token,
		timeout:      config.Timeout,
		selectorWait: config.SelectorWait,
		logger:       logger.With().Str("strategy", "rendered-dom").Logger(),
	}
}

// Name implements Strategy.
func (r *RenderedStrategy) Name() string { return "rendered-dom" }

// Attempt implements Strategy. The remote browser session is scoped to this
// call: every exit path runs the cancel funcs, which tear the session down.
func (r *RenderedStrategy) Attempt(ctx context.Context, postURL string) (*ExtractedContent, error) {
	if r.token == "" {
		return nil, ErrUnconfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, r.endpoint())
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(postURL),
		chromedp.WaitReady("body"),
	); err != nil {
		return nil, &RenderError{URL: postURL, Err: err}
	}

	// Bounded wait for the feed markup. A timeout here is not fatal: some
	// post variants never match the selector but still carry content.
	waitCtx, cancelWait := context.WithTimeout(browserCtx, r.selectorWait)
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(contentReadySelector, chromedp.ByQuery)); err != nil {
		r.logger.Debug().Err(err).Msg("content selector did not appear, harvesting anyway")
	}
	cancelWait()

	var html string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, &RenderError{URL: postURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RenderError{URL: postURL, Err: err}
	}

	col := NewCollector()
	text := collectFromDocument(doc, col)

	content := NewExtractedContent()
	content.Text = TextOrPlaceholder(text)
	col.FillContent(content)

	r.logger.Debug().
		Int("images", len(content.Images)).
		Int("videos", len(content.Videos)).
		Int("documents", len(content.Documents)).
		Msg("rendered extraction complete")

	return content, nil
}

// endpoint builds the websocket URL with the service credential attached.
func (r *RenderedStrategy) endpoint() string {
	return r.serviceURL + "?token=" + url.QueryEscape(r.token)
}
