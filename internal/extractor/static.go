// internal/extractor/static.go
package extractor

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
)

// defaultStaticImageCap bounds how many classified images the static
// strategy keeps, in encounter order.
const defaultStaticImageCap = 10

// StaticStrategy fetches the raw page over plain HTTP and mines the
// returned markup without script execution. Client-rendered sections are
// absent from what it sees, so it recovers less than the rendered strategy;
// it is the cheaper fallback, not a replacement.
type StaticStrategy struct {
	client   *httpclient.Client
	robots   *compliance.Checker
	imageCap int
	logger   zerolog.Logger
}

// NewStaticStrategy creates the static-HTML strategy. robots may be nil
// when compliance checking is disabled.
func NewStaticStrategy(client *httpclient.Client, robots *compliance.Checker, logger zerolog.Logger) *StaticStrategy {
	return &StaticStrategy{
		client:   client,
		robots:   robots,
		imageCap: defaultStaticImageCap,
		logger:   logger.With().Str("strategy", "static-html").Logger(),
	}
}

// Name implements Strategy.
func (s *StaticStrategy) Name() string { return "static-html" }

// Attempt implements Strategy.
func (s *StaticStrategy) Attempt(ctx context.Context, postURL string) (*ExtractedContent, error) {
	if s.robots != nil {
		if err := s.robots.Allowed(ctx, postURL); err != nil {
			return nil, &NetworkError{URL: postURL, Err: err}
		}
	}

	resp, err := s.client.Get(ctx, postURL)
	if err != nil {
		return nil, &NetworkError{URL: postURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: postURL}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: postURL, Err: err}
	}

	col := NewCollector()
	text := collectFromDocument(doc, col)
	col.TruncateImages(s.imageCap)

	content := NewExtractedContent()
	content.Text = TextOrPlaceholder(text)
	col.FillContent(content)

	s.logger.Debug().
		Int("images", len(content.Images)).
		Int("videos", len(content.Videos)).
		Int("documents", len(content.Documents)).
		Msg("static extraction complete")

	return content, nil
}
