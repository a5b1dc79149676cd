// internal/extractor/static_test.go
package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
)

func fastTestClient() *httpclient.Client {
	return httpclient.New(httpclient.Config{
		Timeout:       5 * time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
		RateLimit:     1000,
		RateBurst:     1000,
	})
}

func TestStaticStrategyExtractsPage(t *testing.T) {
	page := `<html><head>
		<meta property="og:description" content="fallback description">
	</head><body>
		<div class="feed-shared-update-v2__description">A post about shipping software.</div>
		<div class="update-components-image">
			<img src="https://media.licdn.com/dms/image/v2/D4D22AQAAA/feedshare-shrink_800/0" alt="release dashboard">
			<img src="https://media.licdn.com/dms/image/company-logo_200/D4D22AQBBB" alt="">
		</div>
		<video src="https://media.licdn.com/dms/playlist/D4D05AQCCC/video.mp4"></video>
		<a href="https://www.example.com/files/release-notes-v2.pdf">Release notes</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	strategy := NewStaticStrategy(fastTestClient(), nil, zerolog.Nop())
	content, err := strategy.Attempt(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if content.Text != "A post about shipping software." {
		t.Errorf("text = %q", content.Text)
	}
	if len(content.Images) != 1 {
		t.Fatalf("expected 1 image (logo filtered), got %d", len(content.Images))
	}
	if content.Images[0].Alt != "release dashboard" {
		t.Errorf("image alt = %q", content.Images[0].Alt)
	}
	if len(content.Videos) != 1 {
		t.Fatalf("expected 1 video, got %d", len(content.Videos))
	}
	if len(content.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(content.Documents))
	}
	if err := content.Validate(); err != nil {
		t.Errorf("result should satisfy the content schema: %v", err)
	}
}

func TestStaticStrategyImageCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<img src="https://media.licdn.com/dms/image/v2/D4D22AQX%02d/feedshare-shrink_800/0" alt="photo %d">`, i, i)
	}
	b.WriteString("</body></html>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, b.String())
	}))
	defer server.Close()

	strategy := NewStaticStrategy(fastTestClient(), nil, zerolog.Nop())
	content, err := strategy.Attempt(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Images) > defaultStaticImageCap {
		t.Fatalf("image cap violated: got %d images", len(content.Images))
	}
	if len(content.Images) != defaultStaticImageCap {
		t.Fatalf("expected exactly %d images, got %d", defaultStaticImageCap, len(content.Images))
	}
	// Encounter order preserved.
	if content.Images[0].Alt != "photo 0" {
		t.Errorf("first image alt = %q", content.Images[0].Alt)
	}
}

func TestStaticStrategyPlaceholderText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p></p></body></html>")
	}))
	defer server.Close()

	strategy := NewStaticStrategy(fastTestClient(), nil, zerolog.Nop())
	content, err := strategy.Attempt(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.Text != PlaceholderText {
		t.Errorf("text = %q, want placeholder", content.Text)
	}
}

func TestStaticStrategyHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	strategy := NewStaticStrategy(fastTestClient(), nil, zerolog.Nop())
	_, err := strategy.Attempt(context.Background(), server.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.StatusCode)
	}
}

func TestStaticStrategyRespectsRobots(t *testing.T) {
	var pageFetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		atomic.AddInt32(&pageFetches, 1)
		fmt.Fprint(w, "<html><body><p>post</p></body></html>")
	}))
	defer server.Close()

	strategy := NewStaticStrategy(fastTestClient(), compliance.NewChecker("PostExtractor"), zerolog.Nop())
	_, err := strategy.Attempt(context.Background(), server.URL+"/posts/123")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError from robots refusal, got %v", err)
	}
	if got := atomic.LoadInt32(&pageFetches); got != 0 {
		t.Errorf("disallowed page was fetched %d times, want 0", got)
	}
}

func TestStaticStrategyNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // deliberately unreachable

	strategy := NewStaticStrategy(fastTestClient(), nil, zerolog.Nop())
	_, err := strategy.Attempt(context.Background(), server.URL)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
