// internal/extractor/scriptmine_test.go
package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
)

func mineHTML(t *testing.T, html string) *ExtractedContent {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	strategy := NewScriptMineStrategy(fastTestClient(), nil, zerolog.Nop())
	return strategy.Mine(doc)
}

func imageURLs(content *ExtractedContent) map[string]bool {
	urls := make(map[string]bool, len(content.Images))
	for _, img := range content.Images {
		urls[img.URL] = true
	}
	return urls
}

func TestMineKeyValueWithEscapes(t *testing.T) {
	html := `<html><body><script>
		var state = {"imageUrl":"https:\/\/media.licdn.com\/dms\/image\/v2\/D4D22AQHaaaaaaaaaa\/feedshare-shrink_2048_1536\/0?e=123&v=beta"};
	</script></body></html>`

	content := mineHTML(t, html)
	want := "https://media.licdn.com/dms/image/v2/D4D22AQHaaaaaaaaaa/feedshare-shrink_2048_1536/0?e=123&v=beta"

	if len(content.Images) == 0 {
		t.Fatal("expected mined images")
	}
	// The directly embedded URL is found first; identifier reconstruction
	// only appends after it.
	if content.Images[0].URL != want {
		t.Errorf("images[0] = %q, want %q", content.Images[0].URL, want)
	}
}

func TestMineArrayValues(t *testing.T) {
	html := `<html><body><script>
		{"images":["https:\/\/media.licdn.com\/dms\/image\/v2\/D4E22AQJbbbbbbbbbb\/feedshare-shrink_800\/0","not-a-url"]}
	</script></body></html>`

	content := mineHTML(t, html)
	urls := imageURLs(content)
	if !urls["https://media.licdn.com/dms/image/v2/D4E22AQJbbbbbbbbbb/feedshare-shrink_800/0"] {
		t.Errorf("array-valued image URL not mined, got %v", urls)
	}
}

func TestMinePrefixesPartialPaths(t *testing.T) {
	html := `<html><body><script>
		{"url":"\/dms\/image\/v2\/D4D22AQKcccccccccc\/feedshare-shrink_800\/0"}
	</script></body></html>`

	content := mineHTML(t, html)
	urls := imageURLs(content)
	if !urls["https://media.licdn.com/dms/image/v2/D4D22AQKcccccccccc/feedshare-shrink_800/0"] {
		t.Errorf("partial path was not rooted at the CDN origin, got %v", urls)
	}
}

func TestMineReconstructsFromAssetIDs(t *testing.T) {
	// The identifier appears in script state with no embedded URL at all.
	html := `<html><body><script>
		var ids = ["D4D22AQGb2CdEfGhIj"];
	</script></body></html>`

	content := mineHTML(t, html)
	urls := imageURLs(content)

	for _, want := range []string{
		"https://media.licdn.com/dms/image/v2/D4D22AQGb2CdEfGhIj/feedshare-shrink_2048_1536/0",
		"https://media.licdn.com/dms/image/D4D22AQGb2CdEfGhIj/feedshare-shrink_800/0",
	} {
		if !urls[want] {
			t.Errorf("missing reconstructed variant %s, got %v", want, urls)
		}
	}
}

func TestMineStructuredData(t *testing.T) {
	html := `<html><body>
	<script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "SocialMediaPosting",
		"description": "Post text from structured data",
		"image": {"url": "https://media.licdn.com/dms/image/v2/D4F22AQLdjsonimage1/feedshare-shrink_800/0"},
		"video": {"contentUrl": "https://media.licdn.com/dms/playlist/D4F05AQvideoasset1/master.mp4"},
		"author": {"image": "https://media.licdn.com/dms/image/profile-displayphoto-shrink_100_100/abc"}
	}
	</script>
	<script type="application/ld+json">{this is not json</script>
	</body></html>`

	content := mineHTML(t, html)

	if content.Text != "Post text from structured data" {
		t.Errorf("text = %q", content.Text)
	}
	if !imageURLs(content)["https://media.licdn.com/dms/image/v2/D4F22AQLdjsonimage1/feedshare-shrink_800/0"] {
		t.Error("nested structured-data image not mined")
	}
	// The author profile photo is blocked by the classifier.
	for _, img := range content.Images {
		if strings.Contains(img.URL, "profile-displayphoto") {
			t.Errorf("profile photo leaked into results: %s", img.URL)
		}
	}
	if len(content.Videos) != 1 {
		t.Fatalf("expected 1 video from structured data, got %d", len(content.Videos))
	}
}

func TestMineStructuredDataArrayOrder(t *testing.T) {
	// A single array must yield filenames in document order.
	html := `<html><body>
	<script type="application/ld+json">
	{
		"image": [
			"https://media.licdn.com/dms/image/v2/D4F22AQfirstslide01/feedshare-shrink_800/0",
			"https://media.licdn.com/dms/image/v2/D4F22AQsecondslide2/feedshare-shrink_800/0",
			"https://media.licdn.com/dms/image/v2/D4F22AQthirdslide03/feedshare-shrink_800/0"
		]
	}
	</script>
	</body></html>`

	content := mineHTML(t, html)
	if len(content.Images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(content.Images))
	}
	for i, wantToken := range []string{"firstslide01", "secondslide2", "thirdslide03"} {
		if !strings.Contains(content.Images[i].URL, wantToken) {
			t.Errorf("images[%d] = %s, want the %s URL", i, content.Images[i].URL, wantToken)
		}
		wantName := []string{"image-1.jpg", "image-2.jpg", "image-3.jpg"}[i]
		if content.Images[i].Filename != wantName {
			t.Errorf("images[%d].Filename = %q, want %q", i, content.Images[i].Filename, wantName)
		}
	}
}

func TestScriptMineStrategyRespectsRobots(t *testing.T) {
	var pageFetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /\n"))
			return
		}
		atomic.AddInt32(&pageFetches, 1)
		w.Write([]byte(`<html><body><script>
			{"imageUrl":"https://media.licdn.com/dms/image/v2/D4F22AQblockedasset/feedshare-shrink_800/0"}
		</script></body></html>`))
	}))
	defer server.Close()

	strategy := NewScriptMineStrategy(fastTestClient(), compliance.NewChecker("PostExtractor"), zerolog.Nop())
	_, err := strategy.Attempt(context.Background(), server.URL+"/posts/123")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError from robots refusal, got %v", err)
	}
	if got := atomic.LoadInt32(&pageFetches); got != 0 {
		t.Errorf("disallowed page was fetched %d times, want 0", got)
	}
}

func TestMineBareURLs(t *testing.T) {
	html := `<html><body><script>
		console.log("prefetching https://media.licdn.com/dms/image/v2/D4F22AQMdddddddddd/feedshare-shrink_800/0 for the viewer");
	</script></body></html>`

	content := mineHTML(t, html)
	if len(content.Images) != 1 {
		t.Fatalf("expected exactly 1 image, got %d", len(content.Images))
	}
	if content.Images[0].URL != "https://media.licdn.com/dms/image/v2/D4F22AQMdddddddddd/feedshare-shrink_800/0" {
		t.Errorf("images[0] = %q", content.Images[0].URL)
	}
}

func TestMineVideos(t *testing.T) {
	html := `<html><body><script>
		{"videoUrl":"https:\/\/media.licdn.com\/dms\/playlist\/D4F05AQvid1\/master.mp4"}
		var fallback = "https://cdn.example.com/media/clip_final_export.mp4";
	</script></body></html>`

	content := mineHTML(t, html)
	if len(content.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d: %+v", len(content.Videos), content.Videos)
	}
}

func TestMineMetadataTextFallback(t *testing.T) {
	html := `<html><head>
		<meta property="og:description" content="Described in page metadata">
	</head><body><script>var nothing = 1;</script></body></html>`

	content := mineHTML(t, html)
	if content.Text != "Described in page metadata" {
		t.Errorf("text = %q", content.Text)
	}
}

func TestNormalizeCandidate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`https:\/\/media.licdn.com\/dms\/image\/a`, "https://media.licdn.com/dms/image/a"},
		{`https://x.test/a?b=1&c=2`, "https://x.test/a?b=1&c=2"},
		{"/dms/image/abc", "https://media.licdn.com/dms/image/abc"},
		{`"https://x.test/quoted"`, "https://x.test/quoted"},
	}
	for _, tt := range tests {
		if got := normalizeCandidate(tt.in); got != tt.want {
			t.Errorf("normalizeCandidate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
