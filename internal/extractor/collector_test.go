// internal/extractor/collector_test.go
package extractor

import (
	"fmt"
	"testing"
)

func TestCollectorDeduplicatesByURL(t *testing.T) {
	col := NewCollector()

	if !col.AddImage("https://media.licdn.com/dms/image/abc/feedshare-shrink_800/0", "first") {
		t.Fatal("first add should be accepted")
	}
	if col.AddImage("https://media.licdn.com/dms/image/abc/feedshare-shrink_800/0", "second") {
		t.Fatal("duplicate add should be a no-op")
	}

	images := col.Images()
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	// First occurrence wins.
	if images[0].Alt != "first" {
		t.Errorf("expected first occurrence to win, got alt %q", images[0].Alt)
	}
}

func TestCollectorSequentialFilenames(t *testing.T) {
	col := NewCollector()

	urls := []string{
		"https://media.licdn.com/dms/image/a/feedshare-shrink_800/0",
		"https://media.licdn.com/dms/image/b/feedshare-shrink_800/0",
		"https://media.licdn.com/dms/image/a/feedshare-shrink_800/0", // duplicate
		"https://media.licdn.com/dms/image/c/feedshare-shrink_800/0",
	}
	for _, u := range urls {
		col.AddImage(u, "")
	}

	images := col.Images()
	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}
	// Strictly sequential from 1, no gaps, even with the duplicate in between.
	for i, img := range images {
		want := fmt.Sprintf("image-%d.jpg", i+1)
		if img.Filename != want {
			t.Errorf("image %d: filename %q, want %q", i, img.Filename, want)
		}
	}
}

func TestCollectorFilenamesPerKind(t *testing.T) {
	col := NewCollector()
	col.AddImage("https://media.licdn.com/dms/image/a/feedshare-shrink_800/0", "")
	col.AddVideo("https://media.licdn.com/dms/playlist/a/video.mp4", "", "")
	col.AddDocument("https://example.com/files/report-fy24.pdf", "Report", "1.2 MB")

	if got := col.Images()[0].Filename; got != "image-1.jpg" {
		t.Errorf("image filename = %q", got)
	}
	if got := col.Videos()[0].Filename; got != "video-1.mp4" {
		t.Errorf("video filename = %q", got)
	}
	if got := col.Documents()[0].Filename; got != "document-1.pdf" {
		t.Errorf("document filename = %q", got)
	}
}

func TestCollectorKindsAreIndependent(t *testing.T) {
	col := NewCollector()
	// The same URL may appear in different kinds without colliding.
	shared := "https://media.licdn.com/dms/media/shared/asset.mp4"
	col.AddImage(shared, "")
	if !col.AddVideo(shared, "", "") {
		t.Error("same URL in a different kind should be accepted")
	}
}

func TestCollectorTruncateImages(t *testing.T) {
	col := NewCollector()
	for i := 0; i < 15; i++ {
		col.AddImage(fmt.Sprintf("https://media.licdn.com/dms/image/x%d/feedshare-shrink_800/0", i), "")
	}
	col.TruncateImages(10)

	if got := col.ImageCount(); got != 10 {
		t.Fatalf("expected 10 images after truncation, got %d", got)
	}
	if col.Images()[0].Filename != "image-1.jpg" {
		t.Error("truncation should preserve encounter order")
	}
}

func TestCollectorDocumentDefaults(t *testing.T) {
	col := NewCollector()
	col.AddDocument("https://example.com/files/strategy-deck.pptx", "", "")

	doc := col.Documents()[0]
	if doc.Title == "" {
		t.Error("expected a generated title")
	}
	if doc.Type != "PowerPoint Presentation" {
		t.Errorf("document type = %q", doc.Type)
	}
	if doc.Filename != "document-1.pptx" {
		t.Errorf("document filename = %q", doc.Filename)
	}
}

func TestCollectorImageExtensionFromURL(t *testing.T) {
	col := NewCollector()
	col.AddImage("https://media.licdn.com/dms/image/foo/picture.png", "")
	if got := col.Images()[0].Filename; got != "image-1.png" {
		t.Errorf("filename = %q, want image-1.png", got)
	}
}
