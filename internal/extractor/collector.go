// internal/extractor/collector.go
package extractor

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Collector accumulates classified media items, collapsing duplicate URLs
// within a kind and assigning sequential filenames in first-accepted order.
// First occurrence wins: a duplicate add is a silent no-op and never
// disturbs ordering or numbering.
type Collector struct {
	images    []ImageItem
	videos    []VideoItem
	documents []DocumentItem
	seen      map[MediaKind]map[string]bool
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		seen: map[MediaKind]map[string]bool{
			KindImage:    {},
			KindVideo:    {},
			KindDocument: {},
		},
	}
}

// AddImage records an image unless its URL was already collected.
func (c *Collector) AddImage(rawURL, alt string) bool {
	if c.seen[KindImage][rawURL] {
		return false
	}
	c.seen[KindImage][rawURL] = true

	if strings.TrimSpace(alt) == "" {
		alt = fmt.Sprintf("Post image %d", len(c.images)+1)
	}
	c.images = append(c.images, ImageItem{
		URL:      rawURL,
		Alt:      alt,
		Filename: filenameFor(KindImage, len(c.images)+1, imageExtension(rawURL)),
	})
	return true
}

// AddVideo records a video unless its URL was already collected.
func (c *Collector) AddVideo(rawURL, title, duration string) bool {
	if c.seen[KindVideo][rawURL] {
		return false
	}
	c.seen[KindVideo][rawURL] = true

	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Post video %d", len(c.videos)+1)
	}
	c.videos = append(c.videos, VideoItem{
		URL:      rawURL,
		Title:    title,
		Duration: duration,
		Filename: filenameFor(KindVideo, len(c.videos)+1, "mp4"),
	})
	return true
}

// AddDocument records a document unless its URL was already collected.
func (c *Collector) AddDocument(rawURL, title, size string) bool {
	if c.seen[KindDocument][rawURL] {
		return false
	}
	c.seen[KindDocument][rawURL] = true

	ext := DocumentExtension(rawURL)
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Attached document %d", len(c.documents)+1)
	}
	c.documents = append(c.documents, DocumentItem{
		URL:      rawURL,
		Title:    title,
		Type:     DocumentTypeLabel(rawURL),
		Size:     size,
		Filename: filenameFor(KindDocument, len(c.documents)+1, ext),
	})
	return true
}

// Add routes a classified candidate to the matching kind sequence.
func (c *Collector) Add(kind MediaKind, rawURL string, cctx ClassifyContext) bool {
	switch kind {
	case KindImage:
		return c.AddImage(rawURL, cctx.AltText)
	case KindVideo:
		return c.AddVideo(rawURL, "", "")
	case KindDocument:
		return c.AddDocument(rawURL, "", "")
	}
	return false
}

// Images returns the collected images in first-accepted order.
func (c *Collector) Images() []ImageItem { return c.images }

// Videos returns the collected videos in first-accepted order.
func (c *Collector) Videos() []VideoItem { return c.videos }

// Documents returns the collected documents in first-accepted order.
func (c *Collector) Documents() []DocumentItem { return c.documents }

// ImageCount returns the number of accepted images.
func (c *Collector) ImageCount() int { return len(c.images) }

// TruncateImages drops all images beyond limit, keeping encounter order.
// The dedup index keeps the dropped URLs so re-adding them stays a no-op.
func (c *Collector) TruncateImages(limit int) {
	if limit >= 0 && len(c.images) > limit {
		c.images = c.images[:limit]
	}
}

// FillContent copies the collected sequences into a result.
func (c *Collector) FillContent(content *ExtractedContent) {
	content.Images = append(content.Images, c.images...)
	content.Videos = append(content.Videos, c.videos...)
	content.Documents = append(content.Documents, c.documents...)
}

// filenameFor builds the deterministic per-kind sequential filename.
func filenameFor(kind MediaKind, ordinal int, ext string) string {
	return fmt.Sprintf("%s-%d.%s", kind, ordinal, ext)
}

// imageExtension derives a usable file extension from the URL path,
// defaulting to jpg for the extension-less CDN paths LinkedIn serves.
func imageExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "jpg"
	}
	switch strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), ".")) {
	case "png":
		return "png"
	case "gif":
		return "gif"
	case "webp":
		return "webp"
	case "jpeg", "jpg":
		return "jpg"
	}
	return "jpg"
}
