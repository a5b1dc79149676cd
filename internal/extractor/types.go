// internal/extractor/types.go
package extractor

import (
	"fmt"
	"net/url"
	"strings"
)

// ExtractRequest is the payload accepted by the extraction endpoint.
type ExtractRequest struct {
	URL      string `json:"url"`
	DemoMode bool   `json:"demoMode"`
}

// ImageItem is a single image discovered in a post.
type ImageItem struct {
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	Filename string `json:"filename"`
}

// VideoItem is a single video discovered in a post.
type VideoItem struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Filename string `json:"filename"`
}

// DocumentItem is a document attachment discovered in a post.
type DocumentItem struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Filename string `json:"filename"`
}

// ExtractedContent is the normalized result shape shared by every strategy.
// It is constructed fresh per extraction call and never mutated after being
// returned to the caller.
type ExtractedContent struct {
	Text      string         `json:"text"`
	Images    []ImageItem    `json:"images"`
	Videos    []VideoItem    `json:"videos"`
	Documents []DocumentItem `json:"documents"`
}

// NewExtractedContent returns an empty result with non-nil slices so the
// JSON encoding always carries arrays rather than nulls.
func NewExtractedContent() *ExtractedContent {
	return &ExtractedContent{
		Images:    []ImageItem{},
		Videos:    []VideoItem{},
		Documents: []DocumentItem{},
	}
}

// IsEmpty reports whether the result carries neither text nor media.
func (c *ExtractedContent) IsEmpty() bool {
	return c.Text == "" && len(c.Images) == 0 && len(c.Videos) == 0 && len(c.Documents) == 0
}

// MediaCount returns the total number of media items across all kinds.
func (c *ExtractedContent) MediaCount() int {
	return len(c.Images) + len(c.Videos) + len(c.Documents)
}

// Validate checks the result against the shared content schema: text present
// (possibly the placeholder), every item carrying an absolute HTTP(S) URL and
// a filename.
func (c *ExtractedContent) Validate() error {
	if c == nil {
		return fmt.Errorf("content cannot be nil")
	}
	for i, img := range c.Images {
		if err := validateItemURL(img.URL); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		if img.Filename == "" {
			return fmt.Errorf("image %d: filename is empty", i)
		}
	}
	for i, vid := range c.Videos {
		if err := validateItemURL(vid.URL); err != nil {
			return fmt.Errorf("video %d: %w", i, err)
		}
		if vid.Filename == "" {
			return fmt.Errorf("video %d: filename is empty", i)
		}
	}
	for i, doc := range c.Documents {
		if err := validateItemURL(doc.URL); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if doc.Filename == "" {
			return fmt.Errorf("document %d: filename is empty", i)
		}
	}
	return nil
}

func validateItemURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("URL %q is not absolute HTTP(S)", raw)
	}
	if strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("URL %q has no host", raw)
	}
	return nil
}

// SelectionSet is a caller-side view over an ExtractedContent used by the
// download packaging step: which parts of the result to include.
type SelectionSet struct {
	IncludeText  bool            `json:"includeText"`
	ImageURLs    map[string]bool `json:"imageUrls"`
	VideoURLs    map[string]bool `json:"videoUrls"`
	DocumentURLs map[string]bool `json:"documentUrls"`
}
