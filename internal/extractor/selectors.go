// internal/extractor/selectors.go
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// textSelectors is the prioritized cascade for post body text. LinkedIn has
// shipped several generations of feed markup; the list is ordered newest to
// oldest and the first non-empty match wins.
var textSelectors = []string{
	".feed-shared-update-v2__description .break-words",
	".feed-shared-update-v2__description",
	".feed-shared-inline-show-more-text",
	".update-components-text",
	".attributed-text-segment-list__content",
	".feed-shared-text",
	"article .break-words",
	"[data-test-id='main-feed-activity-card__commentary']",
	"article p",
}

// imageSelectors locate candidate post imagery. All matches are collected
// and filtered through the classifier, so broad selectors are safe here.
var imageSelectors = []string{
	".feed-shared-image img",
	".update-components-image img",
	".feed-shared-carousel img",
	".ivm-view-attr__img-wrapper img",
	"article img",
	"img[src*='media.licdn.com']",
	"img[data-delayed-url]",
}

// videoSelectors locate native video elements and their nested sources.
var videoSelectors = []string{
	"video",
	"video source",
	".feed-shared-linkedin-video video",
	".update-components-linkedin-video video",
}

// metaTextFallbacks are page-level descriptive metadata consulted when no
// text selector matches: social preview description, generic description,
// then the page title.
var metaTextFallbacks = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:description"]`, "content"},
	{`meta[name="description"]`, "content"},
	{"title", ""},
}

// extractText runs the text selector cascade against a parsed document and
// falls back to page metadata when nothing matches.
func extractText(doc *goquery.Document) string {
	for _, selector := range textSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	for _, fallback := range metaTextFallbacks {
		sel := doc.Find(fallback.selector).First()
		if sel.Length() == 0 {
			continue
		}
		var text string
		if fallback.attr == "" {
			text = sel.Text()
		} else {
			text, _ = sel.Attr(fallback.attr)
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

// collectImages runs every image selector, classifies each candidate, and
// feeds survivors to the collector. Duplicate matches across overlapping
// selectors collapse in the collector.
func collectImages(doc *goquery.Document, col *Collector) {
	for _, selector := range imageSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			src, ok := s.Attr("src")
			if !ok || src == "" {
				// Lazy-loaded images park the real URL in a data attribute.
				src, _ = s.Attr("data-delayed-url")
			}
			if src == "" {
				return
			}
			cctx := ClassifyContext{
				AltText:        s.AttrOr("alt", ""),
				ContainerClass: parentClasses(s),
				Source:         SourceImgTag,
			}
			if kind, ok := Classify(src, cctx); ok && kind == KindImage {
				col.AddImage(src, cctx.AltText)
			}
		})
	}
}

// collectVideos extracts a playable source URL from native video elements,
// preferring the element's own src over nested source tags.
func collectVideos(doc *goquery.Document, col *Collector) {
	for _, selector := range videoSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			src, ok := s.Attr("src")
			if !ok || src == "" {
				src, _ = s.Find("source").First().Attr("src")
			}
			if src == "" {
				return
			}
			cctx := ClassifyContext{
				ContainerClass: parentClasses(s),
				Source:         SourceVideoTag,
			}
			if kind, ok := Classify(src, cctx); ok && kind == KindVideo {
				title := strings.TrimSpace(s.AttrOr("title", ""))
				col.AddVideo(src, title, s.AttrOr("duration", ""))
			}
		})
	}
}

// collectDocuments scans anchors whose href carries a document extension.
func collectDocuments(doc *goquery.Document, col *Collector) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || !documentExtRegex.MatchString(href) {
			return
		}
		cctx := ClassifyContext{
			ContainerClass: parentClasses(s),
			Source:         SourceAnchorHref,
		}
		if kind, ok := Classify(href, cctx); ok && kind == KindDocument {
			col.AddDocument(href, strings.TrimSpace(s.Text()), "")
		}
	})
}

// collectFromDocument applies the full selector battery to a parsed page
// and returns the text the cascade located (possibly empty).
func collectFromDocument(doc *goquery.Document, col *Collector) string {
	text := extractText(doc)
	collectImages(doc, col)
	collectVideos(doc, col)
	collectDocuments(doc, col)
	return text
}

// parentClasses joins the class attributes of the element and its parent,
// giving the classifier the surrounding markup context.
func parentClasses(s *goquery.Selection) string {
	own := s.AttrOr("class", "")
	parent := s.Parent().AttrOr("class", "")
	return strings.TrimSpace(own + " " + parent)
}
