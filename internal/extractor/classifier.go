// internal/extractor/classifier.go
package extractor

import (
	"regexp"
	"strings"
)

// MediaKind identifies the variant of a classified media item.
type MediaKind string

const (
	KindImage    MediaKind = "image"
	KindVideo    MediaKind = "video"
	KindDocument MediaKind = "document"
)

// SourceHint describes where a candidate URL was discovered, which informs
// the presumed media kind.
type SourceHint string

const (
	SourceImgTag         SourceHint = "img-tag"
	SourceVideoTag       SourceHint = "video-tag"
	SourceAnchorHref     SourceHint = "anchor-href"
	SourceScriptPayload  SourceHint = "script-payload"
	SourceOGMeta         SourceHint = "og-meta"
	SourceStructuredData SourceHint = "structured-data"
)

// ClassifyContext carries the markup surroundings of a candidate URL.
type ClassifyContext struct {
	AltText        string
	ContainerClass string
	Source         SourceHint
}

// minMediaURLLength rejects truncated or placeholder tokens that survive
// the pattern checks but cannot be real CDN URLs.
const minMediaURLLength = 30

// urlBlocklist marks chrome/UI assets that LinkedIn interleaves with post
// content: profile photos, logos, avatars, icons, emoji, and carousel or
// background chrome. Any single hit rejects the candidate.
var urlBlocklist = []string{
	"profile-displayphoto",
	"profile-framedphoto",
	"company-logo",
	"organization-logo",
	"logo",
	"avatar",
	"icon",
	"emoji",
	"ghost-person",
	"background-image",
	"background_",
	"slideshow",
	"carousel-control",
	"/in/",
	"static.licdn.com/aero",
	"sprite",
}

// contextBlocklist is matched (case-insensitive substring) against alt text
// and container classes.
var contextBlocklist = []string{"profile", "logo", "avatar"}

// imageAllowlist tokens mark genuine post imagery on the LinkedIn CDN.
var imageAllowlist = []string{
	"media.licdn.com",
	"dms/image",
	"feedshare",
	"/image/",
	"media",
	"photo",
}

// videoAllowlist tokens mark post video streams.
var videoAllowlist = []string{
	"dms/playlist",
	"/video/",
	"videoplayback",
	"video",
	".mp4",
	".m3u8",
}

// documentExtRegex matches document attachments by href extension.
var documentExtRegex = regexp.MustCompile(`(?i)\.(pdf|docx?|pptx?|xlsx?)(\?|#|$)`)

// Classify decides whether a candidate URL is genuine post content and, if
// so, which media kind it belongs to. All checks are conjunctive: a single
// blocklist hit or a missing allowlist token rejects the candidate. This is
// deliberately strict because the source markup shares class names between
// content media and UI chrome.
func Classify(candidate string, cctx ClassifyContext) (MediaKind, bool) {
	candidate = strings.TrimSpace(candidate)
	lower := strings.ToLower(candidate)

	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", false
	}
	if len(candidate) < minMediaURLLength {
		return "", false
	}
	for _, token := range urlBlocklist {
		if strings.Contains(lower, token) {
			return "", false
		}
	}
	for _, token := range contextBlocklist {
		if containsFold(cctx.AltText, token) || containsFold(cctx.ContainerClass, token) {
			return "", false
		}
	}

	kind := presumeKind(lower, cctx.Source)
	switch kind {
	case KindDocument:
		if !documentExtRegex.MatchString(lower) {
			return "", false
		}
	case KindVideo:
		if !containsAny(lower, videoAllowlist) {
			return "", false
		}
	case KindImage:
		if !containsAny(lower, imageAllowlist) {
			return "", false
		}
	default:
		return "", false
	}

	return kind, true
}

// presumeKind infers the media kind from the discovery source and the URL
// shape. Anchor hrefs and script payloads carry mixed kinds, so the URL
// itself decides there.
func presumeKind(lowerURL string, source SourceHint) MediaKind {
	switch source {
	case SourceImgTag, SourceOGMeta:
		return KindImage
	case SourceVideoTag:
		return KindVideo
	}

	if documentExtRegex.MatchString(lowerURL) {
		return KindDocument
	}
	if strings.Contains(lowerURL, ".mp4") || strings.Contains(lowerURL, ".m3u8") ||
		strings.Contains(lowerURL, "dms/playlist") || strings.Contains(lowerURL, "videoplayback") {
		return KindVideo
	}
	return KindImage
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

func containsFold(s, token string) bool {
	return strings.Contains(strings.ToLower(s), token)
}

// DocumentTypeLabel returns a human-readable document type for a matched
// extension, mirroring the labels the download UI shows.
func DocumentTypeLabel(rawURL string) string {
	match := documentExtRegex.FindStringSubmatch(strings.ToLower(rawURL))
	if match == nil {
		return "Document"
	}
	switch match[1] {
	case "pdf":
		return "PDF Document"
	case "doc", "docx":
		return "Word Document"
	case "ppt", "pptx":
		return "PowerPoint Presentation"
	case "xls", "xlsx":
		return "Excel Spreadsheet"
	}
	return "Document"
}

// DocumentExtension returns the matched document extension without the dot,
// or "pdf" when the URL carries none.
func DocumentExtension(rawURL string) string {
	match := documentExtRegex.FindStringSubmatch(strings.ToLower(rawURL))
	if match == nil {
		return "pdf"
	}
	return match[1]
}
