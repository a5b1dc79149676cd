// internal/extractor/text.go
package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PlaceholderText is returned when no textual content could be located in
// the post by any selector or metadata fallback.
const PlaceholderText = "No text content could be extracted from this post."

var (
	trailingSpaceRegex = regexp.MustCompile(`[ \t]+\n`)
	excessNewlineRegex = regexp.MustCompile(`\n{3,}`)
	innerSpaceRegex    = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanText normalizes extracted post text: NFC unicode normalization,
// collapsed runs of spaces, at most one blank line between paragraphs.
// Newlines inside the post body are preserved because LinkedIn posts rely
// on them for structure.
func CleanText(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = innerSpaceRegex.ReplaceAllString(text, " ")
	text = trailingSpaceRegex.ReplaceAllString(text, "\n")
	text = excessNewlineRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// TextOrPlaceholder returns the cleaned text, or the fixed placeholder when
// cleaning leaves nothing.
func TextOrPlaceholder(text string) string {
	cleaned := CleanText(text)
	if cleaned == "" {
		return PlaceholderText
	}
	return cleaned
}
