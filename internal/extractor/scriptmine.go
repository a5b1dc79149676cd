// internal/extractor/scriptmine.go
package extractor

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/compliance"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
)

// cdnOrigin is prefixed onto partial CDN paths recovered from script state.
const cdnOrigin = "https://media.licdn.com"

var (
	// Pass 1: key/value shapes the embedded page state is known to use.
	imageURLKeyRegex  = regexp.MustCompile(`"imageUrl"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	mediaURLKeyRegex  = regexp.MustCompile(`"url"\s*:\s*"((?:[^"\\]|\\.)*(?:dms\\?/image|media\.licdn|feedshare)(?:[^"\\]|\\.)*)"`)
	imageArrayRegex   = regexp.MustCompile(`"images"\s*:\s*\[([^\]]*)\]`)
	mediaArrayRegex   = regexp.MustCompile(`"media"\s*:\s*\[([^\]]*)\]`)
	cdnURLRegex       = regexp.MustCompile(`https:\\?/\\?/media\.licdn\.com\\?/[^"'\s<>]+`)
	quotedStringRegex = regexp.MustCompile(`"((?:[^"\\]|\\.)+)"`)

	// Pass 2: bare digital-media asset identifiers. LinkedIn asset IDs are
	// fixed-prefix alphanumeric tokens that appear in script state even when
	// no URL for them is embedded directly.
	assetIDRegex = regexp.MustCompile(`\b[CD][45][A-E]\d{2}AQ[A-Za-z0-9_-]{10,}\b`)

	// Pass 4/5: bare URLs in leftover script text.
	bareMediaURLRegex = regexp.MustCompile(`https://[^\s"'<>\\]+`)
	videoURLKeyRegex  = regexp.MustCompile(`"videoUrl"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	bareMP4URLRegex   = regexp.MustCompile(`https://[^\s"'<>\\]*\.mp4[^\s"'<>\\]*`)

	unicodeEscapeRegex = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
)

// assetPathTemplates reconstruct candidate image URLs from a bare asset ID.
// Multiple resolution variants are emitted because carousel posts publish
// several renditions per asset and only some resolve.
var assetPathTemplates = []string{
	cdnOrigin + "/dms/image/v2/%ID%/feedshare-shrink_2048_1536/0",
	cdnOrigin + "/dms/image/%ID%/feedshare-shrink_800/0",
}

// mediaPathTokens gate the bare-URL pass: a plain https URL is only a
// candidate when it carries one of these.
var mediaPathTokens = []string{"dms/image", "media.licdn", "feedshare", "dms/playlist"}

// ScriptMineStrategy treats the page's inline script blocks as unstructured
// text and regex-mines them for media URLs and asset identifiers. Client-
// rendered pages embed the real post data as inline JSON state even when
// the top-level DOM is a skeleton, so this recovers media the DOM-based
// strategies miss, especially multi-image carousel posts.
type ScriptMineStrategy struct {
	client *httpclient.Client
	robots *compliance.Checker
	logger zerolog.Logger
}

// NewScriptMineStrategy creates the script-payload mining strategy. robots
// may be nil when compliance checking is disabled.
func NewScriptMineStrategy(client *httpclient.Client, robots *compliance.Checker, logger zerolog.Logger) *ScriptMineStrategy {
	return &ScriptMineStrategy{
		client: client,
		robots: robots,
		logger: logger.With().Str("strategy", "script-mining").Logger(),
	}
}

// Name implements Strategy.
func (s *ScriptMineStrategy) Name() string { return "script-mining" }

// Attempt implements Strategy.
func (s *ScriptMineStrategy) Attempt(ctx context.Context, postURL string) (*ExtractedContent, error) {
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

	content := s.Mine(doc)

	s.logger.Debug().
		Int("images", len(content.Images)).
		Int("videos", len(content.Videos)).
		Msg("script mining complete")

	return content, nil
}

// Mine runs the full mining pass battery over a parsed document. It is
// split from Attempt so the rendered page of another strategy could be
// mined as well.
func (s *ScriptMineStrategy) Mine(doc *goquery.Document) *ExtractedContent {
	var plainScripts []string
	var ldJSONBlocks []string
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		body := sel.Text()
		if body == "" {
			return
		}
		if strings.EqualFold(sel.AttrOr("type", ""), "application/ld+json") {
			ldJSONBlocks = append(ldJSONBlocks, body)
			return
		}
		plainScripts = append(plainScripts, body)
	})
	scriptText := strings.Join(plainScripts, "\n")

	col := NewCollector()

	// Pass 1: known key/value and array shapes.
	s.mineKeyValuePatterns(scriptText, col)

	// Pass 2: reconstruct URLs from bare asset identifiers.
	s.mineAssetIDs(scriptText, col)

	// Pass 3: structured-data blocks.
	postText := s.mineStructuredData(ldJSONBlocks, col)

	// Pass 4: bare URLs in whatever script text remains unmatched.
	s.mineBareURLs(scriptText, col)

	// Pass 5: video key/value and bare .mp4 shapes.
	s.mineVideos(scriptText, col)

	if postText == "" {
		// Script state rarely carries the post body in a recognizable
		// shape; page metadata is the reliable fallback here.
		postText = func() string {
			for _, fallback := range metaTextFallbacks {
				sel := doc.Find(fallback.selector).First()
				if sel.Length() == 0 {
					continue
				}
				if fallback.attr == "" {
					return strings.TrimSpace(sel.Text())
				}
				v, _ := sel.Attr(fallback.attr)
				return strings.TrimSpace(v)
			}
			return ""
		}()
	}

	content := NewExtractedContent()
	content.Text = TextOrPlaceholder(postText)
	col.FillContent(content)
	return content
}

// mineKeyValuePatterns runs the pass-1 regex battery. Array-valued matches
// are further split on quoted-string boundaries.
func (s *ScriptMineStrategy) mineKeyValuePatterns(scriptText string, col *Collector) {
	for _, re := range []*regexp.Regexp{imageURLKeyRegex, mediaURLKeyRegex} {
		for _, match := range re.FindAllStringSubmatch(scriptText, -1) {
			s.acceptImageCandidate(match[1], col)
		}
	}

	for _, re := range []*regexp.Regexp{imageArrayRegex, mediaArrayRegex} {
		for _, match := range re.FindAllStringSubmatch(scriptText, -1) {
			for _, quoted := range quotedStringRegex.FindAllStringSubmatch(match[1], -1) {
				s.acceptImageCandidate(quoted[1], col)
			}
		}
	}

	for _, match := range cdnURLRegex.FindAllString(scriptText, -1) {
		s.acceptImageCandidate(match, col)
	}
}

// mineAssetIDs synthesizes candidate URLs for every bare asset identifier
// found in script state, one per known path template.
func (s *ScriptMineStrategy) mineAssetIDs(scriptText string, col *Collector) {
	seen := map[string]bool{}
	for _, id := range assetIDRegex.FindAllString(scriptText, -1) {
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, template := range assetPathTemplates {
			s.acceptImageCandidate(strings.ReplaceAll(template, "%ID%", id), col)
		}
	}
}

// mineStructuredData parses each ld+json block and walks every key/value
// pair with an explicit worklist, bounding stack depth on adversarial
// input. A malformed block is skipped, never fatal. Returns any post text
// the blocks carried.
func (s *ScriptMineStrategy) mineStructuredData(blocks []string, col *Collector) string {
	var postText string
	for _, block := range blocks {
		var root interface{}
		if err := json.Unmarshal([]byte(block), &root); err != nil {
			s.logger.Debug().Err(err).Msg("skipping malformed structured-data block")
			continue
		}

		type frame struct {
			key   string
			value interface{}
		}
		stack := []frame{{value: root}}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch v := current.value.(type) {
			case map[string]interface{}:
				for key, value := range v {
					stack = append(stack, frame{key: key, value: value})
				}
			case []interface{}:
				// Pushed in reverse so the LIFO pop visits elements in
				// document order, keeping filename numbering stable.
				for i := len(v) - 1; i >= 0; i-- {
					stack = append(stack, frame{key: current.key, value: v[i]})
				}
			case string:
				lowerKey := strings.ToLower(current.key)
				if postText == "" && isTextKey(lowerKey) {
					postText = v
				}
				if isMediaKey(lowerKey) {
					s.acceptCandidate(v, SourceStructuredData, col)
				}
			}
		}
	}
	return postText
}

// mineBareURLs treats remaining script text as plain text, matching bare
// https URLs that carry a media path token.
func (s *ScriptMineStrategy) mineBareURLs(scriptText string, col *Collector) {
	for _, match := range bareMediaURLRegex.FindAllString(scriptText, -1) {
		if !containsAny(strings.ToLower(match), mediaPathTokens) {
			continue
		}
		s.acceptCandidate(match, SourceScriptPayload, col)
	}
}

// mineVideos mines video URLs via their key/value shape and bare .mp4 URLs.
func (s *ScriptMineStrategy) mineVideos(scriptText string, col *Collector) {
	for _, match := range videoURLKeyRegex.FindAllStringSubmatch(scriptText, -1) {
		candidate := normalizeCandidate(match[1])
		if kind, ok := Classify(candidate, ClassifyContext{Source: SourceScriptPayload}); ok && kind == KindVideo {
			col.AddVideo(candidate, "", "")
		}
	}
	for _, match := range bareMP4URLRegex.FindAllString(scriptText, -1) {
		candidate := normalizeCandidate(match)
		if kind, ok := Classify(candidate, ClassifyContext{Source: SourceScriptPayload}); ok && kind == KindVideo {
			col.AddVideo(candidate, "", "")
		}
	}
}

// acceptImageCandidate normalizes a mined candidate and, when the
// classifier accepts it as an image, hands it to the collector.
func (s *ScriptMineStrategy) acceptImageCandidate(raw string, col *Collector) {
	candidate := normalizeCandidate(raw)
	if kind, ok := Classify(candidate, ClassifyContext{Source: SourceScriptPayload}); ok && kind == KindImage {
		col.AddImage(candidate, "")
	}
}

// acceptCandidate routes a mined candidate of any kind through the
// classifier and collector.
func (s *ScriptMineStrategy) acceptCandidate(raw string, source SourceHint, col *Collector) {
	candidate := normalizeCandidate(raw)
	kind, ok := Classify(candidate, ClassifyContext{Source: source})
	if !ok {
		return
	}
	col.Add(kind, candidate, ClassifyContext{Source: source})
}

// normalizeCandidate decodes unicode escapes, unescapes slashes and quotes,
// trims trailing punctuation, and roots partial CDN paths at the CDN
// origin.
func normalizeCandidate(raw string) string {
	candidate := unicodeEscapeRegex.ReplaceAllStringFunc(raw, func(esc string) string {
		code, err := strconv.ParseUint(esc[2:], 16, 32)
		if err != nil {
			return esc
		}
		return string(rune(code))
	})
	candidate = strings.ReplaceAll(candidate, `\/`, "/")
	candidate = strings.ReplaceAll(candidate, `\"`, `"`)
	candidate = strings.Trim(candidate, `"',;)`)
	candidate = strings.TrimSpace(candidate)

	if strings.HasPrefix(candidate, "/") {
		candidate = cdnOrigin + candidate
	}
	return candidate
}

// isMediaKey reports whether a structured-data key name suggests its string
// value is a media URL.
func isMediaKey(lowerKey string) bool {
	for _, token := range []string{"image", "media", "url", "thumbnail", "contenturl"} {
		if strings.Contains(lowerKey, token) {
			return true
		}
	}
	return false
}

// isTextKey reports whether a structured-data key name suggests post text.
func isTextKey(lowerKey string) bool {
	switch lowerKey {
	case "articlebody", "text", "description", "headline", "commentary":
		return true
	}
	return false
}
