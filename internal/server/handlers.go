// internal/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/archive"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/export"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/extractor"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
)

// handleExtract runs the extraction pipeline for a post URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractor.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	content, strategy, err := s.pipeline.Extract(r.Context(), req)
	if err != nil {
		if errors.Is(err, extractor.ErrInvalidInput) {
			s.recordExtraction("invalid_input")
			writeError(w, http.StatusBadRequest, "Invalid request data", err.Error())
			return
		}
		var allFailed *extractor.AllFailedError
		if errors.As(err, &allFailed) {
			s.logger.Error().Str("url", req.URL).Err(err).Msg("all extraction strategies failed")
		}
		s.recordExtraction("failure")
		writeError(w, http.StatusInternalServerError, "Failed to extract post content", "")
		return
	}

	s.recordExtraction("success")
	if s.metrics != nil {
		s.metrics.RecordMedia(len(content.Images), len(content.Videos), len(content.Documents))
	}
	s.archiveResult(r, req.URL, strategy, content)

	writeJSON(w, http.StatusOK, content)
}

// handleExport renders a previously extracted result's media inventory in
// the requested format (json, csv, or xlsx).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid export format", err.Error())
		return
	}

	var content extractor.ExtractedContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}
	if err := content.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid content payload", err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="media-inventory.`+string(format)+`"`)
	if err := export.Write(w, format, &content); err != nil {
		s.logger.Error().Err(err).Msg("export failed")
	}
}

// handleRecentExtractions lists recently archived extractions.
func (s *Server) handleRecentExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Extraction archive is not configured", "")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			writeError(w, http.StatusBadRequest, "Invalid limit", "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("archive query failed")
		writeError(w, http.StatusInternalServerError, "Failed to read extraction archive", "")
		return
	}
	if records == nil {
		records = []archive.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// handleProxy streams a remote media asset back to the caller, working
// around origins that block direct cross-origin fetches from the browser.
// The upstream content type and length are preserved; upstream non-2xx
// statuses are mirrored with an empty body.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	target, err := url.Parse(rawURL)
	if err != nil || !target.IsAbs() || (target.Scheme != "http" && target.Scheme != "https") {
		writeError(w, http.StatusBadRequest, "url must be an absolute HTTP(S) URL", "")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid url", err.Error())
		return
	}
	for key, value := range httpclient.BrowserHeaders(proxyUserAgent(), "https://www.linkedin.com/") {
		req.Header.Set(key, value)
	}

	resp, err := s.proxyClient.Do(req)
	if err != nil {
		s.logger.Warn().Str("url", target.String()).Err(err).Msg("proxy fetch failed")
		if s.metrics != nil {
			s.metrics.RecordProxy(http.StatusBadGateway)
		}
		writeError(w, http.StatusBadGateway, "Failed to fetch remote resource", "")
		return
	}
	defer resp.Body.Close()

	if s.metrics != nil {
		s.metrics.RecordProxy(resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		w.WriteHeader(resp.StatusCode)
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		w.Header().Set("Content-Length", cl)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Debug().Err(err).Msg("proxy stream interrupted")
	}
}

// archiveResult persists a successful extraction. Archive failures are
// logged and counted but never surfaced to the caller.
func (s *Server) archiveResult(r *http.Request, postURL, strategy string, content *extractor.ExtractedContent) {
	if s.store == nil || strategy == "demo" {
		return
	}

	payload, err := json.Marshal(content)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to marshal archive payload")
		return
	}

	record := &archive.Record{
		ID:            uuid.NewString(),
		URL:           postURL,
		Strategy:      strategy,
		ImageCount:    len(content.Images),
		VideoCount:    len(content.Videos),
		DocumentCount: len(content.Documents),
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}

	err = s.store.Save(r.Context(), record)
	if s.metrics != nil {
		s.metrics.RecordArchiveWrite(err)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("url", postURL).Msg("failed to archive extraction")
	}
}

func (s *Server) recordExtraction(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordExtraction(outcome)
	}
}
