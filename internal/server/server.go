// internal/server/server.go
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/archive"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/extractor"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/httpclient"
	"github.com/kkundanI/Linkedin-Post-Extractor-Website/internal/monitoring"
)

// Server wires the extraction pipeline and its collaborators into HTTP
// handlers.
type Server struct {
	pipeline    *extractor.Pipeline
	metrics     *monitoring.Metrics
	store       archive.Store
	proxyClient *http.Client
	logger      zerolog.Logger
}

// New creates a server. store may be nil when archiving is disabled;
// metrics may be nil in tests.
func New(pipeline *extractor.Pipeline, metrics *monitoring.Metrics, store archive.Store, logger zerolog.Logger) *Server {
	return &Server{
		pipeline:    pipeline,
		metrics:     metrics,
		store:       store,
		proxyClient: &http.Client{},
		logger:      logger.With().Str("component", "server").Logger(),
	}
}

// Routes builds the service router with the standard middleware chain.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/extract", s.handleExtract).Methods(http.MethodPost)
	r.HandleFunc("/export", s.handleExport).Methods(http.MethodPost)
	r.HandleFunc("/extractions", s.handleRecentExtractions).Methods(http.MethodGet)
	r.HandleFunc("/proxy", s.handleProxy).Methods(http.MethodGet)
	r.Handle("/health", monitoring.NewHealthHandler(true)).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	var handler http.Handler = r
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(s.logger, handler)
	return handler
}

// errorResponse is the shared error body shape.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// proxyUserAgent picks a browser user agent for proxied media fetches.
func proxyUserAgent() string {
	return httpclient.DefaultUserAgents()[0]
}
