// internal/monitoring/health.go
package monitoring

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"
)

// HealthResponse is the body returned by the health endpoint.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	Uptime     string    `json:"uptime,omitempty"`
	Goroutines int       `json:"goroutines,omitempty"`
}

// HealthHandler reports service liveness.
type HealthHandler struct {
	startedAt time.Time
	detailed  bool
}

// NewHealthHandler creates a health handler. When detailed is set the
// response carries uptime and runtime information in addition to the
// status and timestamp.
func NewHealthHandler(detailed bool) *HealthHandler {
	return &HealthHandler{
		startedAt: time.Now(),
		detailed:  detailed,
	}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}
	if h.detailed {
		resp.Uptime = time.Since(h.startedAt).Round(time.Second).String()
		resp.Goroutines = runtime.NumGoroutine()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
