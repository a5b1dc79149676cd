// internal/monitoring/monitoring_test.go
package monitoring

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// metrics is shared across tests: the collectors register against the
// process-global registry and must only be constructed once.
var metrics = NewMetrics("monitoring_test")

func TestMetricsExposition(t *testing.T) {
	metrics.RecordExtraction("success")
	metrics.StrategyAttempted("static-html", 120*time.Millisecond, nil)
	metrics.StrategyAttempted("rendered-dom", 50*time.Millisecond, errors.New("boom"))
	metrics.RecordMedia(3, 1, 0)
	metrics.RecordProxy(200)
	metrics.RecordArchiveWrite(nil)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	exposition := string(body)

	for _, want := range []string{
		`monitoring_test_extraction_requests_total{outcome="success"} 1`,
		`monitoring_test_strategy_attempts_total{result="success",strategy="static-html"} 1`,
		`monitoring_test_strategy_attempts_total{result="failure",strategy="rendered-dom"} 1`,
		`monitoring_test_media_items_extracted_total{kind="image"} 3`,
		`monitoring_test_proxy_requests_total{status="200"} 1`,
	} {
		if !strings.Contains(exposition, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("timestamp missing")
	}
	if resp.Goroutines == 0 {
		t.Error("detailed response missing goroutine count")
	}
}
