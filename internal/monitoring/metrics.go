// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics manages the Prometheus metrics for the extraction service.
type Metrics struct {
	extractionRequests *prometheus.CounterVec
	strategyAttempts   *prometheus.CounterVec
	strategyDuration   *prometheus.HistogramVec
	mediaExtracted     *prometheus.CounterVec
	proxyRequests      *prometheus.CounterVec
	archiveWrites      *prometheus.CounterVec
}

// NewMetrics registers and returns the service metrics under the given
// namespace.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "post_extractor"
	}

	return &Metrics{
		extractionRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_requests_total",
				Help:      "Total extraction requests by outcome",
			},
			[]string{"outcome"},
		),
		strategyAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_attempts_total",
				Help:      "Strategy attempts by strategy and result",
			},
			[]string{"strategy", "result"},
		),
		strategyDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "strategy_duration_seconds",
				Help:      "Duration of strategy attempts",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"strategy"},
		),
		mediaExtracted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "media_items_extracted_total",
				Help:      "Media items extracted by kind",
			},
			[]string{"kind"},
		),
		proxyRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "proxy_requests_total",
				Help:      "Media proxy requests by upstream status",
			},
			[]string{"status"},
		),
		archiveWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "archive_writes_total",
				Help:      "Extraction archive writes by result",
			},
			[]string{"result"},
		),
	}
}

// StrategyAttempted implements the pipeline observer.
func (m *Metrics) StrategyAttempted(strategy string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.strategyAttempts.WithLabelValues(strategy, result).Inc()
	m.strategyDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordExtraction records the outcome of one extraction request.
func (m *Metrics) RecordExtraction(outcome string) {
	m.extractionRequests.WithLabelValues(outcome).Inc()
}

// RecordMedia records the media counts of a successful extraction.
func (m *Metrics) RecordMedia(images, videos, documents int) {
	m.mediaExtracted.WithLabelValues("image").Add(float64(images))
	m.mediaExtracted.WithLabelValues("video").Add(float64(videos))
	m.mediaExtracted.WithLabelValues("document").Add(float64(documents))
}

// RecordProxy records one proxied media fetch.
func (m *Metrics) RecordProxy(status int) {
	m.proxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

// RecordArchiveWrite records one archive store operation.
func (m *Metrics) RecordArchiveWrite(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.archiveWrites.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler exposing the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
