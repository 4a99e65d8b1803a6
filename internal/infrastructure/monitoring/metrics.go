package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sizeshop/backend/internal/detection"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Scan metrics
	ScansTotal           *prometheus.CounterVec
	ScanDuration         prometheus.Histogram
	MeasurementsDetected *prometheus.CounterVec
	StrategyCandidates   *prometheus.CounterVec
	HighlightsTotal      prometheus.Counter

	// Cache metrics
	CacheRequests *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors with a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers the collectors with reg and serves from gatherer
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizeshop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sizeshop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sizeshop_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sizeshop_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizeshop_scans_total",
				Help: "Total number of page scans by selector profile",
			},
			[]string{"profile"},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sizeshop_scan_duration_seconds",
				Help:    "Time spent loading and scanning a page",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		MeasurementsDetected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizeshop_measurements_detected_total",
				Help: "Total number of measurements returned by scans",
			},
			[]string{"type"},
		),
		StrategyCandidates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizeshop_strategy_candidates_total",
				Help: "Candidates found per extraction strategy before merging",
			},
			[]string{"strategy"},
		),
		HighlightsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sizeshop_highlights_total",
				Help: "Total number of highlight marks added",
			},
		),

		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizeshop_cache_requests_total",
				Help: "Scan cache lookups by result",
			},
			[]string{"result"},
		),

		gatherer: gatherer,
	}
}

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordScan records one completed scan from its detection report
func (m *Metrics) RecordScan(report detection.Report, duration time.Duration) {
	m.ScansTotal.WithLabelValues(report.Profile).Inc()
	m.ScanDuration.Observe(duration.Seconds())

	m.StrategyCandidates.WithLabelValues("site").Add(float64(report.SiteCount))
	m.StrategyCandidates.WithLabelValues("table").Add(float64(report.TableCount))
	m.StrategyCandidates.WithLabelValues("page").Add(float64(report.PageCount))

	for _, measurement := range report.Measurements {
		m.MeasurementsDetected.WithLabelValues(string(measurement.Type)).Inc()
	}
}

// RecordHighlights records marks added by one highlight call
func (m *Metrics) RecordHighlights(count int) {
	m.HighlightsTotal.Add(float64(count))
}

// RecordCacheLookup records a cache hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}

// Handler serves the metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
