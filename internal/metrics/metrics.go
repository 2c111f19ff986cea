package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed.",
		},
	)

	RowsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_imported_total",
			Help: "Spreadsheet rows successfully imported as products.",
		},
	)
	RowsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_rejected_total",
			Help: "Spreadsheet rows rejected during import.",
		},
	)
	AssetsRegistered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_assets_registered_total",
			Help: "Image assets registered, by intake channel.",
		},
		[]string{"channel"},
	)
	AssetUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_asset_uploads_total",
			Help: "Image uploads to object storage, by outcome.",
		},
		[]string{"outcome"},
	)
	DescriptionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_descriptions_total",
			Help: "Product descriptions produced, by source.",
		},
		[]string{"source"},
	)
	PagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_pages_published_total",
			Help: "Product pages written to the content store.",
		},
	)
	PipelineFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_pipeline_failures_total",
			Help: "Products that failed during a generation run.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, r.URL.Path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
