package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Descriptor parsing metrics
	DescriptorFilesTotal      prometheus.Counter
	DeclarationsTotal         *prometheus.CounterVec
	UnresolvedReferencesTotal *prometheus.CounterVec
	MapEntryMissesTotal       prometheus.Counter
	ParseDuration             prometheus.Histogram

	// Rendering metrics
	PagesRenderedTotal *prometheus.CounterVec
	RenderDuration     prometheus.Histogram

	// HTTP metrics (serve)
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		DescriptorFilesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sabledocs_descriptor_files_total",
				Help: "Total number of descriptor files processed",
			},
		),
		DeclarationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sabledocs_declarations_total",
				Help: "Total number of declarations parsed",
			},
			[]string{"kind"},
		),
		UnresolvedReferencesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sabledocs_unresolved_references_total",
				Help: "Total number of type references without an owning package",
			},
			[]string{"kind"},
		),
		MapEntryMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sabledocs_map_entry_misses_total",
				Help: "Fields named like a map entry whose type is not a map entry message",
			},
		),
		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sabledocs_parse_duration_seconds",
				Help:    "Descriptor set parse duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
		),

		PagesRenderedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sabledocs_pages_rendered_total",
				Help: "Total number of pages rendered",
			},
			[]string{"page"},
		),
		RenderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sabledocs_render_duration_seconds",
				Help:    "Site render duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sabledocs_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sabledocs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(
		m.DescriptorFilesTotal,
		m.DeclarationsTotal,
		m.UnresolvedReferencesTotal,
		m.MapEntryMissesTotal,
		m.ParseDuration,
		m.PagesRenderedTotal,
		m.RenderDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// RecordDescriptorFile counts one processed descriptor file
func (m *Metrics) RecordDescriptorFile() {
	if m == nil {
		return
	}
	m.DescriptorFilesTotal.Inc()
}

// RecordDeclaration counts a parsed declaration of the given kind
func (m *Metrics) RecordDeclaration(kind string) {
	if m == nil {
		return
	}
	m.DeclarationsTotal.WithLabelValues(kind).Inc()
}

// RecordUnresolved counts a type reference left without a package link
func (m *Metrics) RecordUnresolved(kind string) {
	if m == nil {
		return
	}
	m.UnresolvedReferencesTotal.WithLabelValues(kind).Inc()
}

// RecordMapEntryMiss counts a field that looked like a map but was not one
func (m *Metrics) RecordMapEntryMiss() {
	if m == nil {
		return
	}
	m.MapEntryMissesTotal.Inc()
}

// ObserveParse records the duration of a full descriptor set parse
func (m *Metrics) ObserveParse(d time.Duration) {
	if m == nil {
		return
	}
	m.ParseDuration.Observe(d.Seconds())
}

// RecordPage counts one rendered page
func (m *Metrics) RecordPage(page string) {
	if m == nil {
		return
	}
	m.PagesRenderedTotal.WithLabelValues(page).Inc()
}

// ObserveRender records the duration of a full site render
func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes all metrics in the text exposition format, for node exporter textfile collection
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// HTTPMiddleware records request counts and latencies
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := routeLabel(r.URL.Path)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routeLabel keeps label cardinality bounded for static pages
func routeLabel(path string) string {
	switch path {
	case "/api/search", "/metrics", "/healthz", "/readyz":
		return path
	default:
		return "static"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
