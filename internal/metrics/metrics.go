package metrics

import (
	"strconv"
	"time"

	"goverdict/domain/verdict"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the verdict service's Prometheus collectors. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	verdicts     *prometheus.CounterVec
	redFlags     *prometheus.CounterVec
	adjustments  *prometheus.CounterVec
	overallScore prometheus.Histogram
	latency      *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	batchSize    prometheus.Histogram
	httpRequests *prometheus.CounterVec
}

// NewRecorder registers the collectors on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_verdicts_total",
			Help: "Verdicts computed by tier and mode",
		}, []string{"tier", "mode"}),

		redFlags: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_red_flags_total",
			Help: "Red flags raised by title and severity",
		}, []string{"title", "severity"}),

		adjustments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_rule_adjustments_total",
			Help: "Score caps applied by rule",
		}, []string{"rule"}),

		overallScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goverdict_overall_score",
			Help:    "Distribution of final verdict scores",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),

		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "goverdict_evaluation_duration_seconds",
			Help:    "Time to produce a verdict, including cache and storage",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"source"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_cache_lookups_total",
			Help: "Verdict cache lookups by result",
		}, []string{"result"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_errors_total",
			Help: "Evaluation errors by operation and code",
		}, []string{"operation", "code"}),

		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goverdict_batch_size",
			Help:    "Requests per batch evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "goverdict_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveVerdict records a freshly computed verdict
func (r *Recorder) ObserveVerdict(v *verdict.ViabilityVerdict, mode string) {
	if r == nil || v == nil {
		return
	}
	r.verdicts.WithLabelValues(string(v.Verdict), mode).Inc()
	r.overallScore.Observe(v.OverallScore)
	for _, f := range v.RedFlags {
		r.redFlags.WithLabelValues(f.Title, string(f.Severity)).Inc()
	}
	for _, a := range v.Adjustments {
		r.adjustments.WithLabelValues(a.Rule).Inc()
	}
}

// ObserveLatency records how long an evaluation took. source is "engine"
// or "cache".
func (r *Recorder) ObserveLatency(source string, d time.Duration) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(source).Observe(d.Seconds())
}

// CacheHit counts a cache hit
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a cache miss
func (r *Recorder) CacheMiss() {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// Error counts a failed operation
func (r *Recorder) Error(operation, code string) {
	if r == nil {
		return
	}
	r.errorsTotal.WithLabelValues(operation, code).Inc()
}

// ObserveBatch records the size of a batch request
func (r *Recorder) ObserveBatch(size int) {
	if r == nil {
		return
	}
	r.batchSize.Observe(float64(size))
}

// ObserveRequest counts an HTTP request. route is the registered pattern,
// not the raw path.
func (r *Recorder) ObserveRequest(method, route string, status int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
