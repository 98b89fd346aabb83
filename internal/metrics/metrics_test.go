package metrics

import (
	"testing"
	"time"

	"goverdict/domain/verdict"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveVerdict(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	v := &verdict.ViabilityVerdict{
		OverallScore: 5,
		Verdict:      verdict.TierMixed,
		RedFlags: []verdict.RedFlag{
			{Severity: verdict.SeverityHigh, Title: "No Purchase Intent"},
			{Severity: verdict.SeverityHigh, Title: "Saturated Market"},
		},
		Adjustments: []verdict.Adjustment{{Rule: "wtp_kill_switch"}, {Rule: "competition_saturation_cap"}},
	}
	r.ObserveVerdict(v, "mvp")
	r.ObserveVerdict(v, "mvp")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.verdicts.WithLabelValues("mixed", "mvp")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.redFlags.WithLabelValues("Saturated Market", "HIGH")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.adjustments.WithLabelValues("wtp_kill_switch")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.overallScore))
}

func TestRecorder_CacheAndErrors(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.CacheHit()
	r.CacheMiss()
	r.CacheMiss()
	r.Error("evaluate", "DATABASE_ERROR")
	r.ObserveLatency("engine", 2*time.Millisecond)
	r.ObserveBatch(12)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("evaluate", "DATABASE_ERROR")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveVerdict(&verdict.ViabilityVerdict{}, "full")
		r.ObserveLatency("cache", time.Second)
		r.CacheHit()
		r.CacheMiss()
		r.Error("get", "NOT_FOUND")
		r.ObserveBatch(3)
	})
}

func TestRecorder_ObserveRequest(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveRequest("GET", "/api/v1/verdicts/:id", 404)
	r.ObserveRequest("GET", "/api/v1/verdicts/:id", 404)
	r.ObserveRequest("POST", "/api/v1/verdicts", 201)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/v1/verdicts/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("POST", "/api/v1/verdicts", "201")))
}
