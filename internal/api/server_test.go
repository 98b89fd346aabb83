package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"goverdict/app"
	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/internal/metrics"
	"goverdict/internal/viability"
	"goverdict/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRepository keeps verdicts in memory
type memRepository struct {
	mu      sync.Mutex
	records []*models.VerdictRecord
}

func (r *memRepository) Save(_ context.Context, record *models.VerdictRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memRepository) Get(_ context.Context, id core.VerdictID) (*models.VerdictRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, core.ErrVerdictNotFound
}

func (r *memRepository) ListByJob(_ context.Context, jobID string, limit int) ([]*models.VerdictRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.VerdictRecord{}
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].JobID == jobID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

type testEnv struct {
	server *Server
	repo   *memRepository
	reg    *prometheus.Registry
	hub    *SSEHub
}

func newTestEnv(t *testing.T, checks map[string]HealthCheck) *testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	repo := &memRepository{}
	hub := newSSEHub(50 * time.Millisecond)
	t.Cleanup(hub.Close)

	svc, err := app.NewVerdictService(viability.NewDefaultEngine(),
		app.WithRepository(repo),
		app.WithMetrics(rec),
		app.WithPublisher(NewSSEVerdictPublisher(hub)),
		app.WithBatchLimits(app.BatchLimits{Concurrency: 2, MaxSize: 3}),
	)
	require.NoError(t, err)

	server := NewServer(svc, ServerOptions{Gatherer: reg, Metrics: rec, Hub: hub, HealthChecks: checks})
	return &testEnv{server: server, repo: repo, reg: reg, hub: hub}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func mvpBody(jobID string) gin.H {
	return gin.H{
		"job_id": jobID,
		"pain":   gin.H{"overall_score": 8, "confidence": "high", "total_signals": 120},
		"competition": gin.H{
			"score": 7, "confidence": "high", "competitor_count": 6,
			"has_free_alternatives": true, "market_maturity": "mature",
		},
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestCreateMVPVerdict(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("job-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec models.VerdictRecord
	decode(t, w, &rec)
	assert.Equal(t, models.ModeMVP, rec.Mode)
	assert.Equal(t, 5.0, rec.Verdict.OverallScore)
	assert.Equal(t, verdict.TierMixed, rec.Verdict.Verdict)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Len(t, env.repo.records, 1)
}

func TestCreateVerdict_FullInput(t *testing.T) {
	env := newTestEnv(t, nil)

	body := gin.H{
		"job_id": "job-2",
		"input": gin.H{
			"pain":   gin.H{"overall_score": 9, "confidence": "high", "total_signals": 15},
			"market": gin.H{"score": 6, "confidence": "medium", "penetration_required": 60, "achievability": "unlikely"},
		},
	}
	w := env.do(http.MethodPost, "/api/v1/verdicts", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var rec models.VerdictRecord
	decode(t, w, &rec)
	assert.Equal(t, models.ModeFull, rec.Mode)
	assert.Equal(t, verdict.TierWeak, rec.Verdict.Verdict)
	assert.True(t, rec.Verdict.HasRedFlag(viability.FlagUnrealisticPenetration))
}

func TestCreateVerdict_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/verdicts", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/verdicts", gin.H{"mode": "legacy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestCreateVerdict_NoDimensions(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/verdicts", gin.H{"input": gin.H{}})
	require.Equal(t, http.StatusCreated, w.Code)

	var rec models.VerdictRecord
	decode(t, w, &rec)
	assert.Equal(t, verdict.TierInsufficient, rec.Verdict.Verdict)
}

func TestCreateBatch(t *testing.T) {
	env := newTestEnv(t, nil)

	reqs := []gin.H{
		{"mode": "mvp", "input": mvpBody("")},
		{"mode": "nope"},
	}
	w := env.do(http.MethodPost, "/api/v1/verdicts/batch", gin.H{"requests": reqs})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.BatchResult
	decode(t, w, &result)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.NotEmpty(t, result.Items[1].Error)

	w = env.do(http.MethodPost, "/api/v1/verdicts/batch", gin.H{"requests": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodPost, "/api/v1/verdicts/batch", gin.H{"requests": []gin.H{{}, {}, {}, {}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVerdict(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("job-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.VerdictRecord
	decode(t, w, &created)

	w = env.do(http.MethodGet, "/api/v1/verdicts/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.VerdictRecord
	decode(t, w, &got)
	assert.Equal(t, created.ID, got.ID)

	w = env.do(http.MethodGet, "/api/v1/verdicts/"+core.NewVerdictID().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/verdicts/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListJobVerdicts(t *testing.T) {
	env := newTestEnv(t, nil)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("job-9")).Code)
	}
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("other")).Code)

	w := env.do(http.MethodGet, "/api/v1/jobs/job-9/verdicts?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		JobID    string                  `json:"job_id"`
		Count    int                     `json:"count"`
		Verdicts []*models.VerdictRecord `json:"verdicts"`
	}
	decode(t, w, &body)
	assert.Equal(t, "job-9", body.JobID)
	assert.Equal(t, 2, body.Count)

	w = env.do(http.MethodGet, "/api/v1/jobs/job-9/verdicts?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConfig(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ConfigHash string           `json:"config_hash"`
		Thresholds viability.Config `json:"thresholds"`
	}
	decode(t, w, &body)
	assert.Len(t, body.ConfigHash, 64)
	assert.Equal(t, viability.DefaultConfig().Tiers, body.Thresholds.Tiers)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})
	w := env.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"postgres":"ok"`)

	env = newTestEnv(t, map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})
	w = env.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/v1/verdicts/mvp", mvpBody("job-1")).Code)

	w := env.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `goverdict_verdicts_total{mode="mvp",tier="mixed"} 1`), body)
	assert.Contains(t, body, `goverdict_http_requests_total{method="POST",route="/api/v1/verdicts/mvp",status="201"} 1`)
}
