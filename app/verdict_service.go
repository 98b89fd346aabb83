package app

import (
	"context"
	"fmt"
	"time"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/internal"
	"goverdict/internal/errors"
	"goverdict/internal/metrics"
	"goverdict/internal/viability"
	"goverdict/models"
	"goverdict/ports"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

var requestValidate = validator.New()

// BatchLimits bounds batch evaluation
type BatchLimits struct {
	Concurrency int
	MaxSize     int
}

// VerdictService scores research results and keeps the verdicts. The
// repository and cache are optional: without a repository verdicts are not
// stored, without a cache every request runs the engine.
type VerdictService struct {
	engine     *viability.Engine
	configHash core.ConfigHash
	repo       ports.VerdictRepository
	cache      ports.VerdictCache
	publisher  ports.VerdictPublisher
	metrics    *metrics.Recorder
	logger     *internal.Logger
	limits     BatchLimits
	now        func() time.Time
}

// Option configures a VerdictService
type Option func(*VerdictService)

func WithRepository(repo ports.VerdictRepository) Option {
	return func(s *VerdictService) { s.repo = repo }
}

func WithCache(cache ports.VerdictCache) Option {
	return func(s *VerdictService) { s.cache = cache }
}

// WithPublisher streams every recorded verdict that carries a job ID
func WithPublisher(p ports.VerdictPublisher) Option {
	return func(s *VerdictService) { s.publisher = p }
}

func WithMetrics(m *metrics.Recorder) Option {
	return func(s *VerdictService) { s.metrics = m }
}

func WithLogger(logger *internal.Logger) Option {
	return func(s *VerdictService) { s.logger = logger }
}

func WithBatchLimits(limits BatchLimits) Option {
	return func(s *VerdictService) { s.limits = limits }
}

// WithClock overrides the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(s *VerdictService) { s.now = now }
}

// NewVerdictService creates a verdict service around engine
func NewVerdictService(engine *viability.Engine, opts ...Option) (*VerdictService, error) {
	if engine == nil {
		return nil, errors.ConfigInvalid("verdict service requires an engine")
	}

	hash, err := core.ComputeConfigHash(engine.Config())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash engine thresholds")
	}

	s := &VerdictService{
		engine:     engine,
		configHash: hash,
		logger:     internal.DefaultLogger.WithComponent("verdict-service"),
		limits:     BatchLimits{Concurrency: 8, MaxSize: 500},
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limits.Concurrency < 1 {
		s.limits.Concurrency = 1
	}
	return s, nil
}

// Thresholds returns the threshold set verdicts are computed with
func (s *VerdictService) Thresholds() viability.Config {
	return s.engine.Config()
}

// ConfigHash identifies the active threshold set
func (s *VerdictService) ConfigHash() core.ConfigHash {
	return s.configHash
}

// Evaluate scores one request. A cached verdict for the same input and
// thresholds is reused but still recorded under a new ID for the job.
func (s *VerdictService) Evaluate(ctx context.Context, req models.EvaluationRequest) (*models.VerdictRecord, error) {
	start := time.Now()

	if err := requestValidate.Struct(req); err != nil {
		s.metrics.Error("evaluate", errors.CodeValidationError)
		return nil, errors.WithCode(errors.CodeValidationError, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
	}
	req = req.Normalized()

	fp, err := core.ComputeInputFingerprint(string(req.Mode), req.Input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fingerprint input")
	}

	record := &models.VerdictRecord{
		ID:          core.NewVerdictID(),
		JobID:       req.JobID,
		Mode:        req.Mode,
		Fingerprint: fp,
		ConfigHash:  s.configHash,
		Input:       req.Input,
		CreatedAt:   s.now(),
	}

	source := "engine"
	if cached := s.lookup(ctx, fp); cached != nil {
		record.Verdict = cached.Verdict
		record.Cached = true
		source = "cache"
	} else {
		record.Verdict = *s.calculate(req)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, record); err != nil {
			s.metrics.Error("evaluate", errors.GetCode(err))
			return nil, errors.Wrapf(err, "failed to store verdict %s", record.ID)
		}
	}

	if !record.Cached {
		s.store(ctx, record)
		s.metrics.ObserveVerdict(&record.Verdict, string(req.Mode))
	}
	s.metrics.ObserveLatency(source, time.Since(start))
	if s.publisher != nil && record.JobID != "" {
		s.publisher.PublishVerdict(record)
	}

	s.logger.Debug("verdict %s job=%q mode=%s fp=%s tier=%s score=%.1f source=%s",
		record.ID, record.JobID, record.Mode, core.Hash(fp).Short(),
		record.Verdict.Verdict, record.Verdict.OverallScore, source)
	return record, nil
}

func (s *VerdictService) calculate(req models.EvaluationRequest) *verdict.ViabilityVerdict {
	if req.Mode == models.ModeMVP {
		return s.engine.CalculateMVP(req.Input.Pain, req.Input.Competition)
	}
	return s.engine.Calculate(req.Input)
}

// lookup returns a cached verdict or nil. Cache failures degrade to a miss.
func (s *VerdictService) lookup(ctx context.Context, fp core.InputFingerprint) *models.VerdictRecord {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, fp, s.configHash)
	if err != nil {
		s.logger.Warn("verdict cache read failed, computing instead: %v", err)
		s.metrics.Error("cache_get", errors.GetCode(err))
		s.metrics.CacheMiss()
		return nil
	}
	if cached == nil {
		s.metrics.CacheMiss()
		return nil
	}
	s.metrics.CacheHit()
	return cached
}

func (s *VerdictService) store(ctx context.Context, record *models.VerdictRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warn("failed to cache verdict %s: %v", record.ID, err)
		s.metrics.Error("cache_set", errors.GetCode(err))
	}
}

// EvaluateBatch scores requests concurrently. Results keep request order;
// a failing request is reported in its item and does not fail the batch.
// Only cancellation of ctx aborts the whole batch.
func (s *VerdictService) EvaluateBatch(ctx context.Context, reqs []models.EvaluationRequest) (*models.BatchResult, error) {
	if len(reqs) == 0 {
		return nil, errors.WithCode(errors.CodeValidationError, core.ErrEmptyBatch)
	}
	if s.limits.MaxSize > 0 && len(reqs) > s.limits.MaxSize {
		return nil, errors.WithCode(errors.CodeValidationError,
			fmt.Errorf("%w: %d requests, limit %d", core.ErrBatchTooLarge, len(reqs), s.limits.MaxSize))
	}
	s.metrics.ObserveBatch(len(reqs))

	result := &models.BatchResult{
		ID:    core.NewBatchID(),
		Items: make([]models.BatchItemResult, len(reqs)),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.limits.Concurrency)
	for i := range reqs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			item := models.BatchItemResult{Index: i}
			record, err := s.Evaluate(gCtx, reqs[i])
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Record = record
			}
			result.Items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrapf(err, "batch %s cancelled", result.ID)
	}

	result.Summarize()
	s.logger.Info("batch %s: %d requests, %d succeeded, %d failed",
		result.ID, result.Summary.Total, result.Summary.Succeeded, result.Summary.Failed)
	return result, nil
}

// Get returns a stored verdict
func (s *VerdictService) Get(ctx context.Context, rawID string) (*models.VerdictRecord, error) {
	id, err := core.ParseVerdictID(rawID)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, core.NewNotFoundError("verdict", id.String())
	}
	return s.repo.Get(ctx, id)
}

// ListByJob returns a job's stored verdicts, newest first
func (s *VerdictService) ListByJob(ctx context.Context, rawJobID string, limit int) ([]*models.VerdictRecord, error) {
	jobID, err := core.ParseJobID(rawJobID)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return []*models.VerdictRecord{}, nil
	}
	return s.repo.ListByJob(ctx, jobID.String(), limit)
}
