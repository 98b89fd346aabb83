package container

import (
	"context"
	"fmt"

	"goverdict/adapters/cache"
	"goverdict/adapters/postgres"
	"goverdict/app"
	"goverdict/domain/core"
	"goverdict/internal"
	"goverdict/internal/api"
	"goverdict/internal/config"
	"goverdict/internal/metrics"
	"goverdict/internal/viability"
	"goverdict/ports"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure. DB and Redis stay nil when not configured.
	DB    *sqlx.DB
	Redis *redis.Client

	// Observability
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder

	// Scoring
	Engine *viability.Engine

	// Storage
	VerdictRepo  *postgres.VerdictRepository
	VerdictCache ports.VerdictCache

	SSEHub         *api.SSEHub
	VerdictService *app.VerdictService

	logger *internal.Logger
}

// New creates a container with the engine and metrics ready. Storage is
// attached with InitWithDatabase and InitWithRedis before Build.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	engine, err := viability.NewEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create viability engine: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Container{
		Config:   cfg,
		Registry: reg,
		Metrics:  metrics.NewRecorder(reg),
		Engine:   engine,
		logger:   internal.DefaultLogger.WithComponent("container"),
	}, nil
}

// InitWithDatabase attaches the verdict repository
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.VerdictRepo = postgres.NewVerdictRepository(db)
	c.logger.Info("verdict repository initialized")
	return nil
}

// InitWithRedis connects the verdict cache when REDIS_URL is set
func (c *Container) InitWithRedis(ctx context.Context) error {
	if c.Config.Redis.URL == "" {
		c.logger.Info("REDIS_URL not set, verdict cache disabled")
		return nil
	}

	client, err := cache.NewClient(ctx, c.Config.Redis.URL)
	if err != nil {
		return err
	}

	c.Redis = client
	c.VerdictCache = cache.NewVerdictCache(client, c.Config.Redis.TTL, c.Config.Redis.KeyPrefix)
	c.logger.Info("verdict cache initialized (ttl %s)", c.Config.Redis.TTL)
	return nil
}

// Build creates the verdict service from whatever has been attached
func (c *Container) Build() (*app.VerdictService, error) {
	if c.VerdictService != nil {
		return c.VerdictService, nil
	}

	c.SSEHub = api.NewSSEHub()

	opts := []app.Option{
		app.WithMetrics(c.Metrics),
		app.WithPublisher(api.NewSSEVerdictPublisher(c.SSEHub)),
		app.WithBatchLimits(app.BatchLimits{
			Concurrency: c.Config.Batch.Concurrency,
			MaxSize:     c.Config.Batch.MaxSize,
		}),
	}
	if c.VerdictRepo != nil {
		opts = append(opts, app.WithRepository(c.VerdictRepo))
	}
	if c.VerdictCache != nil {
		opts = append(opts, app.WithCache(c.VerdictCache))
	}

	svc, err := app.NewVerdictService(c.Engine, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict service: %w", err)
	}
	c.VerdictService = svc

	c.logger.Info("verdict service ready (storage=%t, cache=%t, config=%s)",
		c.VerdictRepo != nil, c.VerdictCache != nil, core.Hash(svc.ConfigHash()).Short())
	return svc, nil
}

// HealthChecks returns a check per attached dependency
func (c *Container) HealthChecks() map[string]api.HealthCheck {
	checks := map[string]api.HealthCheck{}
	if c.DB != nil {
		checks["postgres"] = c.DB.PingContext
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}
	}
	return checks
}

// Shutdown releases connections held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	if c.SSEHub != nil {
		c.SSEHub.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Warn("failed to close redis client: %v", err)
		}
	}
	c.logger.Info("container shut down")
	return nil
}
