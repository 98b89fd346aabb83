package api

import (
	"context"
	"net/http"
	"time"

	"goverdict/app"
	"goverdict/internal"
	"goverdict/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// ServerOptions configures the HTTP server
type ServerOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Gatherer backs GET /metrics; nil disables the endpoint
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Recorder
	// Hub enables the per-job event stream
	Hub          *SSEHub
	HealthChecks map[string]HealthCheck
}

// Server exposes the verdict service over HTTP
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	handler    *VerdictHandler
	opts       ServerOptions
	logger     *internal.Logger
}

// NewServer creates a server with all routes registered
func NewServer(service *app.VerdictService, opts ServerOptions) *Server {
	logger := internal.DefaultLogger.WithComponent("api")

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(logger, opts.Metrics))

	s := &Server{
		router:  router,
		handler: NewVerdictHandler(service),
		opts:    opts,
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.handleHealth)
	if s.opts.Gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	api := s.router.Group("/api/v1")
	{
		api.POST("/verdicts", s.handler.CreateVerdict)
		api.POST("/verdicts/mvp", s.handler.CreateMVPVerdict)
		api.POST("/verdicts/batch", s.handler.CreateBatch)
		api.GET("/verdicts/:id", s.handler.GetVerdict)
		api.GET("/jobs/:jobId/verdicts", s.handler.ListJobVerdicts)
		api.GET("/config", s.handler.GetConfig)
		if s.opts.Hub != nil {
			api.GET("/jobs/:jobId/events", s.opts.Hub.HandleSSE)
		}
	}
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}
	s.logger.Info("listening on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.opts.Hub != nil {
		s.opts.Hub.Close()
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, check := range s.opts.HealthChecks {
		if err := check(ctx); err != nil {
			s.logger.Warn("health check %s failed: %v", name, err)
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": checks})
}
