// Package httpapi serves the wheel engine over JSON for dashboards and
// integrations.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/metrics"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// AdminHeader carries the contact of the calling administrator.
const AdminHeader = "X-Lifewheel-Contact"

// Deps are the collaborators the handlers read from and write to.
type Deps struct {
	Accounts   *account.Service
	Users      store.UserRepo
	History    store.HistoryRepo
	Settings   store.SettingsRepo
	Categories wheel.CategorySet

	// Metrics and Gatherer may be nil. Gatherer defaults to the global
	// registry.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	deps       Deps
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	startTime  time.Time
}

// NewServer builds the engine and routes.
func NewServer(cfg Config, deps Deps) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(deps.Logger))
	engine.Use(observe(deps.Metrics))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", AdminHeader}
	engine.Use(cors.New(corsConfig))

	s := &Server{
		deps:      deps,
		engine:    engine,
		logger:    deps.Logger,
		startTime: time.Now(),
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	api.GET("/categories", s.handleCategories)
	api.POST("/classify", s.handleClassify)

	api.GET("/users", s.requireAdmin(), s.handleListUsers)
	api.GET("/users/:id/history", s.requireAdmin(), s.handleUserHistory)
	api.GET("/users/:id/trend", s.requireAdmin(), s.handleUserTrend)

	api.GET("/stats/categories", s.handleCategoryStats)

	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.requireAdmin(), s.handlePutSettings)
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
