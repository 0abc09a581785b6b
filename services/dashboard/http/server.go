package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/cache"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/config"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/logger"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/render"
)

// Server bundles router and dependencies for the dashboard and its API.
type Server struct {
	cfg     config.Config
	dataset *gfsi.Dataset
	plotter *render.Plotter
	cache   *cache.RenderCache
	limiter *rate.Limiter
	log     *logger.Logger
	engine  *gin.Engine
}

// New constructs a server with routes and middleware. ds must already be
// loaded; the server never reloads it.
func New(cfg config.Config, ds *gfsi.Dataset, renderCache *cache.RenderCache, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if renderCache == nil {
		renderCache = cache.NewRenderCache(nil, "", 0, log)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware())
	engine.SetHTMLTemplate(dashboardTemplate)

	server := &Server{
		cfg:     cfg,
		dataset: ds,
		plotter: render.NewPlotter(cfg.ChartWidth, cfg.ChartHeight),
		cache:   renderCache,
		limiter: newRenderLimiter(cfg.RenderRate, cfg.RenderBurst),
		log:     log,
		engine:  engine,
	}
	server.registerRoutes()
	server.registerV1Routes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.WithField("addr", srv.Addr).Info("dashboard listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.dataset.Len()})
	})

	s.engine.GET("/", s.handleDashboard)
	s.engine.GET("/charts/:mode", s.rateLimited(), s.handleChart)
}

func newRenderLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
