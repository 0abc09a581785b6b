package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/cache"
	httpserver "github.com/02loveslollipop/gfsi-dashboard/services/dashboard/http"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long: `Load both GFSI editions, then serve the dashboard.

Endpoints:
  GET /                           - interactive dashboard
  GET /charts/:mode               - chart image (png|svg)
  GET /healthz                    - health check
  GET /api/v1/core/countries      - countries present in both editions
  GET /api/v1/core/records        - merged table
  GET /api/v1/views/:mode         - chart description as JSON
  GET /api/v1/charts/:mode        - chart image
  GET /api/v1/export/:mode        - xlsx workbook`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds, closeSource, err := loadDataset(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("dataset load failed; refusing to start")
		return err
	}
	defer closeSource()
	if ds.Empty() {
		log.Warnf("no country present in both %s editions; radar view disabled", cfg.DataSource)
	}

	redisClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	if redisClient.Enabled() {
		log.Info("render cache enabled")
	}

	renderCache := cache.NewRenderCache(redisClient, cache.DefaultPrefix, cfg.RenderCacheTTL.Duration, log)
	srv := httpserver.New(cfg, ds, renderCache, log)

	return srv.Run(ctx)
}
