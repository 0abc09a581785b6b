package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/config"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/db"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/logger"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Global Food Security Index dashboard",
	Long: `Compare the 2019 and 2022 editions of the Global Food Security Index.

Both yearly tables are merged on Country; only countries present in
both editions are shown.

Examples:
  dashboard serve
  dashboard render --mode radar --country Chile --out chile.png
  dashboard export --mode bar --out top20.xlsx
  dashboard ingest`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML config file (default $GFSI_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads configuration and builds the logger every subcommand uses.
func setup() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)
	if verbose {
		log.SetDebug()
	}
	return cfg, log, nil
}

// loadDataset opens the configured source and merges both editions. The
// returned closer releases the source.
func loadDataset(ctx context.Context, cfg config.Config, log *logger.Logger) (*gfsi.Dataset, func(), error) {
	var (
		source gfsi.Source
		closer = func() {}
	)

	switch cfg.DataSource {
	case config.SourcePostgres:
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		source, closer = store, store.Close
	default:
		source = gfsi.NewCSVSource(cfg.Path2019, cfg.Path2022)
	}

	log.WithField("source", cfg.DataSource).Info("loading dataset")
	ds, err := gfsi.NewLoader(source, log).Load(ctx)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return ds, closer, nil
}

// prepareFigure is the one-shot path shared by render and export: load,
// merge, then build the figure for sel.
func prepareFigure(ctx context.Context, sel views.Selection) (*gfsi.Dataset, views.Figure, config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := setup()
	if err != nil {
		return nil, views.Figure{}, cfg, err
	}

	ds, closeSource, err := loadDataset(ctx, cfg, log)
	if err != nil {
		return nil, views.Figure{}, cfg, err
	}
	defer closeSource()

	fig, err := views.Build(ds, sel)
	if err != nil {
		return nil, views.Figure{}, cfg, err
	}
	return ds, fig, cfg, nil
}
