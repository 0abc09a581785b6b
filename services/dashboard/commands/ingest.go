package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/db"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/logger"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load the two CSV files into Postgres",
	Long: `Read both GFSI CSV files, normalize them and replace the stored
snapshots in gfsi.index_2019 / gfsi.index_2022. Tables are created when
missing. Afterwards the dashboard can run with DATA_SOURCE=postgres.

Example:
  DATABASE_URL=postgres://... dashboard ingest --path-2019 a.csv --path-2022 b.csv`,
	RunE: runIngest,
}

var (
	ingestPath2019 string
	ingestPath2022 string
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestPath2019, "path-2019", "", "2019 CSV (overrides GFSI_2019_PATH)")
	ingestCmd.Flags().StringVar(&ingestPath2022, "path-2022", "", "2022 CSV (overrides GFSI_2022_PATH)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for ingest")
	}
	if ingestPath2019 != "" {
		cfg.Path2019 = ingestPath2019
	}
	if ingestPath2022 != "" {
		cfg.Path2022 = ingestPath2022
	}

	ctx := cmd.Context()
	log.Infof("reading %s and %s", cfg.Path2019, cfg.Path2022)
	y2019, y2022, err := gfsi.NewCSVSource(cfg.Path2019, cfg.Path2022).Frames(ctx)
	if err != nil {
		return err
	}

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, snap := range []struct {
		year  int
		frame gfsi.Frame
	}{
		{db.Year2019, y2019},
		{db.Year2022, y2022},
	} {
		n, err := store.ReplaceSnapshot(ctx, snap.year, snap.frame)
		if err != nil {
			return fmt.Errorf("ingest %d: %w", snap.year, err)
		}
		log.WithFields(logger.Fields{"year": snap.year, "rows": n}).Info("snapshot replaced")
	}
	return nil
}
