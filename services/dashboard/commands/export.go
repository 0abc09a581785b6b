package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/render"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the merged data and one chart to an xlsx workbook",
	Long: `Export the merged table plus the selected visualization as a native
Excel chart.

Example:
  dashboard export --mode bar --out top20.xlsx`,
	RunE: runExport,
}

var (
	exportMode    string
	exportCountry string
	exportOut     string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "scatter", "scatter|bar|radar")
	exportCmd.Flags().StringVar(&exportCountry, "country", "", "country for the radar chart (default: first)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "gfsi.xlsx", "output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	mode, err := views.ParseMode(exportMode)
	if err != nil {
		return err
	}

	ds, fig, _, err := prepareFigure(cmd.Context(), views.Selection{Mode: mode, Country: exportCountry})
	if err != nil {
		return err
	}

	return writeOutput(exportOut, func(w io.Writer) error {
		return render.WriteWorkbook(w, ds, fig)
	})
}
