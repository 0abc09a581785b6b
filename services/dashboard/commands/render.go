package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/render"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one chart to a file",
	Long: `Render a single visualization without starting the server.

Example:
  dashboard render --mode scatter --out scatter.svg
  dashboard render --mode radar --country Japan --format png --out -`,
	RunE: runRender,
}

var (
	renderMode    string
	renderCountry string
	renderFormat  string
	renderOut     string
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderMode, "mode", "scatter", "scatter|bar|radar")
	renderCmd.Flags().StringVar(&renderCountry, "country", "", "country for the radar chart (default: first)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "png|svg (default: from --out extension)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file, - for stdout")
	_ = renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := views.ParseMode(renderMode)
	if err != nil {
		return err
	}

	formatName := renderFormat
	if formatName == "" {
		formatName = strings.TrimPrefix(filepath.Ext(renderOut), ".")
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	_, fig, cfg, err := prepareFigure(cmd.Context(), views.Selection{Mode: mode, Country: renderCountry})
	if err != nil {
		return err
	}

	return writeOutput(renderOut, func(w io.Writer) error {
		return render.NewPlotter(cfg.ChartWidth, cfg.ChartHeight).Render(fig, format, w)
	})
}

// writeOutput runs write against path, or stdout when path is "-".
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}
