package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

const noDataText = "No data available"

// Plotter draws views.Figure values with gonum/plot.
type Plotter struct {
	Width  vg.Length
	Height vg.Length
}

// NewPlotter creates a Plotter producing images of the given size in inches.
func NewPlotter(widthInches, heightInches float64) *Plotter {
	return &Plotter{
		Width:  vg.Length(widthInches) * vg.Inch,
		Height: vg.Length(heightInches) * vg.Inch,
	}
}

// Render encodes fig in the given format to w.
func (pl *Plotter) Render(fig views.Figure, format Format, w io.Writer) error {
	p, err := pl.build(fig)
	if err != nil {
		return fmt.Errorf("build %s: %w", fig.Mode.Slug(), err)
	}

	width, height := pl.Width, pl.Height
	if fig.Radar != nil && !fig.NoData {
		// Polar charts are drawn square so the rings stay round.
		side := vg.Length(math.Min(float64(width), float64(height)))
		width, height = side, side
	}

	wt, err := p.WriterTo(width, height, string(format))
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func (pl *Plotter) build(fig views.Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel

	if fig.NoData {
		return p, addNoData(p)
	}

	switch {
	case fig.Scatter != nil:
		return p, addScatter(p, fig.Scatter)
	case fig.Bar != nil:
		return p, addBars(p, fig.Bar)
	case fig.Radar != nil:
		return p, addRadar(p, fig.Radar)
	}
	return nil, fmt.Errorf("figure has no series")
}

func addNoData(p *plot.Plot) error {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0, Y: 0}},
		Labels: []string{noDataText},
	})
	if err != nil {
		return err
	}
	labels.TextStyle[0].Font.Size = vg.Points(18)
	labels.TextStyle[0].XAlign = draw.XCenter
	p.Add(labels)
	p.HideAxes()
	p.X.Min, p.X.Max = -1, 1
	p.Y.Min, p.Y.Max = -1, 1
	return nil
}

func addScatter(p *plot.Plot, data *views.ScatterData) error {
	points := make(plotter.XYs, len(data.Points))
	for i, pt := range data.Points {
		points[i].X = pt.X
		points[i].Y = pt.Y
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(data.MarkerSize / 2)
	scatter.GlyphStyle.Color = withAlpha(plotutil.Color(0), data.Opacity)

	p.Add(plotter.NewGrid())
	p.Add(scatter)
	return nil
}

func addBars(p *plot.Plot, data *views.BarData) error {
	width := vg.Points(20)
	if n := len(data.Bars); n > 0 {
		width = vg.Points(math.Max(4, math.Min(30, 500/float64(n))))
	}

	names := make([]string, len(data.Bars))
	for i, b := range data.Bars {
		bars, err := plotter.NewBarChart(plotter.Values{b.Value}, width)
		if err != nil {
			return err
		}
		bars.XMin = float64(i)
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(b.Country, bars)
		names[i] = b.Country
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0
	p.Legend.Top = true
	return nil
}

// radarStep is the spacing of the concentric grid rings.
const radarStep = 20

func addRadar(p *plot.Plot, data *views.RadarData) error {
	lo, hi := data.RadialRange[0], data.RadialRange[1]
	n := len(data.Dimensions)
	if n < 3 {
		return fmt.Errorf("radar needs at least 3 dimensions, got %d", n)
	}

	grid := color.Gray{Y: 200}
	for r := lo + radarStep; r <= hi; r += radarStep {
		ring, err := plotter.NewLine(radarPolygon(repeat(r-lo, n), hi-lo, true))
		if err != nil {
			return err
		}
		ring.LineStyle.Color = grid
		ring.LineStyle.Width = vg.Points(0.5)
		p.Add(ring)
	}

	var tickLabels plotter.XYLabels
	for k, dim := range data.Dimensions {
		x, y := polar(hi-lo, k, n)
		spoke, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return err
		}
		spoke.LineStyle.Color = grid
		spoke.LineStyle.Width = vg.Points(0.5)
		p.Add(spoke)

		lx, ly := polar((hi-lo)*1.08, k, n)
		tickLabels.XYs = append(tickLabels.XYs, plotter.XY{X: lx, Y: ly})
		tickLabels.Labels = append(tickLabels.Labels, dim)
	}

	for i, tr := range data.Traces {
		rs := make([]float64, len(tr.R))
		for j, v := range tr.R {
			rs[j] = clamp(v, lo, hi) - lo
		}
		poly, err := plotter.NewPolygon(radarPolygon(rs, hi-lo, data.Closed))
		if err != nil {
			return err
		}
		c := plotutil.Color(i)
		poly.Color = withAlpha(c, 0.35)
		poly.LineStyle.Color = c
		poly.LineStyle.Width = vg.Points(2)
		p.Add(poly)
		if data.ShowLegend {
			p.Legend.Add(tr.Name, poly)
		}
	}

	labels, err := plotter.NewLabels(tickLabels)
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
	}
	p.Add(labels)

	p.HideAxes()
	span := (hi - lo) * 1.25
	p.X.Min, p.X.Max = -span, span
	p.Y.Min, p.Y.Max = -span, span
	p.Legend.Top = true
	return nil
}

// polar places radius r on spoke k of n, starting at twelve o'clock and
// running clockwise.
func polar(r float64, k, n int) (float64, float64) {
	theta := math.Pi/2 - 2*math.Pi*float64(k)/float64(n)
	return r * math.Cos(theta), r * math.Sin(theta)
}

// radarPolygon maps one radius per spoke to x/y points. When closed, the
// first vertex is repeated at the end.
func radarPolygon(rs []float64, limit float64, closed bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(rs)+1)
	for k, r := range rs {
		x, y := polar(math.Min(r, limit), k, len(rs))
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	if closed && len(pts) > 0 {
		pts = append(pts, pts[0])
	}
	return pts
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func withAlpha(c color.Color, opacity float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(math.Round(opacity * 255))}
}
