package views

import (
	"fmt"
	"sort"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
)

const (
	// TopN is how many countries the bar chart keeps.
	TopN = 20

	MarkerSize    = 8
	MarkerOpacity = 0.7

	CategoryOrderTotalDescending = "total descending"
)

const (
	titleScatter = "Comparison of Overall Food Security Scores (2019 vs 2022)"
	titleBar     = "Top 20 Countries by Overall Food Security Score (2022)"
	titleRadar   = "Radar Chart of %s's Food Security Dimensions (2019 vs 2022)"

	subtitleScatter = "Scatter Plot: Comparison of Overall Scores (2019 vs 2022)"
	subtitleBar     = "Top 20 Countries by Overall Score (2022)"
	subtitleRadar   = "Radar Chart: Country Comparison (2019 vs 2022)"

	labelScore2019 = "2019 Overall Score"
	labelScore2022 = "2022 Overall Score"
	labelBarY      = "Overall Score (2022)"
)

// RadarDimensions are the spokes of the radar chart, in drawing order.
var RadarDimensions = []string{gfsi.ColAffordability, gfsi.ColAvailability, gfsi.ColQualityAndSafety}

// RadialRange is the fixed radar axis.
var RadialRange = [2]float64{0, 100}

// Selection is what the user picked on the dashboard.
type Selection struct {
	Mode    Mode
	Country string
}

// Subtitle returns the section header shown above a mode's chart.
func Subtitle(m Mode) string {
	switch m {
	case Bar:
		return subtitleBar
	case Radar:
		return subtitleRadar
	default:
		return subtitleScatter
	}
}

// Build turns a selection into a Figure. Scatter and Bar over an empty
// dataset produce a NoData figure; Radar returns a SelectionError instead,
// since there is no country to pick.
func Build(ds *gfsi.Dataset, sel Selection) (Figure, error) {
	var records []gfsi.MergedRecord
	if ds != nil {
		records = ds.Records()
	}

	switch sel.Mode {
	case Scatter:
		return buildScatter(records), nil
	case Bar:
		return buildBar(records), nil
	case Radar:
		return buildRadar(ds, sel.Country)
	default:
		return Figure{}, &SelectionError{Mode: sel.Mode, Country: sel.Country, Err: fmt.Errorf("unsupported mode %d", int(sel.Mode))}
	}
}

func buildScatter(records []gfsi.MergedRecord) Figure {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		points = append(points, Point{Country: r.Country, X: r.OverallScore2019, Y: r.OverallScore2022})
	}
	return Figure{
		Mode:     Scatter,
		Title:    titleScatter,
		Subtitle: subtitleScatter,
		XLabel:   labelScore2019,
		YLabel:   labelScore2022,
		NoData:   len(points) == 0,
		Scatter:  &ScatterData{Points: points, MarkerSize: MarkerSize, Opacity: MarkerOpacity},
	}
}

// buildBar charts one bar per country. A country repeated by the join keeps
// its first record, as Lookup does.
func buildBar(records []gfsi.MergedRecord) Figure {
	seen := make(map[string]bool, len(records))
	sorted := make([]gfsi.MergedRecord, 0, len(records))
	for _, r := range records {
		if seen[r.Country] {
			continue
		}
		seen[r.Country] = true
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore2022 > sorted[j].OverallScore2022
	})
	if len(sorted) > TopN {
		sorted = sorted[:TopN]
	}

	bars := make([]BarItem, 0, len(sorted))
	for _, r := range sorted {
		bars = append(bars, BarItem{Country: r.Country, Value: r.OverallScore2022})
	}
	return Figure{
		Mode:     Bar,
		Title:    titleBar,
		Subtitle: subtitleBar,
		XLabel:   gfsi.ColCountry,
		YLabel:   labelBarY,
		NoData:   len(bars) == 0,
		Bar:      &BarData{Bars: bars, CategoryOrder: CategoryOrderTotalDescending},
	}
}

func buildRadar(ds *gfsi.Dataset, country string) (Figure, error) {
	if ds == nil || ds.Empty() {
		return Figure{}, &SelectionError{Mode: Radar, Country: country, Err: ErrNoData}
	}

	country = gfsi.CanonicalCountry(country)
	if country == "" {
		country = ds.Countries()[0]
	}
	rec, ok := ds.Lookup(country)
	if !ok {
		return Figure{}, &SelectionError{Mode: Radar, Country: country, Err: ErrUnknownCountry}
	}

	d19, d22 := rec.Dimensions2019(), rec.Dimensions2022()
	return Figure{
		Mode:     Radar,
		Title:    fmt.Sprintf(titleRadar, rec.Country),
		Subtitle: subtitleRadar,
		Radar: &RadarData{
			Country:    rec.Country,
			Dimensions: append([]string(nil), RadarDimensions...),
			Traces: []Trace{
				{Name: "2019", R: d19[:]},
				{Name: "2022", R: d22[:]},
			},
			RadialRange: RadialRange,
			Closed:      true,
			ShowLegend:  true,
		},
	}, nil
}
