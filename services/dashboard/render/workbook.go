package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/views"
)

// DataSheet holds the merged table in every exported workbook.
const DataSheet = "Data"

var dataHeaders = []string{
	gfsi.ColCountry, gfsi.ColRank,
	gfsi.ColOverallScore + gfsi.Suffix2019, gfsi.ColOverallScore + gfsi.Suffix2022,
	gfsi.ColAffordability + gfsi.Suffix2019, gfsi.ColAffordability + gfsi.Suffix2022,
	gfsi.ColAvailability + gfsi.Suffix2019, gfsi.ColAvailability + gfsi.Suffix2022,
	gfsi.ColQualityAndSafety + gfsi.Suffix2019, gfsi.ColQualityAndSafety + gfsi.Suffix2022,
}

// WriteWorkbook writes an xlsx file with the merged data and the figure's
// series next to a native Excel chart.
func WriteWorkbook(w io.Writer, ds *gfsi.Dataset, fig views.Figure) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return err
	}
	if err := writeData(f, ds); err != nil {
		return fmt.Errorf("data sheet: %w", err)
	}

	sheet := fig.Mode.Label()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	if err := writeView(f, sheet, fig); err != nil {
		return fmt.Errorf("%s sheet: %w", sheet, err)
	}
	f.SetActiveSheet(idx)

	return f.Write(w)
}

func writeData(f *excelize.File, ds *gfsi.Dataset) error {
	if err := setRow(f, DataSheet, 1, stringsToCells(dataHeaders)); err != nil {
		return err
	}
	if ds == nil {
		return nil
	}
	for i, r := range ds.Records() {
		row := []interface{}{
			r.Country, r.Rank,
			r.OverallScore2019, r.OverallScore2022,
			r.Affordability2019, r.Affordability2022,
			r.Availability2019, r.Availability2022,
			r.QualityAndSafety2019, r.QualityAndSafety2022,
		}
		if err := setRow(f, DataSheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(DataSheet, "A", "J", 20)
}

func writeView(f *excelize.File, sheet string, fig views.Figure) error {
	if err := f.SetCellValue(sheet, "A1", fig.Title); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A2", fig.Subtitle); err != nil {
		return err
	}
	if fig.NoData {
		return f.SetCellValue(sheet, "A4", noDataText)
	}

	switch {
	case fig.Scatter != nil:
		return writeScatter(f, sheet, fig)
	case fig.Bar != nil:
		return writeBar(f, sheet, fig)
	case fig.Radar != nil:
		return writeRadar(f, sheet, fig)
	}
	return fmt.Errorf("figure has no series")
}

// series rows start under the title block
const firstDataRow = 5

func writeScatter(f *excelize.File, sheet string, fig views.Figure) error {
	if err := setRow(f, sheet, firstDataRow-1, []interface{}{gfsi.ColCountry, fig.XLabel, fig.YLabel}); err != nil {
		return err
	}
	for i, pt := range fig.Scatter.Points {
		if err := setRow(f, sheet, firstDataRow+i, []interface{}{pt.Country, pt.X, pt.Y}); err != nil {
			return err
		}
	}
	last := firstDataRow + len(fig.Scatter.Points) - 1

	return f.AddChart(sheet, "E4", &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$C$%d", quote(sheet), firstDataRow-1),
			Categories: colRange(sheet, "B", firstDataRow, last),
			Values:     colRange(sheet, "C", firstDataRow, last),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: int(fig.Scatter.MarkerSize)},
			Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
		}},
		Title:     []excelize.RichTextRun{{Text: fig.Title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: fig.XLabel}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: fig.YLabel}}},
		Dimension: excelize.ChartDimension{Width: 720, Height: 480},
	})
}

func writeBar(f *excelize.File, sheet string, fig views.Figure) error {
	if err := setRow(f, sheet, firstDataRow-1, []interface{}{gfsi.ColCountry, fig.YLabel}); err != nil {
		return err
	}
	for i, b := range fig.Bar.Bars {
		if err := setRow(f, sheet, firstDataRow+i, []interface{}{b.Country, b.Value}); err != nil {
			return err
		}
	}
	last := firstDataRow + len(fig.Bar.Bars) - 1
	varyColors := true

	return f.AddChart(sheet, "D4", &excelize.Chart{
		Type:       excelize.Col,
		VaryColors: &varyColors,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$%d", quote(sheet), firstDataRow-1),
			Categories: colRange(sheet, "A", firstDataRow, last),
			Values:     colRange(sheet, "B", firstDataRow, last),
		}},
		Title:     []excelize.RichTextRun{{Text: fig.Title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: fig.YLabel}}},
		Dimension: excelize.ChartDimension{Width: 900, Height: 480},
	})
}

func writeRadar(f *excelize.File, sheet string, fig views.Figure) error {
	r := fig.Radar
	header := []interface{}{"Dimension"}
	for _, tr := range r.Traces {
		header = append(header, tr.Name)
	}
	if err := setRow(f, sheet, firstDataRow-1, header); err != nil {
		return err
	}
	for k, dim := range r.Dimensions {
		row := []interface{}{dim}
		for _, tr := range r.Traces {
			row = append(row, tr.R[k])
		}
		if err := setRow(f, sheet, firstDataRow+k, row); err != nil {
			return err
		}
	}
	last := firstDataRow + len(r.Dimensions) - 1

	var series []excelize.ChartSeries
	for i := range r.Traces {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$%d", quote(sheet), col, firstDataRow-1),
			Categories: colRange(sheet, "A", firstDataRow, last),
			Values:     colRange(sheet, col, firstDataRow, last),
		})
	}

	lo, hi := r.RadialRange[0], r.RadialRange[1]
	return f.AddChart(sheet, "E4", &excelize.Chart{
		Type:      excelize.Radar,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: fig.Title}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		YAxis:     excelize.ChartAxis{Minimum: &lo, Maximum: &hi},
		Dimension: excelize.ChartDimension{Width: 600, Height: 480},
	})
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func stringsToCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func colRange(sheet, col string, from, to int) string {
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", quote(sheet), col, from, col, to)
}

func quote(sheet string) string {
	return "'" + sheet + "'"
}
