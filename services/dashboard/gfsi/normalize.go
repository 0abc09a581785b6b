package gfsi

import (
	"fmt"
	"strings"
)

// Shared column names after normalization.
const (
	ColIndex            = "Index"
	ColRank             = "Rank"
	ColCountry          = "Country"
	ColOverallScore     = "Overall_Score"
	ColAffordability    = "Affordability"
	ColAvailability     = "Availability"
	ColQualityAndSafety = "Quality_and_Safety"
)

const bom = "\ufeff"

const (
	Suffix2019 = "_2019"
	Suffix2022 = "_2022"
)

// BaseColumns are exposed by both sources after normalization.
var BaseColumns = []string{ColCountry, ColOverallScore, ColAffordability, ColAvailability, ColQualityAndSafety}

// MetricColumns are the numeric columns that collide on merge.
var MetricColumns = []string{ColOverallScore, ColAffordability, ColAvailability, ColQualityAndSafety}

// positional layout of the 2019 table, which carries no usable header
var columns2019 = []string{ColIndex, ColRank, ColCountry, ColOverallScore, ColAffordability, ColAvailability, ColQualityAndSafety}

// 2022 header names that differ from the 2019 naming
var rename2022 = map[string]string{
	"Overall score":      ColOverallScore,
	"Quality and Safety": ColQualityAndSafety,
}

// Normalize2019 discards the descriptive first line, names the remaining
// fields positionally and drops the ordinal column. A file with nothing
// after that line is a DataLoadError.
func Normalize2019(raw [][]string) (Frame, error) {
	if len(raw) == 0 {
		return Frame{}, NewDataLoadError("2019", ErrEmptySource)
	}

	f := Frame{Name: "2019", Columns: append([]string(nil), columns2019...)}
	for i, row := range raw[1:] {
		if blankRow(row) {
			continue
		}
		if len(row) < len(columns2019) {
			return Frame{}, &SchemaError{
				Table:  "2019",
				Detail: fmt.Sprintf("line %d has %d fields, want %d", i+2, len(row), len(columns2019)),
			}
		}
		f.Rows = append(f.Rows, append([]string(nil), row[:len(columns2019)]...))
	}
	if len(f.Rows) == 0 {
		return Frame{}, NewDataLoadError("2019", ErrEmptySource)
	}

	f = canonicalizeCountry(f.Drop(ColIndex))
	return f, f.Require(BaseColumns...)
}

// Normalize2022 reads the header row and renames the columns that differ
// from the 2019 naming.
func Normalize2022(raw [][]string) (Frame, error) {
	if len(raw) == 0 {
		return Frame{}, NewDataLoadError("2022", ErrEmptySource)
	}

	header := make([]string, len(raw[0]))
	for i, name := range raw[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, bom))
	}

	f := Frame{Name: "2022", Columns: header}
	for _, row := range raw[1:] {
		if blankRow(row) {
			continue
		}
		f.Rows = append(f.Rows, row)
	}

	f = f.Rename(rename2022)
	if err := f.Require(BaseColumns...); err != nil {
		return Frame{}, err
	}
	if len(f.Rows) == 0 {
		return Frame{}, NewDataLoadError("2022", ErrEmptySource)
	}
	return canonicalizeCountry(f), nil
}

// Canonicalize prepares a frame whose columns already carry the
// normalized names, as a database source returns them. An empty table
// means the snapshot was never ingested.
func Canonicalize(f Frame) (Frame, error) {
	if err := f.Require(BaseColumns...); err != nil {
		return Frame{}, err
	}
	if len(f.Rows) == 0 {
		return Frame{}, NewDataLoadError(f.Name, ErrEmptySource)
	}
	return canonicalizeCountry(f), nil
}

// canonicalizeCountry trims the join key and drops rows without one.
func canonicalizeCountry(f Frame) Frame {
	idx := f.Index(ColCountry)
	if idx < 0 {
		return f
	}
	rows := make([][]string, 0, len(f.Rows))
	for _, row := range f.Rows {
		key := CanonicalCountry(cell(row, idx))
		if key == "" {
			continue
		}
		out := append([]string(nil), row...)
		for len(out) <= idx {
			out = append(out, "")
		}
		out[idx] = key
		rows = append(rows, out)
	}
	return Frame{Name: f.Name, Columns: f.Columns, Rows: rows}
}

// CanonicalCountry is the textual form used as the join key.
func CanonicalCountry(s string) string {
	return strings.Join(strings.Fields(strings.TrimPrefix(s, bom)), " ")
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
