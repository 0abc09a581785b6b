package gfsi

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads the two published GFSI CSV files.
type CSVSource struct {
	Path2019 string
	Path2022 string
}

// NewCSVSource creates a CSVSource for the given paths.
func NewCSVSource(path2019, path2022 string) *CSVSource {
	return &CSVSource{Path2019: path2019, Path2022: path2022}
}

// Frames reads and normalizes both files.
func (s *CSVSource) Frames(ctx context.Context) (Frame, Frame, error) {
	raw2019, err := readCSV(ctx, s.Path2019)
	if err != nil {
		return Frame{}, Frame{}, err
	}
	raw2022, err := readCSV(ctx, s.Path2022)
	if err != nil {
		return Frame{}, Frame{}, err
	}

	y2019, err := Normalize2019(raw2019)
	if err != nil {
		return Frame{}, Frame{}, err
	}
	y2022, err := Normalize2022(raw2022)
	if err != nil {
		return Frame{}, Frame{}, err
	}
	return y2019, y2022, nil
}

func readCSV(ctx context.Context, path string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewDataLoadError(path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, NewDataLoadError(path, err)
	}
	defer f.Close()

	return parseCSV(path, f)
}

func parseCSV(name string, r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, NewDataLoadError(name, fmt.Errorf("parse csv: %w", err))
	}
	return records, nil
}
