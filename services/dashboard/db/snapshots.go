package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
)

// Years with a snapshot table.
const (
	Year2019 = 2019
	Year2022 = 2022
)

func tableFor(year int) (string, error) {
	switch year {
	case Year2019:
		return "gfsi.index_2019", nil
	case Year2022:
		return "gfsi.index_2022", nil
	default:
		return "", fmt.Errorf("no snapshot table for year %d", year)
	}
}

// snapshotColumns is the frame layout Frames returns for both years.
var snapshotColumns = []string{
	gfsi.ColRank, gfsi.ColCountry, gfsi.ColOverallScore,
	gfsi.ColAffordability, gfsi.ColAvailability, gfsi.ColQualityAndSafety,
}

const selectSnapshotSQL = `
    SELECT rank, country, overall_score, affordability, availability, quality_and_safety
    FROM %s
    ORDER BY position
`

// Frames loads both snapshots as normalized frames.
func (s *Store) Frames(ctx context.Context) (gfsi.Frame, gfsi.Frame, error) {
	y2019, err := s.frame(ctx, Year2019)
	if err != nil {
		return gfsi.Frame{}, gfsi.Frame{}, err
	}
	y2022, err := s.frame(ctx, Year2022)
	if err != nil {
		return gfsi.Frame{}, gfsi.Frame{}, err
	}
	return y2019, y2022, nil
}

func (s *Store) frame(ctx context.Context, year int) (gfsi.Frame, error) {
	table, err := tableFor(year)
	if err != nil {
		return gfsi.Frame{}, err
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(selectSnapshotSQL, table))
	if err != nil {
		return gfsi.Frame{}, gfsi.NewDataLoadError(table, err)
	}
	defer rows.Close()

	f := gfsi.Frame{Name: strconv.Itoa(year), Columns: append([]string(nil), snapshotColumns...)}
	for rows.Next() {
		var (
			rank                                  *string
			country                               string
			overall, afford, avail, qualitySafety *float64
		)
		if err := rows.Scan(&rank, &country, &overall, &afford, &avail, &qualitySafety); err != nil {
			return gfsi.Frame{}, gfsi.NewDataLoadError(table, err)
		}
		f.Rows = append(f.Rows, []string{
			textCell(rank), country,
			scoreCell(overall), scoreCell(afford), scoreCell(avail), scoreCell(qualitySafety),
		})
	}
	if err := rows.Err(); err != nil {
		return gfsi.Frame{}, gfsi.NewDataLoadError(table, err)
	}

	return gfsi.Canonicalize(f)
}

const insertSnapshotSQL = `INSERT INTO %s (position, rank, country, overall_score, affordability, availability, quality_and_safety, ingested_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())`

// ReplaceSnapshot swaps the stored table for year with the rows of f in a
// single transaction. f must carry the normalized column names.
func (s *Store) ReplaceSnapshot(ctx context.Context, year int, f gfsi.Frame) (int, error) {
	table, err := tableFor(year)
	if err != nil {
		return 0, err
	}
	if err := f.Require(gfsi.BaseColumns...); err != nil {
		return 0, err
	}

	rows, err := snapshotRows(f)
	if err != nil {
		return 0, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}

	if len(rows) > 0 {
		batch := &pgx.Batch{}
		query := fmt.Sprintf(insertSnapshotSQL, table)
		for _, r := range rows {
			batch.Queue(query, r...)
		}

		res := tx.SendBatch(ctx, batch)
		for i := range rows {
			if _, err := res.Exec(); err != nil {
				res.Close()
				return 0, fmt.Errorf("insert %s row %d: %w", table, i, err)
			}
		}
		if err := res.Close(); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// snapshotRows converts frame rows into insert arguments. Blank metric cells
// become NULL; a malformed one rejects the whole snapshot.
func snapshotRows(f gfsi.Frame) ([][]any, error) {
	rankIdx := f.Index(gfsi.ColRank)
	countryIdx := f.Index(gfsi.ColCountry)
	metricIdx := make([]int, len(gfsi.MetricColumns))
	for i, m := range gfsi.MetricColumns {
		metricIdx[i] = f.Index(m)
	}

	out := make([][]any, 0, len(f.Rows))
	for pos, row := range f.Rows {
		args := []any{pos, nullableText(cellAt(row, rankIdx)), cellAt(row, countryIdx)}
		for i, idx := range metricIdx {
			v, err := scoreArg(cellAt(row, idx))
			if err != nil {
				return nil, fmt.Errorf("row %d (%s) %s: %w", pos, cellAt(row, countryIdx), gfsi.MetricColumns[i], err)
			}
			args = append(args, v)
		}
		out = append(out, args)
	}
	return out, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scoreArg(s string) (*float64, error) {
	v, ok, err := gfsi.ParseScore(s)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func textCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scoreCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
