package gfsi

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// MergedRecord is one country present in both yearly snapshots.
type MergedRecord struct {
	Country string `json:"country"`
	Rank    string `json:"rank,omitempty"`

	OverallScore2019     float64 `json:"overall_score_2019"`
	OverallScore2022     float64 `json:"overall_score_2022"`
	Affordability2019    float64 `json:"affordability_2019"`
	Affordability2022    float64 `json:"affordability_2022"`
	Availability2019     float64 `json:"availability_2019"`
	Availability2022     float64 `json:"availability_2022"`
	QualityAndSafety2019 float64 `json:"quality_and_safety_2019"`
	QualityAndSafety2022 float64 `json:"quality_and_safety_2022"`
}

// Dimensions2019 returns Affordability, Availability, Quality_and_Safety for 2019.
func (r MergedRecord) Dimensions2019() [3]float64 {
	return [3]float64{r.Affordability2019, r.Availability2019, r.QualityAndSafety2019}
}

// Dimensions2022 returns Affordability, Availability, Quality_and_Safety for 2022.
func (r MergedRecord) Dimensions2022() [3]float64 {
	return [3]float64{r.Affordability2022, r.Availability2022, r.QualityAndSafety2022}
}

// LoadStats summarizes what happened during a load.
type LoadStats struct {
	Rows2019      int `json:"rows_2019"`
	Rows2022      int `json:"rows_2022"`
	Unmatched2019 int `json:"unmatched_2019"`
	Unmatched2022 int `json:"unmatched_2022"`
	Joined        int `json:"joined"`
	Partial       int `json:"partial"`
	Merged        int `json:"merged"`
}

// Dataset is the merged table. It is built once and never mutated.
type Dataset struct {
	columns   []string
	records   []MergedRecord
	countries []string
	stats     LoadStats
	version   string
}

// naValues mark a missing cell; rows holding one are excluded.
var naValues = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "null": true, "-": true, "—": true,
}

// NewDataset converts a merged frame into typed records.
func NewDataset(merged Frame) (*Dataset, error) {
	required := []string{ColCountry}
	for _, m := range MetricColumns {
		required = append(required, m+Suffix2019, m+Suffix2022)
	}
	if err := merged.Require(required...); err != nil {
		return nil, err
	}
	for _, m := range MetricColumns {
		if merged.Has(m) {
			return nil, &SchemaError{Table: merged.Name, Detail: fmt.Sprintf("unsuffixed column %s after merge", m)}
		}
	}

	idx := func(name string) int { return merged.Index(name) }
	rankIdx := idx(ColRank)
	if rankIdx < 0 {
		rankIdx = idx(ColRank + Suffix2019)
	}

	ds := &Dataset{columns: append([]string(nil), merged.Columns...)}
	ds.stats.Joined = len(merged.Rows)
	seen := make(map[string]bool)

	for _, row := range merged.Rows {
		rec := MergedRecord{Country: cell(row, idx(ColCountry)), Rank: strings.TrimSpace(cell(row, rankIdx))}
		targets := []struct {
			col string
			dst *float64
		}{
			{ColOverallScore + Suffix2019, &rec.OverallScore2019},
			{ColOverallScore + Suffix2022, &rec.OverallScore2022},
			{ColAffordability + Suffix2019, &rec.Affordability2019},
			{ColAffordability + Suffix2022, &rec.Affordability2022},
			{ColAvailability + Suffix2019, &rec.Availability2019},
			{ColAvailability + Suffix2022, &rec.Availability2022},
			{ColQualityAndSafety + Suffix2019, &rec.QualityAndSafety2019},
			{ColQualityAndSafety + Suffix2022, &rec.QualityAndSafety2022},
		}

		partial := false
		for _, t := range targets {
			v, ok, err := ParseScore(cell(row, idx(t.col)))
			if err != nil {
				return nil, NewDataLoadError(merged.Name, fmt.Errorf("%s: column %s: %w", rec.Country, t.col, err))
			}
			if !ok {
				partial = true
				break
			}
			*t.dst = v
		}
		if partial {
			ds.stats.Partial++
			continue
		}

		ds.records = append(ds.records, rec)
		if !seen[rec.Country] {
			seen[rec.Country] = true
			ds.countries = append(ds.countries, rec.Country)
		}
	}

	ds.stats.Merged = len(ds.records)
	ds.version = fingerprint(ds.records)
	return ds, nil
}

// ParseScore reads a metric cell. NA-like cells return ok=false and no
// error; anything else that is not a finite number is an error.
func ParseScore(s string) (float64, bool, error) {
	s = strings.TrimSpace(s)
	if naValues[strings.ToLower(s)] {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite number %q", s)
	}
	return v, true, nil
}

func fingerprint(records []MergedRecord) string {
	h := fnv.New64a()
	var buf [8]byte
	for _, r := range records {
		h.Write([]byte(r.Country))
		h.Write([]byte{0})
		for _, v := range []float64{
			r.OverallScore2019, r.OverallScore2022,
			r.Affordability2019, r.Affordability2022,
			r.Availability2019, r.Availability2022,
			r.QualityAndSafety2019, r.QualityAndSafety2022,
		} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Records returns a copy of the merged rows in join order.
func (d *Dataset) Records() []MergedRecord {
	return append([]MergedRecord(nil), d.records...)
}

// Countries returns each country once, in first-seen order.
func (d *Dataset) Countries() []string {
	return append([]string(nil), d.countries...)
}

// Lookup returns the first record for country.
func (d *Dataset) Lookup(country string) (MergedRecord, bool) {
	country = CanonicalCountry(country)
	for _, r := range d.records {
		if r.Country == country {
			return r, true
		}
	}
	return MergedRecord{}, false
}

// Columns returns the merged column names.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Len returns the number of merged records.
func (d *Dataset) Len() int { return len(d.records) }

// Empty reports whether no country survived the merge.
func (d *Dataset) Empty() bool { return len(d.records) == 0 }

func (d *Dataset) Stats() LoadStats { return d.stats }

// Version fingerprints the records; equal data yields equal versions.
func (d *Dataset) Version() string { return d.version }
