package gfsi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize2019(t *testing.T) {
	f, err := Normalize2019(raw2019(
		[]string{"0", "1", "Singapore", "87.4", "95.4", "83", "79.2"},
		[]string{"", "", "", "", "", "", ""},
		[]string{"1", "2", "  Ireland ", "84", "86.8", "84.1", "79.2", "extra"},
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Country", "Overall_Score", "Affordability", "Availability", "Quality_and_Safety"}, f.Columns)
	assert.Equal(t, []string{"Singapore", "Ireland"}, f.Column(ColCountry))
	assert.Equal(t, []string{"1", "2"}, f.Column(ColRank))
	assert.False(t, f.Has(ColIndex))
}

func TestNormalize2019FirstRowAlwaysDiscarded(t *testing.T) {
	f, err := Normalize2019([][]string{
		{"0", "1", "Header-looking", "1", "2", "3", "4"},
		{"1", "1", "Chile", "60", "61", "62", "63"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chile"}, f.Column(ColCountry))
}

func TestNormalize2019ShortRow(t *testing.T) {
	_, err := Normalize2019(raw2019([]string{"0", "1", "Chile", "60"}))

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, schemaErr.Error(), "line 2")
}

func TestNormalize2022(t *testing.T) {
	raw := [][]string{
		{"\ufeffRank", " Country ", "Overall score", "Affordability", "Availability", "Quality and Safety"},
		{"1", "Finland", "83.7", "91.3", "71.8", "91.6"},
	}
	f, err := Normalize2022(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Country", "Overall_Score", "Affordability", "Availability", "Quality_and_Safety"}, f.Columns)
	assert.Equal(t, []string{"Finland"}, f.Column(ColCountry))
}

func TestNormalize2022MissingColumns(t *testing.T) {
	_, err := Normalize2022([][]string{{"Country", "Overall score"}})

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Affordability", "Availability", "Quality_and_Safety"}, schemaErr.Missing)
}

func TestNormalize2022Empty(t *testing.T) {
	_, err := Normalize2022(nil)

	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestNormalize2022HeaderOnly(t *testing.T) {
	_, err := Normalize2022(raw2022())

	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestNormalize2019Empty(t *testing.T) {
	for name, raw := range map[string][][]string{
		"no lines":   nil,
		"title only": raw2019(),
		"blank rows": raw2019([]string{"", " "}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize2019(raw)

			var loadErr *DataLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, "2019", loadErr.Source)
			assert.ErrorIs(t, err, ErrEmptySource)
		})
	}
}

func TestCanonicalizeEmptyTable(t *testing.T) {
	_, err := Canonicalize(Frame{Name: "2022", Columns: BaseColumns})

	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestCanonicalCountry(t *testing.T) {
	cases := map[string]string{
		"  Testland ":     "Testland",
		"\ufeffChile":     "Chile",
		"United   States": "United States",
		"Côte d'Ivoire":   "Côte d'Ivoire",
		"   ":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalCountry(in), "input %q", in)
	}
}

func TestEmptyCountryRowsDropped(t *testing.T) {
	f, err := Normalize2022(raw2022(
		[]string{"1", " ", "50", "50", "50", "50"},
		[]string{"2", "Peru", "60", "60", "60", "60"},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"Peru"}, f.Column(ColCountry))
}
