package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/gfsi"
)

func testFrame() gfsi.Frame {
	return gfsi.Frame{
		Name:    "2019",
		Columns: []string{"Rank", "Country", "Overall_Score", "Affordability", "Availability", "Quality_and_Safety"},
		Rows: [][]string{
			{"1", "Testland", "55", "50", "60", "70"},
			{"", "Otherland", "45.5", "NA", "", "60"},
		},
	}
}

func TestSnapshotRows(t *testing.T) {
	rows, err := snapshotRows(testFrame())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 0, first[0])
	assert.Equal(t, "1", *first[1].(*string))
	assert.Equal(t, "Testland", first[2])
	assert.Equal(t, 55.0, *first[3].(*float64))

	second := rows[1]
	assert.Nil(t, second[1].(*string))
	assert.Equal(t, 45.5, *second[3].(*float64))
	assert.Nil(t, second[4].(*float64))
	assert.Nil(t, second[5].(*float64))
}

func TestSnapshotRowsMalformed(t *testing.T) {
	for _, v := range []string{"fifty", "+Inf"} {
		f := testFrame()
		f.Rows[0][2] = v

		_, err := snapshotRows(f)
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "Testland")
	}
}

func TestCellConversions(t *testing.T) {
	v := 87.25
	assert.Equal(t, "87.25", scoreCell(&v))
	assert.Equal(t, "", scoreCell(nil))

	r := "12"
	assert.Equal(t, "12", textCell(&r))
	assert.Equal(t, "", textCell(nil))
}

func TestTableFor(t *testing.T) {
	table, err := tableFor(2022)
	require.NoError(t, err)
	assert.Equal(t, "gfsi.index_2022", table)

	_, err = tableFor(2020)
	assert.Error(t, err)
}

func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("GFSI_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("GFSI_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureSchema(ctx))

	y2022 := gfsi.Frame{
		Columns: []string{"Rank", "Country", "Overall_Score", "Affordability", "Availability", "Quality_and_Safety"},
		Rows:    [][]string{{"3", " Testland ", "65", "62", "68", "71"}},
	}

	n, err := store.ReplaceSnapshot(ctx, Year2019, testFrame())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, err = store.ReplaceSnapshot(ctx, Year2022, y2022)
	require.NoError(t, err)

	ds, err := gfsi.NewLoader(store, nil).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	rec := ds.Records()[0]
	assert.Equal(t, "Testland", rec.Country)
	assert.Equal(t, 55.0, rec.OverallScore2019)
	assert.Equal(t, 65.0, rec.OverallScore2022)
}
