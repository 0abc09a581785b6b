package gfsi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInnerJoinKeepsOnlyCommonKeysInLeftOrder(t *testing.T) {
	left := Frame{Name: "l", Columns: []string{"Country", "Score"}, Rows: [][]string{{"C", "3"}, {"A", "1"}, {"B", "2"}}}
	right := Frame{Name: "r", Columns: []string{"Country", "Score"}, Rows: [][]string{{"B", "20"}, {"D", "40"}, {"C", "30"}}}

	out, err := InnerJoin(left, right, "Country", [2]string{"_2019", "_2022"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Country", "Score_2019", "Score_2022"}, out.Columns)
	assert.Equal(t, [][]string{{"C", "3", "30"}, {"B", "2", "20"}}, out.Rows)
}

func TestInnerJoinNonCollidingColumnsKeepNames(t *testing.T) {
	left := Frame{Columns: []string{"Rank", "Country", "Score"}, Rows: [][]string{{"1", "A", "5"}}}
	right := Frame{Columns: []string{"Country", "Score", "Region"}, Rows: [][]string{{"A", "6", "North"}}}

	out, err := InnerJoin(left, right, "Country", [2]string{"_x", "_y"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Country", "Score_x", "Score_y", "Region"}, out.Columns)
	assert.Equal(t, [][]string{{"1", "A", "5", "6", "North"}}, out.Rows)
}

func TestInnerJoinDuplicateKeysProduceAllPairings(t *testing.T) {
	left := Frame{Columns: []string{"Country", "v"}, Rows: [][]string{{"X", "l1"}, {"Y", "l2"}, {"X", "l3"}}}
	right := Frame{Columns: []string{"Country", "v"}, Rows: [][]string{{"X", "r1"}, {"X", "r2"}}}

	out, err := InnerJoin(left, right, "Country", [2]string{"_a", "_b"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"X", "l1", "r1"},
		{"X", "l1", "r2"},
		{"X", "l3", "r1"},
		{"X", "l3", "r2"},
	}, out.Rows)
}

func TestInnerJoinDisjointKeys(t *testing.T) {
	left := Frame{Columns: []string{"Country", "v"}, Rows: [][]string{{"Atlantis", "1"}}}
	right := Frame{Columns: []string{"Country", "v"}, Rows: [][]string{{"Wakanda", "2"}}}

	out, err := InnerJoin(left, right, "Country", [2]string{"_2019", "_2022"})
	require.NoError(t, err)
	assert.Empty(t, out.Rows)
	assert.Equal(t, []string{"Country", "v_2019", "v_2022"}, out.Columns)
}

func TestInnerJoinMissingKey(t *testing.T) {
	left := Frame{Name: "2019", Columns: []string{"Nation"}}
	right := Frame{Name: "2022", Columns: []string{"Country"}}

	_, err := InnerJoin(left, right, "Country", [2]string{"_2019", "_2022"})

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "2019", schemaErr.Table)
}
