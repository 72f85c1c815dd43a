package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelled(pairs map[[2]string]int) (rows, cols []string) {
	for pair, n := range pairs {
		for i := 0; i < n; i++ {
			rows = append(rows, pair[0])
			cols = append(cols, pair[1])
		}
	}
	return rows, cols
}

func TestCrosstab(t *testing.T) {
	rows, cols := labelled(map[[2]string]int{
		{"breakfast-only", "kept"}:      10,
		{"breakfast-only", "cancelled"}: 20,
		{"none", "kept"}:                20,
		{"none", "cancelled"}:           10,
	})

	table, err := Crosstab(rows, cols)
	require.NoError(t, err)

	assert.Equal(t, []string{"breakfast-only", "none"}, table.RowLevels)
	assert.Equal(t, []string{"cancelled", "kept"}, table.ColLevels)
	assert.Equal(t, [][]int{{20, 10}, {10, 20}}, table.Counts)
}

func TestCrosstabLengthMismatch(t *testing.T) {
	_, err := Crosstab([]string{"a", "b"}, []string{"x"})
	assert.Error(t, err)
}

func TestChiSquareKnownValues(t *testing.T) {
	rows, cols := labelled(map[[2]string]int{
		{"breakfast-only", "kept"}:      10,
		{"breakfast-only", "cancelled"}: 20,
		{"none", "kept"}:                20,
		{"none", "cancelled"}:           10,
	})

	result, err := ChiSquare("meal_plan", rows, cols)
	require.NoError(t, err)

	// All expected counts are 15, so X² = 4·(5²/15) = 20/3.
	assert.Equal(t, "meal_plan", result.Variable)
	assert.Equal(t, 1, result.DF)
	assert.InDelta(t, 20.0/3.0, result.Statistic, 1e-9)
	assert.Greater(t, result.P, 0.005)
	assert.Less(t, result.P, 0.015)
}

func TestChiSquareIndependentTable(t *testing.T) {
	// Proportional rows carry no association.
	rows, cols := labelled(map[[2]string]int{
		{"a", "x"}: 30,
		{"a", "y"}: 10,
		{"b", "x"}: 15,
		{"b", "y"}: 5,
	})

	result, err := ChiSquare("v", rows, cols)
	require.NoError(t, err)

	assert.InDelta(t, 0, result.Statistic, 1e-9)
	assert.InDelta(t, 1, result.P, 1e-9)
}

func TestChiSquareDegreesOfFreedom(t *testing.T) {
	rows, cols := labelled(map[[2]string]int{
		{"none", "kept"}:           5,
		{"none", "cancelled"}:      5,
		{"breakfast", "kept"}:      5,
		{"breakfast", "cancelled"}: 5,
		{"half-set", "kept"}:       5,
		{"half-set", "cancelled"}:  5,
		{"full-set", "kept"}:       5,
		{"full-set", "cancelled"}:  5,
	})

	result, err := ChiSquare("meal_plan", rows, cols)
	require.NoError(t, err)
	assert.Equal(t, 3, result.DF)
}

func TestChiSquareRejectsDegenerateTable(t *testing.T) {
	_, err := ChiSquare("v", []string{"a", "a"}, []string{"x", "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2x2")
}
