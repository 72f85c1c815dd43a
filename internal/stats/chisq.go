package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ContingencyTable is the observed cross-tabulation of two label slices.
type ContingencyTable struct {
	RowLevels []string `json:"row_levels" yaml:"row_levels"`
	ColLevels []string `json:"col_levels" yaml:"col_levels"`
	Counts    [][]int  `json:"counts" yaml:"counts"`
}

// ChiSquareResult is a Pearson chi-square test of independence, computed
// without continuity correction.
type ChiSquareResult struct {
	Variable  string           `json:"variable" yaml:"variable"`
	Table     ContingencyTable `json:"table" yaml:"table"`
	Statistic float64          `json:"statistic" yaml:"statistic"`
	DF        int              `json:"df" yaml:"df"`
	P         float64          `json:"p" yaml:"p"`
}

// Crosstab builds the contingency table of rows × cols. Levels are sorted
// for stable output.
func Crosstab(rows, cols []string) (ContingencyTable, error) {
	if len(rows) != len(cols) {
		return ContingencyTable{}, fmt.Errorf("crosstab: %d row labels vs %d col labels", len(rows), len(cols))
	}

	rowLevels := levels(rows)
	colLevels := levels(cols)
	rowIdx := index(rowLevels)
	colIdx := index(colLevels)

	counts := make([][]int, len(rowLevels))
	for i := range counts {
		counts[i] = make([]int, len(colLevels))
	}
	for i := range rows {
		counts[rowIdx[rows[i]]][colIdx[cols[i]]]++
	}

	return ContingencyTable{RowLevels: rowLevels, ColLevels: colLevels, Counts: counts}, nil
}

// ChiSquare runs the Pearson test of independence on the rows × cols table.
func ChiSquare(variable string, rows, cols []string) (ChiSquareResult, error) {
	table, err := Crosstab(rows, cols)
	if err != nil {
		return ChiSquareResult{}, err
	}
	if len(table.RowLevels) < 2 || len(table.ColLevels) < 2 {
		return ChiSquareResult{}, fmt.Errorf("chi-square for %s needs at least a 2x2 table", variable)
	}

	nRows, nCols := len(table.RowLevels), len(table.ColLevels)
	rowTotals := make([]float64, nRows)
	colTotals := make([]float64, nCols)
	total := 0.0
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			c := float64(table.Counts[i][j])
			rowTotals[i] += c
			colTotals[j] += c
			total += c
		}
	}

	statistic := 0.0
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			expected := rowTotals[i] * colTotals[j] / total
			if expected == 0 {
				return ChiSquareResult{}, fmt.Errorf("chi-square for %s: empty margin in contingency table", variable)
			}
			d := float64(table.Counts[i][j]) - expected
			statistic += d * d / expected
		}
	}

	df := (nRows - 1) * (nCols - 1)
	dist := distuv.ChiSquared{K: float64(df)}

	return ChiSquareResult{
		Variable:  variable,
		Table:     table,
		Statistic: statistic,
		DF:        df,
		P:         dist.Survival(statistic),
	}, nil
}

func levels(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func index(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[l] = i
	}
	return idx
}

func sqrt(x float64) float64 { return math.Sqrt(x) }

func abs(x float64) float64 { return math.Abs(x) }
