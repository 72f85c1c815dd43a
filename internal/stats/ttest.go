// Package stats provides the hypothesis tests the analysis reports:
// Welch two-sample t-tests for continuous predictors and a Pearson
// chi-square test of independence for categorical ones. The tests are
// read-only diagnostics; no statistical assumptions are checked.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Group summarises one side of a two-sample comparison.
type Group struct {
	Label string  `json:"label" yaml:"label"`
	N     int     `json:"n" yaml:"n"`
	Mean  float64 `json:"mean" yaml:"mean"`
	SD    float64 `json:"sd" yaml:"sd"`
}

// TTestResult is a Welch two-sample t-test outcome.
type TTestResult struct {
	Variable string  `json:"variable" yaml:"variable"`
	GroupA   Group   `json:"group_a" yaml:"group_a"`
	GroupB   Group   `json:"group_b" yaml:"group_b"`
	T        float64 `json:"t" yaml:"t"`
	DF       float64 `json:"df" yaml:"df"`
	P        float64 `json:"p" yaml:"p"`
}

// WelchTTest compares the means of two samples without assuming equal
// variances, using the Welch-Satterthwaite degrees of freedom.
func WelchTTest(variable, labelA, labelB string, a, b []float64) (TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("t-test for %s needs at least 2 observations per group (got %d and %d)", variable, len(a), len(b))
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	nA, nB := float64(len(a)), float64(len(b))

	seA := varA / nA
	seB := varB / nB
	se := seA + seB
	if se == 0 {
		return TTestResult{}, fmt.Errorf("t-test for %s: both groups have zero variance", variable)
	}

	t := (meanA - meanB) / sqrt(se)
	df := se * se / (seA*seA/(nA-1) + seB*seB/(nB-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(abs(t))

	return TTestResult{
		Variable: variable,
		GroupA:   Group{Label: labelA, N: len(a), Mean: meanA, SD: sqrt(varA)},
		GroupB:   Group{Label: labelB, N: len(b), Mean: meanB, SD: sqrt(varB)},
		T:        t,
		DF:       df,
		P:        p,
	}, nil
}
