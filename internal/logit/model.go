// Package logit fits a binomial generalized linear model by iteratively
// reweighted least squares and derives the Wald summaries (odds ratios and
// 95% confidence intervals) the report presents.
package logit

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	maxIterations = 25
	tolerance     = 1e-8

	// waldZ is the 97.5% normal quantile used for the 95% interval,
	// matching exp(coef ± 1.96·SE) exactly.
	waldZ = 1.96
)

// Coefficient is one fitted model term with its Wald-type summaries.
type Coefficient struct {
	Name      string  `json:"name" yaml:"name"`
	Estimate  float64 `json:"estimate" yaml:"estimate"`
	StdErr    float64 `json:"std_err" yaml:"std_err"`
	Z         float64 `json:"z" yaml:"z"`
	P         float64 `json:"p" yaml:"p"`
	OddsRatio float64 `json:"odds_ratio" yaml:"odds_ratio"`
	CILower   float64 `json:"ci_lower" yaml:"ci_lower"`
	CIUpper   float64 `json:"ci_upper" yaml:"ci_upper"`
}

// Model is a fitted binomial GLM. Coefficients[0] is the intercept.
type Model struct {
	Predictors   []string      `json:"predictors" yaml:"predictors"`
	Coefficients []Coefficient `json:"coefficients" yaml:"coefficients"`
	Iterations   int           `json:"iterations" yaml:"iterations"`
}

// Fit estimates the model of a binary response on the given predictors.
// X is row-major without an intercept column; y holds 0/1 responses with 1
// the "cancelled" class. Fitting fails on rank-deficient designs and on
// degenerate responses; neither is recovered from.
func Fit(predictors []string, X [][]float64, y []float64) (*Model, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("design has %d rows but response has %d", n, len(y))
	}
	p := len(predictors) + 1
	if n <= p {
		return nil, fmt.Errorf("%d rows cannot support %d model terms", n, p)
	}

	ones, zeros := 0, 0
	for _, v := range y {
		if v == 1 {
			ones++
		} else {
			zeros++
		}
	}
	if ones == 0 || zeros == 0 {
		return nil, fmt.Errorf("response has a single level; both outcome classes must appear in the training rows")
	}

	// Design matrix with a leading intercept column.
	design := mat.NewDense(n, p, nil)
	for i, row := range X {
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}

	beta := make([]float64, p)
	eta := make([]float64, n)
	var chol mat.Cholesky

	iterations := 0
	for iter := 0; iter < maxIterations; iter++ {
		iterations = iter + 1

		xtwx := mat.NewSymDense(p, nil)
		xtwz := mat.NewVecDense(p, nil)
		for i := 0; i < n; i++ {
			eta[i] = 0
			for j := 0; j < p; j++ {
				eta[i] += design.At(i, j) * beta[j]
			}
			mu := sigmoid(eta[i])
			w := mu * (1 - mu)
			if w < 1e-10 {
				w = 1e-10
			}
			z := eta[i] + (y[i]-mu)/w
			for j := 0; j < p; j++ {
				xj := design.At(i, j)
				xtwz.SetVec(j, xtwz.AtVec(j)+w*xj*z)
				for k := 0; k <= j; k++ {
					xtwx.SetSym(j, k, xtwx.At(j, k)+w*xj*design.At(i, k))
				}
			}
		}

		if ok := chol.Factorize(xtwx); !ok {
			return nil, fmt.Errorf("design matrix is rank deficient; check for collinear predictors")
		}

		next := mat.NewVecDense(p, nil)
		if err := chol.SolveVecTo(next, xtwz); err != nil {
			return nil, fmt.Errorf("solving weighted least squares: %w", err)
		}

		delta := 0.0
		for j := 0; j < p; j++ {
			delta = math.Max(delta, math.Abs(next.AtVec(j)-beta[j]))
			beta[j] = next.AtVec(j)
		}
		if delta < tolerance {
			break
		}
	}

	// Standard errors from the inverse of the final information matrix.
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("inverting information matrix: %w", err)
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	names := append([]string{"(intercept)"}, predictors...)
	coefficients := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(cov.At(j, j))
		z := beta[j] / se
		coefficients[j] = Coefficient{
			Name:      names[j],
			Estimate:  beta[j],
			StdErr:    se,
			Z:         z,
			P:         2 * normal.Survival(math.Abs(z)),
			OddsRatio: math.Exp(beta[j]),
			CILower:   math.Exp(beta[j] - waldZ*se),
			CIUpper:   math.Exp(beta[j] + waldZ*se),
		}
	}

	log.Debug().
		Int("iterations", iterations).
		Int("terms", p).
		Int("rows", n).
		Msg("Logistic model fitted")

	return &Model{
		Predictors:   predictors,
		Coefficients: coefficients,
		Iterations:   iterations,
	}, nil
}

// Probabilities returns P(cancelled) for each row of X.
func (m *Model) Probabilities(X [][]float64) []float64 {
	probs := make([]float64, len(X))
	for i, row := range X {
		eta := m.Coefficients[0].Estimate
		for j, v := range row {
			eta += m.Coefficients[j+1].Estimate * v
		}
		probs[i] = sigmoid(eta)
	}
	return probs
}

// Classify thresholds predicted probabilities at 0.5.
func (m *Model) Classify(X [][]float64) []int {
	probs := m.Probabilities(X)
	classes := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			classes[i] = 1
		}
	}
	return classes
}

// Accuracy is the fraction of predictions matching the 0/1 response.
func Accuracy(predicted []int, y []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	matches := 0
	for i, c := range predicted {
		if float64(c) == y[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(predicted))
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
