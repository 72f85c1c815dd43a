package logit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/staylens/staylens/internal/testhelper"
)

// simulate draws n rows where P(y=1) = sigmoid(-0.5 + 1.2·x1) and x2 is noise.
func simulate(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1 := rng.NormFloat64()
		x2 := rng.NormFloat64()
		X[i] = []float64{x1, x2}
		if rng.Float64() < sigmoid(-0.5+1.2*x1) {
			y[i] = 1
		}
	}
	return X, y
}

func TestFitRecoversCoefficients(t *testing.T) {
	X, y := simulate(2000, 42)

	model, err := Fit([]string{"x1", "x2"}, X, y)
	require.NoError(t, err)
	require.Len(t, model.Coefficients, 3)

	assert.Equal(t, "(intercept)", model.Coefficients[0].Name)
	assert.Equal(t, "x1", model.Coefficients[1].Name)
	assert.Equal(t, "x2", model.Coefficients[2].Name)

	assert.InDelta(t, -0.5, model.Coefficients[0].Estimate, 0.3)
	assert.InDelta(t, 1.2, model.Coefficients[1].Estimate, 0.3)
	assert.InDelta(t, 0.0, model.Coefficients[2].Estimate, 0.3)
	assert.Less(t, model.Iterations, 25)
}

func TestFitWaldSummaries(t *testing.T) {
	X, y := simulate(2000, 42)

	model, err := Fit([]string{"x1", "x2"}, X, y)
	require.NoError(t, err)

	for _, c := range model.Coefficients {
		assert.Greater(t, c.StdErr, 0.0)
		assert.InDelta(t, math.Exp(c.Estimate), c.OddsRatio, 1e-12)
		assert.InDelta(t, math.Exp(c.Estimate-1.96*c.StdErr), c.CILower, 1e-12)
		assert.InDelta(t, math.Exp(c.Estimate+1.96*c.StdErr), c.CIUpper, 1e-12)
		assert.Less(t, c.CILower, c.OddsRatio)
		assert.Greater(t, c.CIUpper, c.OddsRatio)
		assert.GreaterOrEqual(t, c.P, 0.0)
		assert.LessOrEqual(t, c.P, 1.0)
	}

	// The signal predictor is overwhelmingly significant; the noise one is not.
	assert.Less(t, model.Coefficients[1].P, 0.001)
	assert.Greater(t, model.Coefficients[2].P, 0.001)
}

func TestFitIsDeterministic(t *testing.T) {
	X, y := simulate(500, 7)

	a, err := Fit([]string{"x1", "x2"}, X, y)
	require.NoError(t, err)
	b, err := Fit([]string{"x1", "x2"}, X, y)
	require.NoError(t, err)

	assert.Equal(t, a.Coefficients, b.Coefficients)
	assert.Equal(t, a.Iterations, b.Iterations)
}

func TestFitRejectsRankDeficientDesign(t *testing.T) {
	X, y := simulate(200, 7)
	for i := range X {
		X[i] = append(X[i], 0) // a constant-zero column cannot be estimated
	}

	_, err := Fit([]string{"x1", "x2", "zero"}, X, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank deficient")
}

func TestFitRejectsDegenerateResponse(t *testing.T) {
	X, _ := simulate(100, 7)
	y := make([]float64, 100) // all kept

	_, err := Fit([]string{"x1", "x2"}, X, y)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single level")
}

func TestFitRejectsShapeMismatch(t *testing.T) {
	X, y := simulate(50, 7)

	_, err := Fit([]string{"x1", "x2"}, X, y[:49])
	assert.Error(t, err)

	_, err = Fit([]string{"x1", "x2"}, X[:3], y[:3])
	assert.Error(t, err)
}

func TestClassifyAndAccuracy(t *testing.T) {
	X, y := simulate(2000, 42)
	model, err := Fit([]string{"x1", "x2"}, X, y)
	require.NoError(t, err)

	probs := model.Probabilities(X)
	classes := model.Classify(X)
	require.Len(t, classes, len(X))
	for i, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		if p >= 0.5 {
			assert.Equal(t, 1, classes[i])
		} else {
			assert.Equal(t, 0, classes[i])
		}
	}

	// In-sample accuracy must beat always guessing the majority class.
	majority := 0.0
	for _, v := range y {
		majority += v
	}
	majority = math.Max(majority, float64(len(y))-majority) / float64(len(y))
	assert.Greater(t, Accuracy(classes, y), majority-0.05)
}

func TestAccuracyEmpty(t *testing.T) {
	assert.Zero(t, Accuracy(nil, nil))
}
