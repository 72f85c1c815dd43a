// Package forest implements a bagged ensemble of classification trees with
// out-of-bag error tracking, permutation variable importance, and a small
// hyperparameter sweep over the candidate-predictor count per split.
package forest

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"
)

// Options configures a forest fit.
type Options struct {
	Trees int   // ensemble size
	MTry  int   // candidate predictors offered at each split
	Seed  int64 // generator seed; fits with equal seeds are identical
}

// ErrorPoint is the cumulative out-of-bag error after a given tree count.
type ErrorPoint struct {
	Trees    int       `json:"trees" yaml:"trees"`
	Overall  float64   `json:"overall" yaml:"overall"`
	PerClass []float64 `json:"per_class" yaml:"per_class"`
}

// Importance is the importance of one predictor across the ensemble.
type Importance struct {
	Predictor            string  `json:"predictor" yaml:"predictor"`
	MeanDecreaseAccuracy float64 `json:"mean_decrease_accuracy" yaml:"mean_decrease_accuracy"`
	MeanDecreaseGini     float64 `json:"mean_decrease_gini" yaml:"mean_decrease_gini"`
}

// Forest is a fitted ensemble.
type Forest struct {
	Predictors []string     `json:"predictors" yaml:"predictors"`
	Classes    []string     `json:"classes" yaml:"classes"`
	MTry       int          `json:"mtry" yaml:"mtry"`
	OOBCurve   []ErrorPoint `json:"oob_curve" yaml:"oob_curve"`
	Importance []Importance `json:"importance" yaml:"importance"`

	trees []*node
}

// Grow fits the ensemble by bootstrap aggregation over the training rows.
// X is row-major; y holds class indices into classes. The generator is
// seeded from opts.Seed immediately before the first bootstrap draw, so the
// whole fit is determined by the seed.
func Grow(predictors []string, X [][]float64, y []int, classes []string, opts Options) (*Forest, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("training data has %d rows but %d labels", n, len(y))
	}
	if len(predictors) == 0 || len(predictors) != len(X[0]) {
		return nil, fmt.Errorf("predictor names (%d) do not match design columns (%d)", len(predictors), len(X[0]))
	}
	if opts.Trees <= 0 {
		return nil, fmt.Errorf("tree count must be positive, got %d", opts.Trees)
	}
	if opts.MTry < 1 || opts.MTry > len(predictors) {
		return nil, fmt.Errorf("mtry %d out of range [1, %d]", opts.MTry, len(predictors))
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("need at least two classes, got %d", len(classes))
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	nClasses := len(classes)

	f := &Forest{
		Predictors: predictors,
		Classes:    classes,
		MTry:       opts.MTry,
		trees:      make([]*node, 0, opts.Trees),
		OOBCurve:   make([]ErrorPoint, 0, opts.Trees),
	}

	// Cumulative OOB votes per row, updated after every tree.
	votes := make([][]int, n)
	for i := range votes {
		votes[i] = make([]int, nClasses)
	}

	giniTotals := make([]float64, len(predictors))
	accDrops := make([]float64, len(predictors))
	inBag := make([]bool, n)
	sample := make([]int, n)
	permuted := make([]float64, 0, n)

	for b := 0; b < opts.Trees; b++ {
		for i := range inBag {
			inBag[i] = false
		}
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			sample[i] = j
			inBag[j] = true
		}

		builder := &treeBuilder{
			X:            X,
			y:            y,
			nClasses:     nClasses,
			mtry:         opts.MTry,
			rng:          rng,
			giniDecrease: giniTotals,
		}
		tree := builder.build(append([]int(nil), sample...))
		f.trees = append(f.trees, tree)

		oob := make([]int, 0, n/3)
		for i := 0; i < n; i++ {
			if !inBag[i] {
				oob = append(oob, i)
			}
		}
		for _, i := range oob {
			votes[i][tree.predict(X[i])]++
		}

		f.OOBCurve = append(f.OOBCurve, oobErrorPoint(b+1, votes, y, nClasses))

		// Permutation importance: the accuracy drop when one predictor's
		// values are shuffled among this tree's out-of-bag rows.
		if len(oob) > 1 {
			base := treeError(tree, X, y, oob)
			for p := range predictors {
				permuted = permuted[:0]
				for _, i := range oob {
					permuted = append(permuted, X[i][p])
				}
				rng.Shuffle(len(permuted), func(a, z int) {
					permuted[a], permuted[z] = permuted[z], permuted[a]
				})

				wrong := 0
				row := make([]float64, len(predictors))
				for k, i := range oob {
					copy(row, X[i])
					row[p] = permuted[k]
					if tree.predict(row) != y[i] {
						wrong++
					}
				}
				accDrops[p] += float64(wrong)/float64(len(oob)) - base
			}
		}
	}

	f.Importance = make([]Importance, len(predictors))
	for p, name := range predictors {
		f.Importance[p] = Importance{
			Predictor:            name,
			MeanDecreaseAccuracy: accDrops[p] / float64(opts.Trees),
			MeanDecreaseGini:     giniTotals[p] / float64(opts.Trees),
		}
	}

	final := f.OOBCurve[len(f.OOBCurve)-1]
	log.Debug().
		Int("trees", opts.Trees).
		Int("mtry", opts.MTry).
		Float64("oob_error", final.Overall).
		Msg("Forest grown")

	return f, nil
}

// OOBError returns the out-of-bag error at the full ensemble size.
func (f *Forest) OOBError() ErrorPoint {
	return f.OOBCurve[len(f.OOBCurve)-1]
}

// Predict classifies each row by majority vote over the ensemble.
func (f *Forest) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	counts := make([]int, len(f.Classes))
	for i, row := range X {
		for c := range counts {
			counts[c] = 0
		}
		for _, t := range f.trees {
			counts[t.predict(row)]++
		}
		best := 0
		for c := 1; c < len(counts); c++ {
			if counts[c] > counts[best] {
				best = c
			}
		}
		out[i] = best
	}
	return out
}

func oobErrorPoint(trees int, votes [][]int, y []int, nClasses int) ErrorPoint {
	wrong := 0
	voted := 0
	classWrong := make([]int, nClasses)
	classTotal := make([]int, nClasses)

	for i, v := range votes {
		best, total := 0, 0
		for c, n := range v {
			total += n
			if n > v[best] {
				best = c
			}
		}
		if total == 0 {
			continue // row has not been out of bag yet
		}
		voted++
		classTotal[y[i]]++
		if best != y[i] {
			wrong++
			classWrong[y[i]]++
		}
	}

	point := ErrorPoint{Trees: trees, PerClass: make([]float64, nClasses)}
	if voted > 0 {
		point.Overall = float64(wrong) / float64(voted)
	}
	for c := 0; c < nClasses; c++ {
		if classTotal[c] > 0 {
			point.PerClass[c] = float64(classWrong[c]) / float64(classTotal[c])
		}
	}
	return point
}

func treeError(t *node, X [][]float64, y []int, idx []int) float64 {
	wrong := 0
	for _, i := range idx {
		if t.predict(X[i]) != y[i] {
			wrong++
		}
	}
	return float64(wrong) / float64(len(idx))
}
