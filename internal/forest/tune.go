package forest

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// tuneTolerance is how close to the sweep minimum a smaller candidate
// count must be to win: the choice prefers "good enough, simplest" over a
// strict argmin.
const tuneTolerance = 0.005

// SweepPoint records one candidate-predictor count and the out-of-bag
// error of a full fit with it.
type SweepPoint struct {
	MTry     int     `json:"mtry" yaml:"mtry"`
	OOBError float64 `json:"oob_error" yaml:"oob_error"`
}

// Tune refits the forest for each candidate mtry, reseeding before every
// fit so the sweep compares like with like, and returns the sweep results
// together with the chosen value: the smallest mtry whose error is within
// tuneTolerance of the sweep minimum.
func Tune(predictors []string, X [][]float64, y []int, classes []string, trees int, seed int64, candidates []int) ([]SweepPoint, int, error) {
	if len(candidates) == 0 {
		return nil, 0, fmt.Errorf("no candidate values to sweep")
	}

	sweep := make([]SweepPoint, 0, len(candidates))
	for _, mtry := range candidates {
		f, err := Grow(predictors, X, y, classes, Options{Trees: trees, MTry: mtry, Seed: seed})
		if err != nil {
			return nil, 0, fmt.Errorf("sweep fit with mtry=%d: %w", mtry, err)
		}
		sweep = append(sweep, SweepPoint{MTry: mtry, OOBError: f.OOBError().Overall})
	}

	minErr := sweep[0].OOBError
	for _, p := range sweep[1:] {
		if p.OOBError < minErr {
			minErr = p.OOBError
		}
	}

	chosen := sweep[0].MTry
	for _, p := range sweep {
		if p.OOBError <= minErr+tuneTolerance {
			chosen = p.MTry
			break
		}
	}

	log.Debug().
		Int("mtry", chosen).
		Float64("min_oob_error", minErr).
		Msg("Candidate-predictor sweep complete")

	return sweep, chosen, nil
}

// DefaultCandidates is the small integer range the sweep covers.
func DefaultCandidates(nPredictors int) []int {
	var out []int
	for m := 2; m <= 6 && m <= nPredictors; m++ {
		out = append(out, m)
	}
	if len(out) == 0 {
		out = []int{1}
	}
	return out
}
