package dataset

import (
	"fmt"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog/log"
)

// Split holds the train/test partition of a subsample. The two dataframes
// are read-only views keyed by row membership in the source table; their
// index sets are disjoint and together cover the subsample.
type Split struct {
	Train      dataframe.DataFrame
	Test       dataframe.DataFrame
	TrainIndex []int
	TestIndex  []int
}

// Sample draws a subsample of size rows without replacement and partitions
// it into train and test by trainFrac. The generator is seeded immediately
// before drawing, so the row sets are fully determined by the seed.
func Sample(df dataframe.DataFrame, size int, trainFrac float64, seed int64) (Split, error) {
	if size <= 0 || size > df.Nrow() {
		return Split{}, fmt.Errorf("subsample size %d out of range for %d rows", size, df.Nrow())
	}
	if trainFrac <= 0 || trainFrac >= 1 {
		return Split{}, fmt.Errorf("train fraction %v must be in (0, 1)", trainFrac)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(df.Nrow())

	subsample := perm[:size]
	nTrain := int(float64(size) * trainFrac)

	split := Split{
		TrainIndex: subsample[:nTrain],
		TestIndex:  subsample[nTrain:],
	}

	split.Train = df.Subset(split.TrainIndex)
	if split.Train.Error() != nil {
		return Split{}, fmt.Errorf("selecting training rows: %w", split.Train.Error())
	}
	split.Test = df.Subset(split.TestIndex)
	if split.Test.Error() != nil {
		return Split{}, fmt.Errorf("selecting test rows: %w", split.Test.Error())
	}

	log.Debug().
		Int64("seed", seed).
		Int("train", len(split.TrainIndex)).
		Int("test", len(split.TestIndex)).
		Msg("Subsample drawn and split")

	return split, nil
}

// Matrix extracts the named columns as a row-major design matrix.
func Matrix(df dataframe.DataFrame, cols []string) [][]float64 {
	columns := make([][]float64, len(cols))
	for j, name := range cols {
		columns[j] = df.Col(name).Float()
	}
	rows := make([][]float64, df.Nrow())
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j := range cols {
			rows[i][j] = columns[j][i]
		}
	}
	return rows
}

// OutcomeBinary encodes the outcome column as 0 (kept) / 1 (cancelled),
// keeping "kept" as the reference level.
func OutcomeBinary(df dataframe.DataFrame) []float64 {
	labels := df.Col(ColOutcome).Records()
	y := make([]float64, len(labels))
	for i, l := range labels {
		if l == OutcomeCancelled {
			y[i] = 1
		}
	}
	return y
}
