package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSizes(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)
	cleaned, err := Clean(df)
	require.NoError(t, err)

	split, err := Sample(cleaned, 30, 0.7, 123)
	require.NoError(t, err)

	assert.Equal(t, 21, split.Train.Nrow())
	assert.Equal(t, 9, split.Test.Nrow())
	assert.Len(t, split.TrainIndex, 21)
	assert.Len(t, split.TestIndex, 9)
}

func TestSampleIsDeterministic(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)
	cleaned, err := Clean(df)
	require.NoError(t, err)

	a, err := Sample(cleaned, 30, 0.7, 123)
	require.NoError(t, err)
	b, err := Sample(cleaned, 30, 0.7, 123)
	require.NoError(t, err)

	assert.Equal(t, a.TrainIndex, b.TrainIndex)
	assert.Equal(t, a.TestIndex, b.TestIndex)

	// A different seed draws different rows.
	c, err := Sample(cleaned, 30, 0.7, 321)
	require.NoError(t, err)
	assert.NotEqual(t, a.TrainIndex, c.TrainIndex)
}

func TestSamplePartitionIsDisjoint(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)
	cleaned, err := Clean(df)
	require.NoError(t, err)

	split, err := Sample(cleaned, 30, 0.7, 123)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, i := range split.TrainIndex {
		seen[i] = true
	}
	for _, i := range split.TestIndex {
		assert.False(t, seen[i], "row %d is in both partitions", i)
		seen[i] = true
	}
	assert.Len(t, seen, 30)
}

func TestSampleRejectsBadArguments(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)
	cleaned, err := Clean(df)
	require.NoError(t, err)

	_, err = Sample(cleaned, 0, 0.7, 123)
	assert.Error(t, err)

	_, err = Sample(cleaned, cleaned.Nrow()+1, 0.7, 123)
	assert.Error(t, err)

	_, err = Sample(cleaned, 30, 1.0, 123)
	assert.Error(t, err)

	_, err = Sample(cleaned, 30, 0, 123)
	assert.Error(t, err)
}

func TestMatrix(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	X := Matrix(df, []string{ColAdults, ColRoomPrice})
	require.Len(t, X, 5)
	assert.Equal(t, []float64{2, 69.57}, X[0])
	assert.Equal(t, []float64{1, ConvertEUR(60)}, X[2])
}

func TestOutcomeBinary(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 1, 1, 0}, OutcomeBinary(df))
}
