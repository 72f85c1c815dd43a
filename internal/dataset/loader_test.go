package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRecords(t *testing.T, records [][]string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords(records)
	require.NoError(t, df.Error())
	return df
}

func TestLoad(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)

	assert.Equal(t, 40, df.Nrow())
	assert.Equal(t, RawHeader(), df.Names())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does_not_exist.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening dataset")
}

func TestLoadRejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "id,lead_time,booking_status\n1,10,Canceled\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "columns")
}

func TestLoadRejectsReorderedHeader(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)

	// Swap the first two column names, keeping the column count intact.
	swapped := []byte("no_of_adults,Booking_ID")
	rest := raw[len("Booking_ID,no_of_adults"):]
	path := filepath.Join(t.TempDir(), "reordered.csv")
	require.NoError(t, os.WriteFile(path, append(swapped, rest...), 0644))

	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Booking_ID"`)
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	header := ""
	for i, name := range RawHeader() {
		if i > 0 {
			header += ","
		}
		header += name
	}
	require.NoError(t, os.WriteFile(path, []byte(header+"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")
}

func TestVerifyCleanFixture(t *testing.T) {
	df, err := Load(filepath.Join("testdata", "bookings.csv"))
	require.NoError(t, err)
	cleaned, err := Clean(df)
	require.NoError(t, err)

	assert.Empty(t, Verify(cleaned))
}

func TestVerifyReportsViolations(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	records := df.Records()
	// Corrupt one row: negative lead time and a third outcome level.
	header := records[0]
	for j, name := range header {
		switch name {
		case ColBetweenTime:
			records[1][j] = "-3"
		case ColOutcome:
			records[1][j] = "maybe"
		}
	}
	corrupted := loadRecords(t, records)

	violations := Verify(corrupted)
	assert.Len(t, violations, 2)
	assert.Contains(t, violations[0], ColBetweenTime)
	assert.Contains(t, violations[1], "outcome")
}
