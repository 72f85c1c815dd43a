package dataset

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
)

// Load reads the bookings CSV into a dataframe and verifies that the header
// matches the expected schema. The "Not Applicable" sentinel is mapped to
// missing at read time; Verify reports any missingness that results.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{NotApplicable, "NA", ""}),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading dataset %s: %w", path, df.Error())
	}

	if err := verifyHeader(df); err != nil {
		return dataframe.DataFrame{}, err
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataset %s contains no rows", path)
	}

	log.Debug().
		Str("path", path).
		Int("rows", df.Nrow()).
		Int("columns", df.Ncol()).
		Msg("Dataset loaded")

	return df, nil
}

func verifyHeader(df dataframe.DataFrame) error {
	want := RawHeader()
	got := df.Names()
	if len(got) != len(want) {
		return fmt.Errorf("dataset has %d columns, expected %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i] != name {
			return fmt.Errorf("dataset column %d is %q, expected %q", i+1, got[i], name)
		}
	}
	return nil
}

// Verify checks the data invariants on a cleaned table and returns one
// message per violation. The invariants are verified, not enforced: callers
// decide whether a violation is fatal.
func Verify(df dataframe.DataFrame) []string {
	var violations []string

	for _, name := range df.Names() {
		if df.Col(name).HasNaN() {
			violations = append(violations, fmt.Sprintf("column %q contains missing values", name))
		}
	}

	for _, name := range []string{ColBetweenTime, ColRoomPrice} {
		if min := df.Col(name).Min(); min < 0 {
			violations = append(violations, fmt.Sprintf("column %q contains negative values (min %v)", name, min))
		}
	}

	levels := map[string]bool{}
	for _, v := range df.Col(ColOutcome).Records() {
		levels[v] = true
	}
	if len(levels) != 2 || !levels[OutcomeKept] || !levels[OutcomeCancelled] {
		violations = append(violations, fmt.Sprintf("outcome must have exactly the levels %q and %q", OutcomeKept, OutcomeCancelled))
	}

	return violations
}
