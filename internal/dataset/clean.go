package dataset

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
)

// EURToUSD is the documented exchange rate applied once to room prices.
const EURToUSD = 1.0703

// ConvertEUR converts a euro amount to USD, rounded to cents.
func ConvertEUR(x float64) float64 {
	return math.Round(x*EURToUSD*100) / 100
}

// mealPlanLabels remaps the source meal-plan codes to readable levels.
var mealPlanLabels = map[string]string{
	"Meal Plan 1":  MealBreakfast,
	"Meal Plan 2":  MealHalfSet,
	"Meal Plan 3":  MealFullSet,
	"Not Selected": MealNone,
}

// outcomeLabels remaps the source booking status to the outcome levels.
var outcomeLabels = map[string]string{
	"Not_Canceled": OutcomeKept,
	"Canceled":     OutcomeCancelled,
}

// Clean renames the raw columns to their analysis names, remaps the
// meal-plan and outcome codes, and converts room prices from EUR to USD.
// The transformation is apply-once: passing an already-cleaned table is an
// error, so the currency conversion can never run twice.
func Clean(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := map[string]bool{}
	for _, n := range df.Names() {
		names[n] = true
	}
	if names[ColBetweenTime] || names[ColOutcome] {
		return dataframe.DataFrame{}, fmt.Errorf("table is already cleaned")
	}

	for _, r := range renames {
		if !names[r[0]] {
			return dataframe.DataFrame{}, fmt.Errorf("missing column %q", r[0])
		}
		df = df.Rename(r[1], r[0])
		if df.Error() != nil {
			return dataframe.DataFrame{}, fmt.Errorf("renaming %q: %w", r[0], df.Error())
		}
	}

	df = recode(df, ColMealPlan, mealPlanLabels)
	df = recode(df, ColOutcome, outcomeLabels)

	prices := df.Col(ColRoomPrice).Float()
	converted := make([]float64, len(prices))
	for i, p := range prices {
		converted[i] = ConvertEUR(p)
	}
	df = df.Mutate(series.New(converted, series.Float, ColRoomPrice))
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("converting room prices: %w", df.Error())
	}

	log.Debug().
		Int("rows", df.Nrow()).
		Float64("rate", EURToUSD).
		Msg("Dataset cleaned and recoded")

	return df, nil
}

// recode replaces the values of a string column according to labels,
// leaving unmapped values untouched.
func recode(df dataframe.DataFrame, col string, labels map[string]string) dataframe.DataFrame {
	values := df.Col(col).Records()
	out := make([]string, len(values))
	for i, v := range values {
		if mapped, ok := labels[v]; ok {
			out[i] = mapped
		} else {
			out[i] = v
		}
	}
	return df.Mutate(series.New(out, series.String, col))
}
