package dataset

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/staylens/staylens/internal/testhelper"
)

const rawSample = `Booking_ID,no_of_adults,no_of_children,no_of_weekend_nights,no_of_week_nights,type_of_meal_plan,required_car_parking_space,room_type_reserved,lead_time,arrival_year,arrival_month,arrival_date,market_segment_type,repeated_guest,no_of_previous_cancellations,no_of_previous_bookings_not_canceled,avg_price_per_room,no_of_special_requests,booking_status
INN00001,2,0,1,2,Meal Plan 1,0,Room_Type 1,224,2017,10,2,Offline,0,0,0,65.00,0,Not_Canceled
INN00002,2,0,2,3,Not Selected,0,Room_Type 1,5,2018,11,6,Online,0,0,0,106.68,1,Not_Canceled
INN00003,1,0,2,1,Meal Plan 1,0,Room_Type 1,1,2018,2,28,Online,0,0,0,60.00,0,Canceled
INN00004,2,0,0,2,Meal Plan 2,0,Room_Type 1,211,2018,5,20,Online,0,0,0,100.00,0,Canceled
INN00005,2,1,1,1,Meal Plan 3,1,Room_Type 4,48,2018,4,11,Online,1,0,2,94.50,2,Not_Canceled
`

func rawFrame(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(rawSample),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	)
	require.NoError(t, df.Error())
	return df
}

func TestConvertEUR(t *testing.T) {
	tests := []struct {
		eur float64
		usd float64
	}{
		{0, 0},
		{100, 107.03},
		{65, 69.57},
		{106.68, 114.18},
		{94.5, 101.14},
	}

	for _, test := range tests {
		assert.InDelta(t, test.usd, ConvertEUR(test.eur), 1e-9)
	}
}

func TestCleanRenamesColumns(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	assert.Equal(t, CleanHeader(), df.Names())
	assert.Equal(t, 5, df.Nrow())
}

func TestCleanRecodesMealPlan(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	got := df.Col(ColMealPlan).Records()
	assert.Equal(t, []string{MealBreakfast, MealNone, MealBreakfast, MealHalfSet, MealFullSet}, got)
}

func TestCleanRecodesOutcome(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	got := df.Col(ColOutcome).Records()
	assert.Equal(t, []string{OutcomeKept, OutcomeKept, OutcomeCancelled, OutcomeCancelled, OutcomeKept}, got)
}

func TestCleanConvertsPricesOnce(t *testing.T) {
	df, err := Clean(rawFrame(t))
	require.NoError(t, err)

	prices := df.Col(ColRoomPrice).Float()
	assert.InDelta(t, 69.57, prices[0], 1e-9)
	assert.InDelta(t, 114.18, prices[1], 1e-9)

	// A second pass must refuse rather than convert twice.
	_, err = Clean(df)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already cleaned")
}

func TestCleanMissingColumn(t *testing.T) {
	df := rawFrame(t)
	df = df.Drop("lead_time")
	require.NoError(t, df.Error())

	_, err := Clean(df)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead_time")
}
