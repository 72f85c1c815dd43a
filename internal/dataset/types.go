package dataset

// Analysis column names. The loader verifies the raw CSV header and Clean
// renames every column to one of these.
const (
	ColBookingID       = "booking_id"
	ColAdults          = "adults"
	ColChildren        = "children"
	ColWeekendNights   = "weekend_nights"
	ColWeekNights      = "week_nights"
	ColMealPlan        = "meal_plan"
	ColParking         = "parking"
	ColRoomType        = "room_type"
	ColBetweenTime     = "between_time"
	ColArrivalYear     = "arrival_year"
	ColArrivalMonth    = "arrival_month"
	ColArrivalDate     = "arrival_date"
	ColMarketSegment   = "market_segment"
	ColRepeatedGuest   = "repeated_guest"
	ColPriorCancelled  = "prior_cancellations"
	ColPriorKept       = "prior_kept"
	ColRoomPrice       = "room_price"
	ColSpecialRequests = "special_requests"
	ColOutcome         = "outcome"
)

// Outcome levels. OutcomeKept is the statistical reference level.
const (
	OutcomeKept      = "kept"
	OutcomeCancelled = "cancelled"
)

// Meal plan levels after recoding.
const (
	MealNone      = "none"
	MealBreakfast = "breakfast-only"
	MealHalfSet   = "half-set"
	MealFullSet   = "full-set"
)

// NotApplicable is the text sentinel the source file uses for absent
// categorical values. It is a level in its own right, not missing data.
const NotApplicable = "Not Applicable"

// renames maps each raw CSV column to its analysis name, in header order.
var renames = [][2]string{
	{"Booking_ID", ColBookingID},
	{"no_of_adults", ColAdults},
	{"no_of_children", ColChildren},
	{"no_of_weekend_nights", ColWeekendNights},
	{"no_of_week_nights", ColWeekNights},
	{"type_of_meal_plan", ColMealPlan},
	{"required_car_parking_space", ColParking},
	{"room_type_reserved", ColRoomType},
	{"lead_time", ColBetweenTime},
	{"arrival_year", ColArrivalYear},
	{"arrival_month", ColArrivalMonth},
	{"arrival_date", ColArrivalDate},
	{"market_segment_type", ColMarketSegment},
	{"repeated_guest", ColRepeatedGuest},
	{"no_of_previous_cancellations", ColPriorCancelled},
	{"no_of_previous_bookings_not_canceled", ColPriorKept},
	{"avg_price_per_room", ColRoomPrice},
	{"no_of_special_requests", ColSpecialRequests},
	{"booking_status", ColOutcome},
}

// RawHeader returns the expected raw CSV column names in order.
func RawHeader() []string {
	cols := make([]string, len(renames))
	for i, r := range renames {
		cols[i] = r[0]
	}
	return cols
}

// CleanHeader returns the analysis column names in raw-header order.
func CleanHeader() []string {
	cols := make([]string, len(renames))
	for i, r := range renames {
		cols[i] = r[1]
	}
	return cols
}

// Booking is one hotel reservation row after cleaning. The struct is what
// `staylens schema` reflects over; the pipeline itself works on the
// dataframe representation.
type Booking struct {
	BookingID       string  `json:"booking_id" jsonschema:"description=Reservation identifier"`
	Adults          int     `json:"adults" jsonschema:"minimum=0"`
	Children        int     `json:"children" jsonschema:"minimum=0"`
	WeekendNights   int     `json:"weekend_nights" jsonschema:"minimum=0"`
	WeekNights      int     `json:"week_nights" jsonschema:"minimum=0"`
	MealPlan        string  `json:"meal_plan" jsonschema:"enum=none,enum=breakfast-only,enum=half-set,enum=full-set"`
	Parking         int     `json:"parking" jsonschema:"enum=0,enum=1"`
	RoomType        string  `json:"room_type"`
	BetweenTime     int     `json:"between_time" jsonschema:"minimum=0,description=Days between reservation and arrival"`
	ArrivalYear     int     `json:"arrival_year"`
	ArrivalMonth    int     `json:"arrival_month" jsonschema:"minimum=1,maximum=12"`
	ArrivalDate     int     `json:"arrival_date" jsonschema:"minimum=1,maximum=31"`
	MarketSegment   string  `json:"market_segment"`
	RepeatedGuest   int     `json:"repeated_guest" jsonschema:"enum=0,enum=1"`
	PriorCancelled  int     `json:"prior_cancellations" jsonschema:"minimum=0"`
	PriorKept       int     `json:"prior_kept" jsonschema:"minimum=0"`
	RoomPrice       float64 `json:"room_price" jsonschema:"minimum=0,description=Average price per room in USD"`
	SpecialRequests int     `json:"special_requests" jsonschema:"minimum=0"`
	Outcome         string  `json:"outcome" jsonschema:"enum=kept,enum=cancelled"`
}
