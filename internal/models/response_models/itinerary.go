package response_models

// Itinerary is the canonical parsed form of a generated trip plan. The
// JSON keys mirror what the model is prompted to return so a validated
// model reply unmarshals straight into it.
type Itinerary struct {
	TripSummary          TripSummaryInfo    `json:"trip_summary"`
	DailyItineraries     []DayItinerary     `json:"daily_itineraries"`
	AccommodationSummary map[string]any     `json:"accommodation_summary,omitempty"`
	TransportSummary     map[string]any     `json:"transport_summary,omitempty"`
	CostBreakdown        map[string]float64 `json:"cost_breakdown"`
	PackingEssentials    []string           `json:"packing_essentials,omitempty"`
	LocalTips            []string           `json:"local_tips,omitempty"`
	EmergencyContacts    map[string]string  `json:"emergency_contacts,omitempty"`
	TotalEstimatedCost   float64            `json:"total_estimated_cost"`
	BufferAmount         float64            `json:"buffer_amount,omitempty"`
	BudgetAdjusted       bool               `json:"budget_adjusted,omitempty"`
	FallbackMode         bool               `json:"fallback_mode,omitempty"`
	Message              string             `json:"message,omitempty"`
}

type TripSummaryInfo struct {
	Destination   string   `json:"destination"`
	DurationDays  int      `json:"duration_days"`
	TotalBudget   float64  `json:"total_budget"`
	Themes        []string `json:"themes,omitempty"`
	KeyHighlights []string `json:"key_highlights,omitempty"`
}

type DayItinerary struct {
	DayNumber     int            `json:"day_number"`
	Date          string         `json:"date"`
	DayTheme      string         `json:"day_theme,omitempty"`
	Activities    []Activity     `json:"activities"`
	Meals         []Meal         `json:"meals,omitempty"`
	Accommodation map[string]any `json:"accommodation,omitempty"`
	Transport     []TransportLeg `json:"transport,omitempty"`
	DayTotalCost  float64        `json:"day_total_cost"`
}

type Activity struct {
	ActivityID      string           `json:"activity_id,omitempty"`
	TimeSlot        string           `json:"time_slot"`
	Name            string           `json:"activity_name"`
	Description     string           `json:"description,omitempty"`
	Location        ActivityLocation `json:"location"`
	DurationHours   float64          `json:"duration_hours,omitempty"`
	CostPerPerson   float64          `json:"cost_per_person"`
	TotalCost       float64          `json:"total_cost"`
	Category        string           `json:"category,omitempty"`
	BookingRequired bool             `json:"booking_required,omitempty"`
	Tips            []string         `json:"tips,omitempty"`
}

type ActivityLocation struct {
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Area        string      `json:"area,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Meal struct {
	MealType      string   `json:"meal_type"`
	Time          string   `json:"time,omitempty"`
	Restaurant    string   `json:"restaurant_name"`
	CuisineType   string   `json:"cuisine_type,omitempty"`
	Location      string   `json:"location,omitempty"`
	CostEstimate  float64  `json:"cost_estimate"`
	MustTryDishes []string `json:"must_try_dishes,omitempty"`
}

type TransportLeg struct {
	FromLocation    string  `json:"from_location"`
	ToLocation      string  `json:"to_location"`
	Mode            string  `json:"mode"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Cost            float64 `json:"cost"`
}
