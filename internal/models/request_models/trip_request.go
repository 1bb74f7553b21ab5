package request_models

import (
	"errors"
	"time"
)

// TripRequest carries everything the planner needs to generate an
// itinerary. Dates are YYYY-MM-DD strings as sent by the frontend.
type TripRequest struct {
	Destination             string            `json:"destination" binding:"required"`
	StartDate               string            `json:"start_date" binding:"required"`
	EndDate                 string            `json:"end_date" binding:"required"`
	Budget                  float64           `json:"budget" binding:"required,gt=0"`
	TravelersCount          int               `json:"travelers_count"`
	Themes                  []string          `json:"themes"`
	AccommodationPreference string            `json:"accommodation_preference"`
	TransportPreference     string            `json:"transport_preference"`
	DietaryRestrictions     []string          `json:"dietary_restrictions"`
	Language                string            `json:"language"`
	SpecialRequirements     string            `json:"special_requirements"`
	UserID                  string            `json:"user_id"`
	UserPreferences         map[string]string `json:"user_preferences"`
}

var ErrBadDateRange = errors.New("end date must be after start date")

func (r *TripRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return
	}
	if !end.After(start) {
		err = ErrBadDateRange
	}
	return
}

// DurationDays is inclusive of both travel dates; 0 when dates are unparseable.
func (r *TripRequest) DurationDays() int {
	start, end, err := r.Dates()
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// TripUpdateRequest mutates a stored itinerary.
// UpdateType is one of add, remove, modify, reschedule.
type TripUpdateRequest struct {
	UpdateType  string         `json:"update_type" binding:"required,oneof=add remove modify reschedule"`
	DayNumber   int            `json:"day_number" binding:"required,min=1"`
	ActivityID  string         `json:"activity_id"`
	Activity    map[string]any `json:"activity"`
	NewDay      int            `json:"new_day_number"`
	NewTimeSlot string         `json:"new_time_slot"`
}
