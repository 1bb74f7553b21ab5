package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TripStatus string

const (
	TripStatusPlanned   TripStatus = "planned"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

type Trip struct {
	BaseModel
	AccountID *uuid.UUID `gorm:"index"` // nullable; trips can be planned before signup

	Destination    string `gorm:"index"`
	StartDate      string `gorm:"size:10"` // YYYY-MM-DD
	EndDate        string `gorm:"size:10"`
	DurationDays   int
	Budget         float64
	TravelersCount int
	Themes         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Language       string

	Status TripStatus `gorm:"index;default:planned"`

	// Full generated itinerary as returned to the client.
	Itinerary datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Bookings []Booking
}
