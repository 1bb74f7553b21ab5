package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusFailed    BookingStatus = "failed"
)

type Booking struct {
	BaseModel
	TripID    uuid.UUID  `gorm:"index"`
	AccountID *uuid.UUID `gorm:"index"`

	Status        BookingStatus `gorm:"index;default:pending"`
	TotalAmount   float64
	RefundAmount  float64 // set on cancellation, replayed on repeat cancels
	PaymentMethod string
	EMTReference  string `gorm:"index"` // provider reference, set on confirmation

	// Items with per-item confirmation codes once confirmed.
	Items datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	ConfirmedAt *int64
	CancelledAt *int64

	Trip Trip `gorm:"foreignKey:TripID"`
}
