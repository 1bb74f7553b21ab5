package request_models

// BookingItemInput is one line of a booking: a flight, hotel night,
// ground transport or bookable activity. Details carries vendor-specific
// fields (origin/destination, check-in dates, passenger counts).
type BookingItemInput struct {
	Type        string         `json:"type" binding:"required,oneof=flight hotel train bus cab transport activity"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Provider    string         `json:"provider"`
	Date        string         `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	Quantity    int            `json:"quantity"`
	Price       float64        `json:"price" binding:"required,gte=0"`
	Details     map[string]any `json:"details"`
}

type BookingRequest struct {
	TripID        string             `json:"trip_id" binding:"required"`
	UserID        string             `json:"user_id" binding:"required"`
	PaymentMethod string             `json:"payment_method"`
	BookingItems  []BookingItemInput `json:"booking_items" binding:"required,min=1,dive"`
}

type ConfirmBookingRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
