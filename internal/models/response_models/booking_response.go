package response_models

type BookingItemResult struct {
	ItemID           string  `json:"item_id"`
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	Provider         string  `json:"provider,omitempty"`
	Date             string  `json:"date"`
	Quantity         int     `json:"quantity"`
	Price            float64 `json:"price"`
	Status           string  `json:"status"`
	ConfirmationCode string  `json:"confirmation_code,omitempty"`
}

type BookingResponse struct {
	BookingID    string              `json:"booking_id"`
	TripID       string              `json:"trip_id"`
	UserID       string              `json:"user_id"`
	Status       string              `json:"status"`
	TotalAmount  float64             `json:"total_amount"`
	Items        []BookingItemResult `json:"items"`
	EMTReference string              `json:"emt_reference,omitempty"`
	CreatedAt    string              `json:"created_at"`
}

type CancellationResult struct {
	BookingID    string  `json:"booking_id"`
	Status       string  `json:"status"`
	RefundAmount float64 `json:"refund_amount"`
	RefundPct    float64 `json:"refund_percentage"`
	Reason       string  `json:"reason,omitempty"`
}
