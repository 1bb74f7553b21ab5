package request_models

// PaymentSessionRequest opens a gateway checkout session for a booking.
// Amount is in INR; the gateway receives paise.
type PaymentSessionRequest struct {
	BookingID string  `json:"booking_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency"`
}

type ProcessPaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature"`
}

type RefundRequest struct {
	PaymentID string  `json:"payment_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Reason    string  `json:"reason"`
}
