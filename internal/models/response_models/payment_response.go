package response_models

type PaymentSessionResponse struct {
	SessionID string  `json:"session_id"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	KeyID     string  `json:"key_id,omitempty"`
}

type PaymentResult struct {
	SessionID     string  `json:"session_id"`
	PaymentID     string  `json:"payment_id,omitempty"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	TransactionID string  `json:"transaction_id"`
}

type RefundResult struct {
	RefundID  string  `json:"refund_id"`
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}
