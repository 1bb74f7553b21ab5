package request_models

type ChatRequest struct {
	Message      string         `json:"message" binding:"required"`
	SessionID    string         `json:"session_id"`
	TripContext  map[string]any `json:"trip_context"`
	UserLocation string         `json:"user_location"`
	Language     string         `json:"language"`
}

type SuggestionsRequest struct {
	Location    string            `json:"location" binding:"required"`
	Preferences []string          `json:"preferences"`
	Hints       map[string]string `json:"hints"`
}
