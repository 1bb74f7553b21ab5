package response_models

type TripResponse struct {
	TripID    string     `json:"trip_id"`
	Status    string     `json:"status"`
	Itinerary *Itinerary `json:"itinerary,omitempty"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

// TripShareSummary is the compact shareable view of a trip.
type TripShareSummary struct {
	TripID        string   `json:"trip_id"`
	Destination   string   `json:"destination"`
	DurationDays  int      `json:"duration_days"`
	TotalBudget   float64  `json:"total_budget"`
	EstimatedCost float64  `json:"estimated_cost"`
	Highlights    []string `json:"highlights"`
	ShareableLink string   `json:"shareable_link"`
}
