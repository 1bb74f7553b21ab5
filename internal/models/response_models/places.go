package response_models

type Place struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Rating     float64  `json:"rating,omitempty"`
	PriceLevel int      `json:"price_level,omitempty"`
	Types      []string `json:"types,omitempty"`
	OpenNow    *bool    `json:"open_now,omitempty"`
}

type DirectionsResult struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Mode            string  `json:"mode"`
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
	Polyline        string  `json:"polyline,omitempty"`
	Summary         string  `json:"summary,omitempty"`
}
