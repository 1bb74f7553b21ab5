package request_models

// PlacesSearchRequest covers text search, nearby search, hotel and
// restaurant lookups. Lat/Lng are used when Location is empty.
type PlacesSearchRequest struct {
	Query    string  `form:"query" json:"query"`
	Location string  `form:"location" json:"location"`
	Lat      float64 `form:"lat" json:"lat"`
	Lng      float64 `form:"lng" json:"lng"`
	Radius   int     `form:"radius" json:"radius"`
	Type     string  `form:"type" json:"type"`
	Keyword  string  `form:"keyword" json:"keyword"`
	MinPrice int     `form:"min_price" json:"min_price"`
	MaxPrice int     `form:"max_price" json:"max_price"`
	Limit    int     `form:"limit" json:"limit"`
}

type DirectionsRequest struct {
	Origin      string `form:"origin" json:"origin" binding:"required"`
	Destination string `form:"destination" json:"destination" binding:"required"`
	Mode        string `form:"mode" json:"mode"`
}
