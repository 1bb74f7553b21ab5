package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/pkg/logger"
	"roamio/pkg/utils"
)

const (
	placesCacheTTL     = time.Hour
	directionsCacheTTL = 30 * time.Minute
)

type PlacesServiceInterface interface {
	SearchPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error)
	NearbyPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error)
	SearchHotels(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error)
	SearchRestaurants(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error)
	GetDirections(ctx context.Context, req request_models.DirectionsRequest) (*response_models.DirectionsResult, error)
	Healthy(ctx context.Context) bool
}

type placesService struct {
	http   *http.Client
	apiKey string
	cache  *redis.Client
}

// NewPlacesService returns the live Places client. Without an API key
// every lookup serves deterministic mock data so the rest of the flow
// keeps working in development.
func NewPlacesService(cache *redis.Client) PlacesServiceInterface {
	return &placesService{
		http:   &http.Client{Timeout: 15 * time.Second},
		apiKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		cache:  cache,
	}
}

func (s *placesService) Healthy(ctx context.Context) bool {
	return s.apiKey != ""
}

func (s *placesService) SearchPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	query := req.Query
	if req.Location != "" {
		query = fmt.Sprintf("%s in %s", req.Query, req.Location)
	}
	if s.apiKey == "" {
		return mockPlaces(query, req.Limit), nil
	}

	cacheKey := fmt.Sprintf("places:search:%s:%s", req.Query, req.Location)
	if hit, ok := s.cached(ctx, cacheKey); ok {
		return hit, nil
	}

	q := url.Values{}
	q.Set("query", query)
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	places, err := s.textSearch(ctx, q, req.Limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, cacheKey, places)
	return places, nil
}

func (s *placesService) NearbyPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	if s.apiKey == "" {
		return mockPlaces(req.Type, req.Limit), nil
	}

	radius := req.Radius
	if radius <= 0 {
		radius = 5000
	}
	cacheKey := fmt.Sprintf("places:nearby:%.4f:%.4f:%d:%s:%s", req.Lat, req.Lng, radius, req.Type, req.Keyword)
	if hit, ok := s.cached(ctx, cacheKey); ok {
		return hit, nil
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", req.Lat, req.Lng))
	q.Set("radius", fmt.Sprintf("%d", radius))
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	if req.Keyword != "" {
		q.Set("keyword", req.Keyword)
	}
	q.Set("key", s.apiKey)

	u := url.URL{
		Scheme:   "https",
		Host:     "maps.googleapis.com",
		Path:     "/maps/api/place/nearbysearch/json",
		RawQuery: q.Encode(),
	}
	places, err := s.fetchPlaces(ctx, u.String(), req.Limit)
	if err != nil {
		return nil, err
	}
	rankNearby(places, req.Lat, req.Lng)
	s.store(ctx, cacheKey, places)
	return places, nil
}

// rankNearby orders results best rated first, closest first on ties.
func rankNearby(places []response_models.Place, lat, lng float64) {
	sort.SliceStable(places, func(i, j int) bool {
		if places[i].Rating != places[j].Rating {
			return places[i].Rating > places[j].Rating
		}
		return HaversineMeters(lat, lng, places[i].Lat, places[i].Lng) <
			HaversineMeters(lat, lng, places[j].Lat, places[j].Lng)
	})
}

func (s *placesService) SearchHotels(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	req.Query = "hotels"
	req.Type = "lodging"
	return s.SearchPlaces(ctx, req)
}

func (s *placesService) SearchRestaurants(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	if req.Query == "" {
		req.Query = "restaurants"
	}
	req.Type = "restaurant"
	return s.SearchPlaces(ctx, req)
}

func (s *placesService) GetDirections(ctx context.Context, req request_models.DirectionsRequest) (*response_models.DirectionsResult, error) {
	mode := req.Mode
	if mode == "" {
		mode = "driving"
	}
	if s.apiKey == "" {
		return &response_models.DirectionsResult{
			Origin:          req.Origin,
			Destination:     req.Destination,
			Mode:            mode,
			DistanceKm:      12.5,
			DurationMinutes: 35,
			Summary:         "mock route",
		}, nil
	}

	cacheKey := fmt.Sprintf("places:directions:%s:%s:%s", req.Origin, req.Destination, mode)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var out response_models.DirectionsResult
			if json.Unmarshal(raw, &out) == nil {
				return &out, nil
			}
		}
	}

	q := url.Values{}
	q.Set("origin", req.Origin)
	q.Set("destination", req.Destination)
	q.Set("mode", mode)
	q.Set("key", s.apiKey)

	u := url.URL{
		Scheme:   "https",
		Host:     "maps.googleapis.com",
		Path:     "/maps/api/directions/json",
		RawQuery: q.Encode(),
	}

	var payload struct {
		Status string `json:"status"`
		Routes []struct {
			Summary  string `json:"summary"`
			Overview struct {
				Points string `json:"points"`
			} `json:"overview_polyline"`
			Legs []struct {
				Distance struct {
					Value int `json:"value"`
				} `json:"distance"`
				Duration struct {
					Value int `json:"value"`
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := s.getJSON(ctx, u.String(), &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" || len(payload.Routes) == 0 {
		return nil, utils.ErrMapsUnavailable
	}

	route := payload.Routes[0]
	var meters, seconds int
	for _, leg := range route.Legs {
		meters += leg.Distance.Value
		seconds += leg.Duration.Value
	}

	out := &response_models.DirectionsResult{
		Origin:          req.Origin,
		Destination:     req.Destination,
		Mode:            mode,
		DistanceKm:      float64(meters) / 1000,
		DurationMinutes: float64(seconds) / 60,
		Polyline:        route.Overview.Points,
		Summary:         route.Summary,
	}
	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKey, raw, directionsCacheTTL)
		}
	}
	return out, nil
}

func (s *placesService) textSearch(ctx context.Context, q url.Values, limit int) ([]response_models.Place, error) {
	q.Set("key", s.apiKey)
	u := url.URL{
		Scheme:   "https",
		Host:     "maps.googleapis.com",
		Path:     "/maps/api/place/textsearch/json",
		RawQuery: q.Encode(),
	}
	return s.fetchPlaces(ctx, u.String(), limit)
}

func (s *placesService) fetchPlaces(ctx context.Context, rawURL string, limit int) ([]response_models.Place, error) {
	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID  string `json:"place_id"`
			Name     string `json:"name"`
			Address  string `json:"formatted_address"`
			Vicinity string `json:"vicinity"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			Rating       float64  `json:"rating"`
			PriceLevel   int      `json:"price_level"`
			Types        []string `json:"types"`
			OpeningHours *struct {
				OpenNow bool `json:"open_now"`
			} `json:"opening_hours"`
		} `json:"results"`
	}
	if err := s.getJSON(ctx, rawURL, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		logger.Log.WithField("status", payload.Status).Error("places api error")
		return nil, utils.ErrMapsUnavailable
	}

	if limit <= 0 || limit > 20 {
		limit = 20
	}
	places := make([]response_models.Place, 0, limit)
	for _, r := range payload.Results {
		if len(places) >= limit {
			break
		}
		addr := r.Address
		if addr == "" {
			addr = r.Vicinity
		}
		p := response_models.Place{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Address:    addr,
			Lat:        r.Geometry.Location.Lat,
			Lng:        r.Geometry.Location.Lng,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
			Types:      r.Types,
		}
		if r.OpeningHours != nil {
			open := r.OpeningHours.OpenNow
			p.OpenNow = &open
		}
		places = append(places, p)
	}
	return places, nil
}

func (s *placesService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, _ := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("places http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("places bad status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *placesService) cached(ctx context.Context, key string) ([]response_models.Place, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var places []response_models.Place
	if json.Unmarshal(raw, &places) != nil {
		return nil, false
	}
	return places, true
}

func (s *placesService) store(ctx context.Context, key string, places []response_models.Place) {
	if s.cache == nil {
		return
	}
	if raw, err := json.Marshal(places); err == nil {
		s.cache.Set(ctx, key, raw, placesCacheTTL)
	}
}

func mockPlaces(label string, limit int) []response_models.Place {
	if limit <= 0 || limit > 5 {
		limit = 5
	}
	open := true
	out := make([]response_models.Place, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, response_models.Place{
			PlaceID:    fmt.Sprintf("mock-%s-%d", label, i+1),
			Name:       fmt.Sprintf("Sample %s %d", label, i+1),
			Address:    "MG Road, Bengaluru",
			Lat:        12.9716 + float64(i)*0.01,
			Lng:        77.5946 + float64(i)*0.01,
			Rating:     4.2,
			PriceLevel: 2,
			OpenNow:    &open,
		})
	}
	return out
}
