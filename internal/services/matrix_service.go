package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

type MatrixPoint struct {
	ID  string
	Lat float64
	Lng float64
}

type MatrixEdge struct {
	DistanceMeters  int
	DurationSeconds int
}

type DistanceMatrix map[string]map[string]MatrixEdge

// --------- In-memory cache keyed by (mode, origin, destination) ---------

// Cache keys are rounded coordinates, never the caller-assigned point
// IDs: those are scoped to a single request and collide across trips.
type pairKey struct {
	Mode string
	A    string
	B    string
}

// coordKey rounds to ~1m precision so repeated lookups for the same
// place land on the same entry.
func coordKey(p MatrixPoint) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lng)
}

type matrixPairCacheEntry struct {
	Edge      MatrixEdge
	ExpiresAt time.Time
}

type MatrixPairCache interface {
	Get(k pairKey) (MatrixEdge, bool)
	Set(k pairKey, v MatrixEdge, ttl time.Duration)
}

type inMemoryPairCache struct {
	mu    sync.RWMutex
	store map[pairKey]matrixPairCacheEntry
}

func NewInMemoryPairCache() MatrixPairCache {
	return &inMemoryPairCache{store: make(map[pairKey]matrixPairCacheEntry)}
}

func (c *inMemoryPairCache) Get(k pairKey) (MatrixEdge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.ExpiresAt) {
		return MatrixEdge{}, false
	}
	return it.Edge, true
}

func (c *inMemoryPairCache) Set(k pairKey, v MatrixEdge, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = matrixPairCacheEntry{Edge: v, ExpiresAt: time.Now().Add(ttl)}
}

// -------------- Google Distance Matrix client ---------------

type DistanceMatrixService interface {
	ComputeDistances(ctx context.Context, points []MatrixPoint) (DistanceMatrix, error)
}

type GoogleMatrixClient struct {
	HTTP       *http.Client
	APIKey     string
	Cache      MatrixPairCache
	DefaultTTL time.Duration
	Mode       string // "driving"
}

// NewGoogleMatrixClient builds the live matrix client, or the haversine
// fallback when GOOGLE_MAPS_API_KEY is unset.
func NewGoogleMatrixClient(cache MatrixPairCache) DistanceMatrixService {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		return NewHaversineMatrixClient()
	}
	return &GoogleMatrixClient{
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		APIKey:     key,
		Cache:      cache,
		DefaultTTL: 7 * 24 * time.Hour,
		Mode:       "driving",
	}
}

func (c *GoogleMatrixClient) ComputeDistances(ctx context.Context, points []MatrixPoint) (DistanceMatrix, error) {
	n := len(points)
	if n == 0 {
		return DistanceMatrix{}, nil
	}

	mode := c.Mode
	mat := make(DistanceMatrix, n)
	needCall := false

	for _, p := range points {
		mat[p.ID] = make(map[string]MatrixEdge, n)
	}

	// 1) Try the pair cache first
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].ID][points[j].ID] = MatrixEdge{}
				continue
			}
			k := pairKey{Mode: mode, A: coordKey(points[i]), B: coordKey(points[j])}
			if v, ok := c.Cache.Get(k); ok {
				mat[points[i].ID][points[j].ID] = v
			} else {
				needCall = true
			}
		}
	}

	if !needCall {
		return mat, nil
	}

	// 2) One Distance Matrix call for the full point set
	coords := make([]string, 0, n)
	for _, p := range points {
		coords = append(coords, fmt.Sprintf("%f,%f", p.Lat, p.Lng))
	}
	coordStr := strings.Join(coords, "|")

	u := url.URL{
		Scheme: "https",
		Host:   "maps.googleapis.com",
		Path:   "/maps/api/distancematrix/json",
	}
	q := url.Values{}
	q.Set("origins", coordStr)
	q.Set("destinations", coordStr)
	q.Set("mode", mode)
	q.Set("key", c.APIKey)
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("distance matrix bad status: %s", resp.Status)
	}

	var payload struct {
		Status string `json:"status"`
		Rows   []struct {
			Elements []struct {
				Status   string `json:"status"`
				Distance struct {
					Value int `json:"value"`
				} `json:"distance"`
				Duration struct {
					Value int `json:"value"`
				} `json:"duration"`
			} `json:"elements"`
		} `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("distance matrix decode: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("distance matrix status: %s", payload.Status)
	}

	// 3) Fill the matrix and warm the cache
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				mat[points[i].ID][points[j].ID] = MatrixEdge{}
				continue
			}
			var edge MatrixEdge
			if i < len(payload.Rows) && j < len(payload.Rows[i].Elements) && payload.Rows[i].Elements[j].Status == "OK" {
				edge = MatrixEdge{
					DistanceMeters:  payload.Rows[i].Elements[j].Distance.Value,
					DurationSeconds: payload.Rows[i].Elements[j].Duration.Value,
				}
			} else {
				edge = haversineEdge(points[i], points[j])
			}
			mat[points[i].ID][points[j].ID] = edge
			c.Cache.Set(pairKey{Mode: mode, A: coordKey(points[i]), B: coordKey(points[j])}, edge, c.DefaultTTL)
		}
	}

	return mat, nil
}

// -------------- Haversine fallback ---------------

// haversineMatrixClient estimates edges from great-circle distance when
// no maps key is configured. Durations assume 25 km/h urban driving.
type haversineMatrixClient struct{}

func NewHaversineMatrixClient() DistanceMatrixService {
	return &haversineMatrixClient{}
}

func (h *haversineMatrixClient) ComputeDistances(ctx context.Context, points []MatrixPoint) (DistanceMatrix, error) {
	mat := make(DistanceMatrix, len(points))
	for _, a := range points {
		mat[a.ID] = make(map[string]MatrixEdge, len(points))
		for _, b := range points {
			if a.ID == b.ID {
				mat[a.ID][b.ID] = MatrixEdge{}
				continue
			}
			mat[a.ID][b.ID] = haversineEdge(a, b)
		}
	}
	return mat, nil
}

const earthRadiusMeters = 6371000.0

func haversineEdge(a, b MatrixPoint) MatrixEdge {
	meters := HaversineMeters(a.Lat, a.Lng, b.Lat, b.Lng)
	seconds := meters / (25000.0 / 3600.0)
	return MatrixEdge{
		DistanceMeters:  int(meters + 0.5),
		DurationSeconds: int(seconds + 0.5),
	}
}

func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(s))
}
