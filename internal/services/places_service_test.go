package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/pkg/utils"
)

func TestSearchPlacesMockMode(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	svc := NewPlacesService(nil)

	places, err := svc.SearchPlaces(context.Background(), request_models.PlacesSearchRequest{
		Query:    "museums",
		Location: "Delhi",
		Limit:    3,
	})

	require.NoError(t, err)
	require.Len(t, places, 3)
	assert.Contains(t, places[0].Name, "museums in Delhi")
	assert.False(t, svc.Healthy(context.Background()))
}

func TestGetDirectionsMockMode(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	svc := NewPlacesService(nil)

	out, err := svc.GetDirections(context.Background(), request_models.DirectionsRequest{
		Origin:      "Connaught Place",
		Destination: "Red Fort",
	})

	require.NoError(t, err)
	assert.Equal(t, "driving", out.Mode)
	assert.Equal(t, "Connaught Place", out.Origin)
	assert.NotZero(t, out.DistanceKm)
}

func TestFetchPlacesParsesAndLimits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"place_id":"p1","name":"India Gate","formatted_address":"Rajpath","geometry":{"location":{"lat":28.6129,"lng":77.2295}},"rating":4.6,"types":["tourist_attraction"],"opening_hours":{"open_now":true}},
				{"place_id":"p2","name":"Lotus Temple","vicinity":"Kalkaji","geometry":{"location":{"lat":28.5535,"lng":77.2588}},"rating":4.5},
				{"place_id":"p3","name":"Qutub Minar","formatted_address":"Mehrauli","geometry":{"location":{"lat":28.5245,"lng":77.1855}},"rating":4.5}
			]
		}`))
	}))
	defer server.Close()

	svc := &placesService{http: &http.Client{Timeout: time.Second}, apiKey: "test"}
	places, err := svc.fetchPlaces(context.Background(), server.URL, 2)

	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "India Gate", places[0].Name)
	assert.Equal(t, "Rajpath", places[0].Address)
	require.NotNil(t, places[0].OpenNow)
	assert.True(t, *places[0].OpenNow)
	assert.Equal(t, "Kalkaji", places[1].Address)
	assert.Nil(t, places[1].OpenNow)
}

func TestFetchPlacesSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","results":[]}`))
	}))
	defer server.Close()

	svc := &placesService{http: &http.Client{Timeout: time.Second}, apiKey: "test"}
	_, err := svc.fetchPlaces(context.Background(), server.URL, 5)
	require.ErrorIs(t, err, utils.ErrMapsUnavailable)
}

func TestRankNearbyByRatingThenDistance(t *testing.T) {
	places := []response_models.Place{
		{Name: "far low", Lat: 13.20, Lng: 77.80, Rating: 3.9},
		{Name: "far high", Lat: 13.10, Lng: 77.70, Rating: 4.6},
		{Name: "near high", Lat: 12.9720, Lng: 77.5950, Rating: 4.6},
		{Name: "near mid", Lat: 12.9730, Lng: 77.5960, Rating: 4.2},
	}

	rankNearby(places, 12.9716, 77.5946)

	assert.Equal(t, "near high", places[0].Name)
	assert.Equal(t, "far high", places[1].Name)
	assert.Equal(t, "near mid", places[2].Name)
	assert.Equal(t, "far low", places[3].Name)
}

func TestFetchPlacesZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	svc := &placesService{http: &http.Client{Timeout: time.Second}, apiKey: "test"}
	places, err := svc.fetchPlaces(context.Background(), server.URL, 5)
	require.NoError(t, err)
	assert.Empty(t, places)
}
