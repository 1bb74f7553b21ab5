package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/response_models"
)

func activityAt(name string, lat, lng float64) response_models.Activity {
	return response_models.Activity{
		ActivityID: name,
		Name:       name,
		Location: response_models.ActivityLocation{
			Name:        name,
			Coordinates: response_models.Coordinates{Lat: lat, Lng: lng},
		},
	}
}

func TestOptimizeItineraryReordersDay(t *testing.T) {
	svc := NewRouteService(NewHaversineMatrixClient())

	// B is the far stop; the greedy walk from A should pick C first.
	itinerary := &response_models.Itinerary{
		DailyItineraries: []response_models.DayItinerary{
			{
				DayNumber: 1,
				Activities: []response_models.Activity{
					activityAt("A", 12.9700, 77.5900),
					activityAt("B", 13.0500, 77.7000),
					activityAt("C", 12.9750, 77.5950),
				},
			},
		},
	}

	svc.OptimizeItinerary(context.Background(), itinerary, "")

	day := itinerary.DailyItineraries[0]
	require.Len(t, day.Activities, 3)
	assert.Equal(t, "A", day.Activities[0].Name)
	assert.Equal(t, "C", day.Activities[1].Name)
	assert.Equal(t, "B", day.Activities[2].Name)

	require.Len(t, day.Transport, 2)
	assert.Equal(t, "A", day.Transport[0].FromLocation)
	assert.Equal(t, "C", day.Transport[0].ToLocation)
	assert.Greater(t, day.Transport[1].DistanceKm, day.Transport[0].DistanceKm)
}

func TestOptimizeItineraryKeepsUnlocatedActivities(t *testing.T) {
	svc := NewRouteService(NewHaversineMatrixClient())

	itinerary := &response_models.Itinerary{
		DailyItineraries: []response_models.DayItinerary{
			{
				DayNumber: 1,
				Activities: []response_models.Activity{
					activityAt("A", 12.9700, 77.5900),
					{ActivityID: "lunch", Name: "lunch"},
					activityAt("B", 12.9750, 77.5950),
				},
			},
		},
	}

	svc.OptimizeItinerary(context.Background(), itinerary, "")

	day := itinerary.DailyItineraries[0]
	require.Len(t, day.Activities, 3)
	assert.Equal(t, "A", day.Activities[0].Name)
	assert.Equal(t, "B", day.Activities[1].Name)
	assert.Equal(t, "lunch", day.Activities[2].Name)
}

func TestOptimizeItinerarySkipsSingleActivityDays(t *testing.T) {
	svc := NewRouteService(NewHaversineMatrixClient())

	itinerary := &response_models.Itinerary{
		DailyItineraries: []response_models.DayItinerary{
			{DayNumber: 1, Activities: []response_models.Activity{activityAt("A", 12.97, 77.59)}},
		},
	}

	svc.OptimizeItinerary(context.Background(), itinerary, "")
	assert.Empty(t, itinerary.DailyItineraries[0].Transport)
}

func TestNearestNeighborOrder(t *testing.T) {
	points := []MatrixPoint{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	mat := DistanceMatrix{
		"a": {"a": {}, "b": {DistanceMeters: 900}, "c": {DistanceMeters: 100}},
		"b": {"a": {DistanceMeters: 900}, "b": {}, "c": {DistanceMeters: 400}},
		"c": {"a": {DistanceMeters: 100}, "b": {DistanceMeters: 400}, "c": {}},
	}

	assert.Equal(t, []int{0, 2, 1}, nearestNeighborOrder(points, mat))
}

func TestBuildTransportLegModes(t *testing.T) {
	cases := []struct {
		name       string
		meters     int
		preference string
		wantMode   string
		wantCost   float64
	}{
		{"short walk", 500, "", "walk", 0},
		{"mid auto", 3000, "", "auto", 75},
		{"long taxi", 10000, "", "taxi", 250},
		{"metro preference", 10000, "metro", "metro", 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			leg := buildTransportLeg("x", "y", MatrixEdge{DistanceMeters: tc.meters, DurationSeconds: 600}, tc.preference)
			assert.Equal(t, tc.wantMode, leg.Mode)
			assert.Equal(t, tc.wantCost, leg.Cost)
			assert.Equal(t, 10.0, leg.DurationMinutes)
		})
	}
}

func TestHaversineMeters(t *testing.T) {
	// Bengaluru to Chennai is roughly 290 km great circle.
	d := HaversineMeters(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290000, d, 10000)

	assert.Zero(t, HaversineMeters(12.97, 77.59, 12.97, 77.59))
}
