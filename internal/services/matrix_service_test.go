package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noNetworkTransport struct{}

func (noNetworkTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("network disabled in tests")
}

func offlineMatrixClient(cache MatrixPairCache) *GoogleMatrixClient {
	return &GoogleMatrixClient{
		HTTP:       &http.Client{Transport: noNetworkTransport{}},
		APIKey:     "test",
		Cache:      cache,
		DefaultTTL: time.Hour,
		Mode:       "driving",
	}
}

func TestMatrixCacheServesWarmCoordinatePairs(t *testing.T) {
	a := MatrixPoint{ID: "a0", Lat: 15.4909, Lng: 73.8278}
	b := MatrixPoint{ID: "a1", Lat: 15.4989, Lng: 73.8282}

	cache := NewInMemoryPairCache()
	edge := MatrixEdge{DistanceMeters: 700, DurationSeconds: 120}
	cache.Set(pairKey{Mode: "driving", A: coordKey(a), B: coordKey(b)}, edge, time.Hour)
	cache.Set(pairKey{Mode: "driving", A: coordKey(b), B: coordKey(a)}, edge, time.Hour)

	mat, err := offlineMatrixClient(cache).ComputeDistances(context.Background(), []MatrixPoint{a, b})
	require.NoError(t, err)
	assert.Equal(t, 700, mat["a0"]["a1"].DistanceMeters)

	// Same places under fresh request-scoped IDs still hit the cache.
	a2 := MatrixPoint{ID: "x", Lat: a.Lat, Lng: a.Lng}
	b2 := MatrixPoint{ID: "y", Lat: b.Lat, Lng: b.Lng}
	mat, err = offlineMatrixClient(cache).ComputeDistances(context.Background(), []MatrixPoint{a2, b2})
	require.NoError(t, err)
	assert.Equal(t, 700, mat["x"]["y"].DistanceMeters)
}

func TestMatrixCacheDoesNotCollideAcrossPlaces(t *testing.T) {
	delhiA := MatrixPoint{ID: "a0", Lat: 28.6129, Lng: 77.2295}
	delhiB := MatrixPoint{ID: "a1", Lat: 28.5245, Lng: 77.1855}

	cache := NewInMemoryPairCache()
	stale := MatrixEdge{DistanceMeters: 100000, DurationSeconds: 7200}
	cache.Set(pairKey{Mode: "driving", A: coordKey(delhiA), B: coordKey(delhiB)}, stale, time.Hour)
	cache.Set(pairKey{Mode: "driving", A: coordKey(delhiB), B: coordKey(delhiA)}, stale, time.Hour)

	// A later request reuses the IDs a0/a1 for places 700m apart in Goa.
	// The Delhi edges must not be served for them.
	goaA := MatrixPoint{ID: "a0", Lat: 15.4909, Lng: 73.8278}
	goaB := MatrixPoint{ID: "a1", Lat: 15.4989, Lng: 73.8282}

	_, err := offlineMatrixClient(cache).ComputeDistances(context.Background(), []MatrixPoint{goaA, goaB})
	require.Error(t, err)
}
