package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
)

type stubPlacesService struct{}

func (stubPlacesService) SearchPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	return []response_models.Place{{Name: "stub"}}, nil
}

func (stubPlacesService) NearbyPlaces(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	return []response_models.Place{{Name: "stub"}}, nil
}

func (stubPlacesService) SearchHotels(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	return []response_models.Place{{Name: "stub"}}, nil
}

func (stubPlacesService) SearchRestaurants(ctx context.Context, req request_models.PlacesSearchRequest) ([]response_models.Place, error) {
	return []response_models.Place{{Name: "stub"}}, nil
}

func (stubPlacesService) GetDirections(ctx context.Context, req request_models.DirectionsRequest) (*response_models.DirectionsResult, error) {
	return &response_models.DirectionsResult{Mode: "driving"}, nil
}

func (stubPlacesService) Healthy(ctx context.Context) bool { return true }

func placesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewPlacesController(stubPlacesService{})
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/places/search", ctrl.SearchPlaces)
	v1.POST("/places/nearby", ctrl.NearbyPlaces)
	v1.POST("/directions", ctrl.GetDirections)
	v1.POST("/hotels/search", ctrl.SearchHotels)
	v1.POST("/restaurants/search", ctrl.SearchRestaurants)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestNearbyPlacesAcceptsJSONBody(t *testing.T) {
	w := postJSON(placesRouter(), "/api/v1/places/nearby", `{"lat":12.9716,"lng":77.5946,"type":"restaurant"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNearbyPlacesRequiresCoordinates(t *testing.T) {
	w := postJSON(placesRouter(), "/api/v1/places/nearby", `{"type":"restaurant"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDirectionsPostRoute(t *testing.T) {
	w := postJSON(placesRouter(), "/api/v1/directions", `{"origin":"Majestic","destination":"Whitefield"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(placesRouter(), "/api/v1/directions", `{"origin":"Majestic"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHotelAndRestaurantSearchPostRoutes(t *testing.T) {
	w := postJSON(placesRouter(), "/api/v1/hotels/search", `{"location":"Jaipur"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(placesRouter(), "/api/v1/hotels/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(placesRouter(), "/api/v1/restaurants/search", `{"location":"Jaipur","query":"dosa"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchPlacesStaysOnQueryParams(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/places/search?query=museums&location=Delhi", nil)
	placesRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
