package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type PlacesController struct {
	placesService services.PlacesServiceInterface
}

func NewPlacesController(placesService services.PlacesServiceInterface) *PlacesController {
	return &PlacesController{
		placesService: placesService,
	}
}

// SearchPlaces godoc
// @Summary Search places
// @Description Text search for attractions and points of interest
// @Tags Places
// @Produce json
// @Param query query string true "Search text"
// @Param location query string false "City or area to search in"
// @Success 200 {array} response_models.Place
// @Router /places/search [get]
func (p *PlacesController) SearchPlaces(c *gin.Context) {

	var req request_models.PlacesSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil || req.Query == "" {
		utils.RespondError(c, http.StatusBadRequest, "query is required")
		return
	}

	places, err := p.placesService.SearchPlaces(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

// NearbyPlaces godoc
// @Summary Nearby places
// @Description Places around a coordinate within a radius, best rated first
// @Tags Places
// @Accept json
// @Produce json
// @Param request body request_models.PlacesSearchRequest true "Coordinate, radius and filters"
// @Success 200 {array} response_models.Place
// @Router /places/nearby [post]
func (p *PlacesController) NearbyPlaces(c *gin.Context) {
	var req request_models.PlacesSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Lat == 0 && req.Lng == 0) {
		utils.RespondError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}

	places, err := p.placesService.NearbyPlaces(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

// GetDirections godoc
// @Summary Directions between two points
// @Description Distance, duration and polyline between origin and destination
// @Tags Places
// @Accept json
// @Produce json
// @Param request body request_models.DirectionsRequest true "Origin, destination and travel mode"
// @Success 200 {object} response_models.DirectionsResult
// @Router /directions [post]
func (p *PlacesController) GetDirections(c *gin.Context) {
	var req request_models.DirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "origin and destination are required")
		return
	}

	directions, err := p.placesService.GetDirections(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, directions, "Directions fetched successfully")
}

// SearchHotels godoc
// @Summary Search hotels
// @Tags Places
// @Accept json
// @Produce json
// @Param request body request_models.PlacesSearchRequest true "Location and price filters"
// @Success 200 {array} response_models.Place
// @Router /hotels/search [post]
func (p *PlacesController) SearchHotels(c *gin.Context) {
	var req request_models.PlacesSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}

	hotels, err := p.placesService.SearchHotels(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, hotels, "Hotels fetched successfully")
}

// SearchRestaurants godoc
// @Summary Search restaurants
// @Tags Places
// @Accept json
// @Produce json
// @Param request body request_models.PlacesSearchRequest true "Location and optional cuisine"
// @Success 200 {array} response_models.Place
// @Router /restaurants/search [post]
func (p *PlacesController) SearchRestaurants(c *gin.Context) {
	var req request_models.PlacesSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == "" {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}

	restaurants, err := p.placesService.SearchRestaurants(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, restaurants, "Restaurants fetched successfully")
}
