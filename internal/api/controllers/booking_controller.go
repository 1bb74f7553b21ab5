package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Reserve flights, hotels, transport and activities for a trip; items stay pending until payment
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body request_models.BookingRequest true "Booking items"
// @Success 200 {object} response_models.BookingResponse
// @Failure 400 {object} utils.APIResponse
// @Router /bookings/create [post]
func (b *BookingController) CreateBooking(c *gin.Context) {

	var req request_models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "trip_id, user_id and booking_items are required")
		return
	}

	booking, err := b.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking created successfully")
}

// ConfirmBooking godoc
// @Summary Confirm a booking
// @Description Issue provider confirmation codes after a successful payment and email the traveler
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body request_models.ConfirmBookingRequest true "Payment reference"
// @Success 200 {object} response_models.BookingResponse
// @Failure 409 {object} utils.APIResponse
// @Router /bookings/{bookingId}/confirm [post]
func (b *BookingController) ConfirmBooking(c *gin.Context) {
	bookingId := c.Param("bookingId")
	if bookingId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	var req request_models.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "payment_id is required")
		return
	}

	booking, err := b.bookingService.ConfirmBooking(c.Request.Context(), bookingId, req.PaymentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking confirmed successfully")
}

// CancelBooking godoc
// @Summary Cancel a booking
// @Description Cancel a booking and compute the refund per the cancellation window
// @Tags Booking
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body request_models.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} response_models.CancellationResult
// @Failure 404 {object} utils.APIResponse
// @Router /bookings/{bookingId}/cancel [post]
func (b *BookingController) CancelBooking(c *gin.Context) {
	bookingId := c.Param("bookingId")
	if bookingId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	var req request_models.CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	result, err := b.bookingService.CancelBooking(c.Request.Context(), bookingId, req.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Booking cancelled")
}

// GetBookingStatus godoc
// @Summary Get booking status
// @Description Fetch a booking with its items and confirmation codes
// @Tags Booking
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response_models.BookingResponse
// @Failure 404 {object} utils.APIResponse
// @Router /bookings/{bookingId}/status [get]
func (b *BookingController) GetBookingStatus(c *gin.Context) {
	bookingId := c.Param("bookingId")
	if bookingId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	booking, err := b.bookingService.GetBooking(c.Request.Context(), bookingId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, booking, "Booking fetched successfully")
}
