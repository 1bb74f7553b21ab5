package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateSession godoc
// @Summary Open a payment session
// @Description Create a gateway checkout order for a booking; a pending transaction is recorded first
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.PaymentSessionRequest true "Booking and amount"
// @Success 200 {object} response_models.PaymentSessionResponse
// @Failure 400 {object} utils.APIResponse
// @Router /payments/create-session [post]
func (p *PaymentController) CreateSession(c *gin.Context) {

	var req request_models.PaymentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "booking_id, user_id and amount are required")
		return
	}

	session, err := p.paymentService.CreateSession(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Payment session created")
}

// ProcessPayment godoc
// @Summary Process a payment
// @Description Verify the gateway signature and capture status, then mark the transaction paid
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.ProcessPaymentRequest true "Session and payment reference"
// @Success 200 {object} response_models.PaymentResult
// @Failure 422 {object} utils.APIResponse
// @Router /payments/process [post]
func (p *PaymentController) ProcessPayment(c *gin.Context) {
	var req request_models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "session_id and payment_id are required")
		return
	}

	result, err := p.paymentService.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Payment processed")
}

// VerifySession godoc
// @Summary Verify a payment session
// @Description Fetch the current status of a payment session
// @Tags Payment
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.PaymentResult
// @Failure 404 {object} utils.APIResponse
// @Router /payments/verify/{sessionId} [get]
func (p *PaymentController) VerifySession(c *gin.Context) {
	sessionId := c.Param("sessionId")
	if sessionId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	result, err := p.paymentService.VerifySession(c.Request.Context(), sessionId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Payment session fetched")
}

// Refund godoc
// @Summary Refund a payment
// @Description Issue a full or partial refund through the gateway
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.RefundRequest true "Payment and amount"
// @Success 200 {object} response_models.RefundResult
// @Failure 404 {object} utils.APIResponse
// @Router /payments/refund [post]
func (p *PaymentController) Refund(c *gin.Context) {
	var req request_models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "payment_id and amount are required")
		return
	}

	result, err := p.paymentService.Refund(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Refund issued")
}
