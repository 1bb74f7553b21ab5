package utils

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidDateRange      = errors.New("end date must be after start date")
	ErrTripNotFound          = errors.New("trip not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrAccountNotFound       = errors.New("account not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrDatabaseError         = errors.New("database error")
	ErrPlannerUnavailable    = errors.New("itinerary generator unavailable")
	ErrMapsUnavailable       = errors.New("maps provider unavailable")
	ErrPaymentGatewayError   = errors.New("payment gateway error")
	ErrPaymentNotVerified    = errors.New("payment signature verification failed")
	ErrBookingNotConfirmable = errors.New("booking cannot be confirmed")
)
