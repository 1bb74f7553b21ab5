package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"roamio/internal/models/db_models"
	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/internal/repositories"
	"roamio/pkg/logger"
	"roamio/pkg/utils"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, req request_models.BookingRequest) (*response_models.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID, paymentID string) (*response_models.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*response_models.CancellationResult, error)
	GetBooking(ctx context.Context, bookingID string) (*response_models.BookingResponse, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	tripRepo    repositories.TripRepository
	accountRepo repositories.AccountRepository
	mail        IMailService
	analytics   AnalyticsServiceInterface
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	tripRepo repositories.TripRepository,
	accountRepo repositories.AccountRepository,
	mail IMailService,
	analytics AnalyticsServiceInterface,
) BookingServiceInterface {
	return &bookingService{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		accountRepo: accountRepo,
		mail:        mail,
		analytics:   analytics,
	}
}

// confirmationPrefix maps an item type to its provider code prefix.
func confirmationPrefix(itemType string) string {
	switch strings.ToLower(itemType) {
	case "flight":
		return "FL"
	case "hotel":
		return "HT"
	case "train":
		return "TR"
	case "bus":
		return "BS"
	case "cab", "transport":
		return "CB"
	case "activity":
		return "AC"
	default:
		return "EMT"
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req request_models.BookingRequest) (*response_models.BookingResponse, error) {
	trip, err := s.tripRepo.FindById(ctx, req.TripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	total := 0.0
	items := make([]response_models.BookingItemResult, 0, len(req.BookingItems))
	for _, in := range req.BookingItems {
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		price := in.Price * float64(qty)
		total += price
		items = append(items, response_models.BookingItemResult{
			ItemID:   uuid.NewString(),
			Type:     in.Type,
			Name:     in.Name,
			Provider: in.Provider,
			Date:     in.Date,
			Quantity: qty,
			Price:    price,
			Status:   "pending",
		})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	booking := &db_models.Booking{
		TripID:        trip.ID,
		Status:        db_models.BookingStatusPending,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		Items:         itemsJSON,
	}
	if uid, err := uuid.Parse(req.UserID); err == nil {
		booking.AccountID = &uid
	}

	if err := s.bookingRepo.Insert(ctx, booking); err != nil {
		logger.Log.WithError(err).Error("failed to persist booking")
		return nil, utils.ErrDatabaseError
	}

	s.analytics.TrackEvent(ctx, "booking_created", map[string]any{
		"booking_id": booking.ID.String(),
		"trip_id":    req.TripID,
		"amount":     total,
		"item_count": len(items),
	})

	return toBookingResponse(booking, items), nil
}

// ConfirmBooking issues per-item provider confirmation codes and a
// booking-level reference once payment went through.
func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID, paymentID string) (*response_models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != db_models.BookingStatusPending {
		return nil, utils.ErrBookingNotConfirmable
	}

	var items []response_models.BookingItemResult
	if err := json.Unmarshal(booking.Items, &items); err != nil {
		return nil, utils.ErrDatabaseError
	}

	for i := range items {
		items[i].Status = "confirmed"
		items[i].ConfirmationCode = utils.GenerateConfirmationCode(confirmationPrefix(items[i].Type))
	}

	now := utils.NowUnixSeconds()
	booking.Status = db_models.BookingStatusConfirmed
	booking.ConfirmedAt = &now
	booking.EMTReference = fmt.Sprintf("EMT-%s-%s",
		utils.FromUnixSecondsIST(now).Format("20060102"),
		strings.TrimPrefix(utils.GenerateConfirmationCode("X"), "X-"))

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	booking.Items = itemsJSON

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.sendConfirmationMail(ctx, booking, items)

	s.analytics.TrackEvent(ctx, "booking_confirmed", map[string]any{
		"booking_id": booking.ID.String(),
		"payment_id": paymentID,
		"reference":  booking.EMTReference,
	})

	return toBookingResponse(booking, items), nil
}

// Cancellation policy: >48h before the first item date refunds 90%,
// >24h refunds 50%, later cancellations refund nothing.
func refundPercentage(hoursUntilStart float64) float64 {
	switch {
	case hoursUntilStart > 48:
		return 0.9
	case hoursUntilStart > 24:
		return 0.5
	default:
		return 0
	}
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, reason string) (*response_models.CancellationResult, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	// Repeat cancels replay the stored outcome instead of erroring.
	if booking.Status == db_models.BookingStatusCancelled {
		pct := 0.0
		if booking.TotalAmount > 0 {
			pct = booking.RefundAmount / booking.TotalAmount * 100
		}
		return &response_models.CancellationResult{
			BookingID:    booking.ID.String(),
			Status:       "already_cancelled",
			RefundAmount: booking.RefundAmount,
			RefundPct:    roundTo(pct, 0),
			Reason:       reason,
		}, nil
	}

	var items []response_models.BookingItemResult
	if err := json.Unmarshal(booking.Items, &items); err != nil {
		return nil, utils.ErrDatabaseError
	}

	pct := refundPercentage(hoursUntilEarliestItem(items))
	refund := roundTo(booking.TotalAmount*pct, 2)

	for i := range items {
		items[i].Status = "cancelled"
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	now := utils.NowUnixSeconds()
	booking.Status = db_models.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.RefundAmount = refund
	booking.Items = itemsJSON

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.analytics.TrackEvent(ctx, "booking_cancelled", map[string]any{
		"booking_id":    booking.ID.String(),
		"refund_amount": refund,
		"refund_pct":    pct * 100,
		"reason":        reason,
	})

	return &response_models.CancellationResult{
		BookingID:    booking.ID.String(),
		Status:       string(booking.Status),
		RefundAmount: refund,
		RefundPct:    pct * 100,
		Reason:       reason,
	}, nil
}

func hoursUntilEarliestItem(items []response_models.BookingItemResult) float64 {
	var earliest time.Time
	for _, item := range items {
		t, err := utils.ParseDateOnly(item.Date)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, item.Date); err != nil {
				continue
			}
		}
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	if earliest.IsZero() {
		return 0
	}
	return time.Until(earliest).Hours()
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response_models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	var items []response_models.BookingItemResult
	if err := json.Unmarshal(booking.Items, &items); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return toBookingResponse(booking, items), nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*db_models.Booking, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return nil, utils.ErrInvalidInput
	}
	booking, err := s.bookingRepo.FindById(ctx, bookingID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if booking == nil {
		return nil, utils.ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) sendConfirmationMail(ctx context.Context, booking *db_models.Booking, items []response_models.BookingItemResult) {
	if s.mail == nil || booking.AccountID == nil {
		return
	}
	account, err := s.accountRepo.FindById(ctx, booking.AccountID.String())
	if err != nil || account == nil {
		return
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", item.Type, item.Name, item.ConfirmationCode))
	}
	body := fmt.Sprintf("Your booking %s is confirmed.\n\n%s\n\nTotal paid: INR %.2f",
		booking.EMTReference, strings.Join(lines, "\n"), booking.TotalAmount)

	// Fire and forget; a failed mail must not fail the confirmation.
	go func() {
		if err := s.mail.SendBookingConfirmation(account.Email, booking.EMTReference, body); err != nil {
			logger.Log.WithError(err).Warn("confirmation mail failed")
		}
	}()
}

func toBookingResponse(booking *db_models.Booking, items []response_models.BookingItemResult) *response_models.BookingResponse {
	resp := &response_models.BookingResponse{
		BookingID:    booking.ID.String(),
		TripID:       booking.TripID.String(),
		Status:       string(booking.Status),
		TotalAmount:  booking.TotalAmount,
		Items:        items,
		EMTReference: booking.EMTReference,
		CreatedAt:    utils.FormatRFC3339IST(utils.FromUnixSecondsIST(booking.CreatedAt)),
	}
	if booking.AccountID != nil {
		resp.UserID = booking.AccountID.String()
	}
	return resp
}
