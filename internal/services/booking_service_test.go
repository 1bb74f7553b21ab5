package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/db_models"
	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/pkg/utils"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Insert(ctx context.Context, booking *db_models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) FindById(ctx context.Context, id string) (*db_models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Booking), args.Error(1)
}

func (m *MockBookingRepo) Update(ctx context.Context, booking *db_models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) ListByTripId(ctx context.Context, tripId string) ([]db_models.Booking, error) {
	args := m.Called(ctx, tripId)
	return args.Get(0).([]db_models.Booking), args.Error(1)
}

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Insert(ctx context.Context, account *db_models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func (m *MockAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

func TestConfirmationPrefix(t *testing.T) {
	cases := map[string]string{
		"flight":    "FL",
		"Hotel":     "HT",
		"train":     "TR",
		"bus":       "BS",
		"cab":       "CB",
		"transport": "CB",
		"activity":  "AC",
		"yacht":     "EMT",
	}
	for itemType, want := range cases {
		assert.Equal(t, want, confirmationPrefix(itemType), itemType)
	}
}

func TestRefundPercentage(t *testing.T) {
	assert.Equal(t, 0.9, refundPercentage(72))
	assert.Equal(t, 0.9, refundPercentage(48.5))
	assert.Equal(t, 0.5, refundPercentage(48))
	assert.Equal(t, 0.5, refundPercentage(30))
	assert.Equal(t, 0.0, refundPercentage(24))
	assert.Equal(t, 0.0, refundPercentage(2))
	assert.Equal(t, 0.0, refundPercentage(-5))
}

func TestHoursUntilEarliestItem(t *testing.T) {
	items := []response_models.BookingItemResult{
		{Date: time.Now().Add(200 * time.Hour).Format(time.RFC3339)},
		{Date: time.Now().Add(100 * time.Hour).Format(time.RFC3339)},
		{Date: "not a date"},
	}
	assert.InDelta(t, 100, hoursUntilEarliestItem(items), 1)

	assert.Zero(t, hoursUntilEarliestItem([]response_models.BookingItemResult{{Date: "junk"}}))
	assert.Zero(t, hoursUntilEarliestItem(nil))
}

func pendingBookingFixture(t *testing.T, itemDate string) *db_models.Booking {
	t.Helper()
	items := []response_models.BookingItemResult{
		{ItemID: uuid.NewString(), Type: "flight", Name: "BLR-GOI", Date: itemDate, Quantity: 2, Price: 9000, Status: "pending"},
		{ItemID: uuid.NewString(), Type: "hotel", Name: "Beach Resort", Date: itemDate, Quantity: 1, Price: 12000, Status: "pending"},
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	booking := &db_models.Booking{
		TripID:      uuid.New(),
		Status:      db_models.BookingStatusPending,
		TotalAmount: 21000,
		Items:       raw,
	}
	booking.ID = uuid.New()
	return booking
}

func TestCreateBookingComputesTotals(t *testing.T) {
	tripRepo := new(MockTripRepo)
	bookingRepo := new(MockBookingRepo)

	trip := &db_models.Trip{Destination: "Goa"}
	trip.ID = uuid.New()
	tripRepo.On("FindById", mock.Anything, trip.ID.String()).Return(trip, nil)
	bookingRepo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(bookingRepo, tripRepo, new(MockAccountRepo), nil, noopAnalytics{})
	resp, err := svc.CreateBooking(context.Background(), request_models.BookingRequest{
		TripID: trip.ID.String(),
		BookingItems: []request_models.BookingItemInput{
			{Type: "flight", Name: "BLR-GOI", Price: 4500, Quantity: 2},
			{Type: "hotel", Name: "Beach Resort", Price: 12000},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 21000.0, resp.TotalAmount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 9000.0, resp.Items[0].Price)
	assert.Equal(t, 1, resp.Items[1].Quantity)
	assert.Empty(t, resp.Items[0].ConfirmationCode)
}

func TestCreateBookingUnknownTrip(t *testing.T) {
	tripRepo := new(MockTripRepo)
	tripRepo.On("FindById", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewBookingService(new(MockBookingRepo), tripRepo, new(MockAccountRepo), nil, noopAnalytics{})
	_, err := svc.CreateBooking(context.Background(), request_models.BookingRequest{TripID: uuid.NewString()})
	require.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestConfirmBookingIssuesCodes(t *testing.T) {
	booking := pendingBookingFixture(t, "2026-12-01")
	repo := new(MockBookingRepo)
	repo.On("FindById", mock.Anything, booking.ID.String()).Return(booking, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(repo, new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	resp, err := svc.ConfirmBooking(context.Background(), booking.ID.String(), "pay_123")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.True(t, strings.HasPrefix(resp.EMTReference, "EMT-"))
	require.Len(t, resp.Items, 2)
	assert.True(t, strings.HasPrefix(resp.Items[0].ConfirmationCode, "FL-"))
	assert.True(t, strings.HasPrefix(resp.Items[1].ConfirmationCode, "HT-"))
	for _, item := range resp.Items {
		assert.Equal(t, "confirmed", item.Status)
	}
}

func TestConfirmBookingRejectsNonPending(t *testing.T) {
	booking := pendingBookingFixture(t, "2026-12-01")
	booking.Status = db_models.BookingStatusConfirmed
	repo := new(MockBookingRepo)
	repo.On("FindById", mock.Anything, booking.ID.String()).Return(booking, nil)

	svc := NewBookingService(repo, new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	_, err := svc.ConfirmBooking(context.Background(), booking.ID.String(), "pay_123")
	require.ErrorIs(t, err, utils.ErrBookingNotConfirmable)
}

func TestCancelBookingRefundTiers(t *testing.T) {
	farDate := time.Now().Add(100 * time.Hour).Format(time.RFC3339)
	booking := pendingBookingFixture(t, farDate)
	repo := new(MockBookingRepo)
	repo.On("FindById", mock.Anything, booking.ID.String()).Return(booking, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(repo, new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	result, err := svc.CancelBooking(context.Background(), booking.ID.String(), "plans changed")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, 90.0, result.RefundPct)
	assert.Equal(t, 18900.0, result.RefundAmount)
	assert.Equal(t, "plans changed", result.Reason)
}

func TestCancelBookingLateCancellation(t *testing.T) {
	soonDate := time.Now().Add(3 * time.Hour).Format(time.RFC3339)
	booking := pendingBookingFixture(t, soonDate)
	repo := new(MockBookingRepo)
	repo.On("FindById", mock.Anything, booking.ID.String()).Return(booking, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewBookingService(repo, new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	result, err := svc.CancelBooking(context.Background(), booking.ID.String(), "")

	require.NoError(t, err)
	assert.Zero(t, result.RefundAmount)
	assert.Zero(t, result.RefundPct)
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	booking := pendingBookingFixture(t, "2026-12-01")
	booking.Status = db_models.BookingStatusCancelled
	booking.RefundAmount = 10500
	repo := new(MockBookingRepo)
	repo.On("FindById", mock.Anything, booking.ID.String()).Return(booking, nil)

	svc := NewBookingService(repo, new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	result, err := svc.CancelBooking(context.Background(), booking.ID.String(), "retry click")

	require.NoError(t, err)
	assert.Equal(t, "already_cancelled", result.Status)
	assert.Equal(t, 10500.0, result.RefundAmount)
	assert.Equal(t, 50.0, result.RefundPct)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetBookingInvalidID(t *testing.T) {
	svc := NewBookingService(new(MockBookingRepo), new(MockTripRepo), new(MockAccountRepo), nil, noopAnalytics{})
	_, err := svc.GetBooking(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}
