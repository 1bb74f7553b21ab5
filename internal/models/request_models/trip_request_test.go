package request_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationDaysInclusive(t *testing.T) {
	req := TripRequest{StartDate: "2026-09-10", EndDate: "2026-09-12"}
	assert.Equal(t, 3, req.DurationDays())
}

func TestDatesRejectsReversedRange(t *testing.T) {
	req := TripRequest{StartDate: "2026-09-12", EndDate: "2026-09-10"}
	_, _, err := req.Dates()
	require.ErrorIs(t, err, ErrBadDateRange)
	assert.Equal(t, 0, req.DurationDays())
}

func TestDatesRejectsSameDay(t *testing.T) {
	req := TripRequest{StartDate: "2026-09-10", EndDate: "2026-09-10"}
	_, _, err := req.Dates()
	require.ErrorIs(t, err, ErrBadDateRange)
}

func TestDatesRejectsGarbage(t *testing.T) {
	req := TripRequest{StartDate: "tomorrow", EndDate: "2026-09-10"}
	_, _, err := req.Dates()
	require.Error(t, err)
}
