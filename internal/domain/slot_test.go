package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/pkg/types"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		start    types.TimeString
		end      types.TimeString
		duration float64
		wantErr  error
	}{
		{name: "one hour", raw: "14:00-15:00", start: "14:00", end: "15:00", duration: 1},
		{name: "two hours", raw: "10:00-12:00", start: "10:00", end: "12:00", duration: 2},
		{name: "half hour", raw: "09:30-10:00", start: "09:30", end: "10:00", duration: 0.5},
		{name: "normalized", raw: "9:00-10:30", start: "09:00", end: "10:30", duration: 1.5},
		{name: "twenty minutes rounded", raw: "09:00-09:20", start: "09:00", end: "09:20", duration: 0.33},
		{name: "ten minutes rounded", raw: "09:00-09:10", start: "09:00", end: "09:10", duration: 0.17},
		{name: "overnight", raw: "22:00-02:00", start: "22:00", end: "02:00", duration: 4},
		{name: "overnight full range", raw: "20:00-08:00", start: "20:00", end: "08:00", duration: 12},
		{name: "zero duration", raw: "10:00-10:00", wantErr: ErrEmptyTimeSlot},
		{name: "missing end", raw: "10:00", wantErr: ErrInvalidTimeSlot},
		{name: "bad time", raw: "10:00-25:00", wantErr: ErrInvalidTimeSlot},
		{name: "too many parts", raw: "10:00-11:00-12:00", wantErr: ErrInvalidTimeSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := ParseTimeSlot(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, slot.StartTime)
			assert.Equal(t, tt.end, slot.EndTime)
			assert.InDelta(t, tt.duration, slot.Duration, 1e-9)
		})
	}
}

func TestParseBookingDate(t *testing.T) {
	d, err := ParseBookingDate("2025-10-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseBookingDate("2025-10-15T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseBookingDate("15/10/2025")
	assert.Error(t, err)
}

func TestBooking_SameSlot(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	slot, err := ParseTimeSlot("14:00-15:00")
	require.NoError(t, err)

	b := &Booking{FacilityID: "f1", BookingDate: date, TimeSlot: slot}

	assert.True(t, b.SameSlot("f1", date.Add(5*time.Hour), slot))
	assert.False(t, b.SameSlot("f2", date, slot))
	assert.False(t, b.SameSlot("f1", date.AddDate(0, 0, 1), slot))

	other, err := ParseTimeSlot("14:00-16:00")
	require.NoError(t, err)
	assert.False(t, b.SameSlot("f1", date, other))
}

func TestBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, st)

	_, ok = ParseBookingStatus("in_progress")
	assert.False(t, ok)

	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.True(t, StatusCompleted.IsTerminal())
}
