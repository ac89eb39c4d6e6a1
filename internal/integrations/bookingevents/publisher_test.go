package bookingevents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

type published struct {
	key   string
	event Event
}

type fakeMQ struct {
	messages []published
	err      error
}

func (f *fakeMQ) PublishJSON(ctx context.Context, key string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{key: key, event: v.(Event)})
	return nil
}

func testBooking(t *testing.T) *domain.Booking {
	t.Helper()
	slot, err := domain.ParseTimeSlot("18:00-20:00")
	require.NoError(t, err)
	return &domain.Booking{
		BookingID:   "BCM1ABCDEFG12",
		UserID:      "user-1",
		FacilityID:  "powai-box-cricket",
		BookingDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:    slot,
		Pricing: domain.PricingBreakdown{
			TotalAmount: decimal.NewFromInt(1530),
			Currency:    "INR",
		},
		Status: domain.StatusConfirmed,
	}
}

func TestPublisher_Events(t *testing.T) {
	mq := &fakeMQ{}
	p := NewPublisher(mq)
	fixed := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }
	ctx := context.Background()
	b := testBooking(t)

	require.NoError(t, p.BookingCreated(ctx, b))
	require.NoError(t, p.StatusChanged(ctx, b, domain.StatusPending, "owner-1"))
	require.NoError(t, p.Deleted(ctx, b, "admin-1"))

	require.Len(t, mq.messages, 3)

	created := mq.messages[0]
	assert.Equal(t, RoutingKeyCreated, created.key)
	assert.Equal(t, "2025-10-15", created.event.BookingDate)
	assert.Equal(t, "18:00", created.event.StartTime)
	assert.Equal(t, "20:00", created.event.EndTime)
	assert.Equal(t, "1530.00", created.event.TotalAmount)
	assert.Equal(t, fixed, created.event.OccurredAt)

	changed := mq.messages[1]
	assert.Equal(t, RoutingKeyStatusChanged, changed.key)
	assert.Equal(t, "pending", changed.event.PreviousStatus)
	assert.Equal(t, "confirmed", changed.event.Status)
	assert.Equal(t, "owner-1", changed.event.ActorID)

	assert.Equal(t, RoutingKeyDeleted, mq.messages[2].key)
}

func TestPublisher_Error(t *testing.T) {
	p := NewPublisher(&fakeMQ{err: errors.New("channel closed")})

	err := p.BookingCreated(context.Background(), testBooking(t))
	assert.ErrorIs(t, err, ErrPublish)
}
