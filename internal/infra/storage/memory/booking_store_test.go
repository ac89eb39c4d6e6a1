package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
	"github.com/m04kA/SMC-GroundBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GroundBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-GroundBookingService/pkg/ptr"
)

var testDate = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

type tickingClock struct {
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newStore() *BookingStore {
	clock := &tickingClock{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
	return NewBookingStore().WithClock(clock.Now)
}

func newBooking(t *testing.T, id, userID, facilityID, slot string) *domain.Booking {
	t.Helper()
	ts, err := domain.ParseTimeSlot(slot)
	require.NoError(t, err)
	return &domain.Booking{
		BookingID:   id,
		UserID:      userID,
		FacilityID:  facilityID,
		BookingDate: testDate,
		TimeSlot:    ts,
		Status:      domain.StatusPending,
	}
}

func TestBookingStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	b := newBooking(t, "BC1", "u1", "f1", "14:00-15:00")
	b.Players.Requirements = ptr.Ptr("floodlights")
	require.NoError(t, s.Create(ctx, b))
	assert.False(t, b.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, "BC1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "floodlights", *got.Players.Requirements)

	// Изменение копии не влияет на хранилище
	*got.Players.Requirements = "changed"
	again, err := s.GetByID(ctx, "BC1")
	require.NoError(t, err)
	assert.Equal(t, "floodlights", *again.Players.Requirements)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestBookingStore_FractionalSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	perHour := decimal.NewFromInt(500)
	b := newBooking(t, "BC20M", "u1", "f1", "09:00-09:20")
	b.Pricing = pricing.Compute(&domain.Facility{ID: "f1", Price: domain.PriceConfig{PerHour: perHour}}, b.TimeSlot)
	require.NoError(t, s.Create(ctx, b))

	got, err := s.GetByID(ctx, "BC20M")
	require.NoError(t, err)

	assert.Equal(t, 0.33, got.TimeSlot.Duration)
	assert.Equal(t, "165", got.Pricing.BaseAmount.String())
	assert.Equal(t, "168", got.Pricing.TotalAmount.String())
	assert.True(t, got.Pricing.TotalAmount.Equal(b.Pricing.TotalAmount))

	// base = ставка * длительность для сохраненной записи
	assert.True(t, perHour.Mul(decimal.NewFromFloat(got.TimeSlot.Duration)).Equal(got.Pricing.BaseAmount))
}

func TestBookingStore_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Create(ctx, newBooking(t, "BC1", "u1", "f1", "14:00-15:00")))

	err := s.Create(ctx, newBooking(t, "BC2", "u2", "f1", "14:00-15:00"))
	assert.ErrorIs(t, err, booking.ErrSlotTaken)

	// Другая площадка, другой слот и пересекающийся, но не совпадающий слот не конфликтуют
	require.NoError(t, s.Create(ctx, newBooking(t, "BC3", "u2", "f2", "14:00-15:00")))
	require.NoError(t, s.Create(ctx, newBooking(t, "BC4", "u2", "f1", "15:00-16:00")))
	require.NoError(t, s.Create(ctx, newBooking(t, "BC5", "u2", "f1", "14:00-16:00")))

	err = s.Create(ctx, newBooking(t, "BC1", "u3", "f9", "10:00-11:00"))
	assert.ErrorIs(t, err, booking.ErrDuplicateBookingID)
}

func TestBookingStore_CancelledSlotIsFree(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Create(ctx, newBooking(t, "BC1", "u1", "f1", "14:00-15:00")))
	_, err := s.UpdateStatus(ctx, "BC1", domain.StatusCancelled, ptr.Ptr("rain"))
	require.NoError(t, err)

	busy, err := s.HasActiveInSlot(ctx, "f1", testDate, newBooking(t, "", "", "", "14:00-15:00").TimeSlot)
	require.NoError(t, err)
	assert.False(t, busy)

	require.NoError(t, s.Create(ctx, newBooking(t, "BC2", "u2", "f1", "14:00-15:00")))

	// Возврат отмененного бронирования в активный статус упирается в занятый слот
	_, err = s.UpdateStatus(ctx, "BC1", domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, booking.ErrSlotTaken)

	got, err := s.GetByID(ctx, "BC1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, "rain", *got.CancellationReason)
}

func TestBookingStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	for i := 0; i < 5; i++ {
		b := newBooking(t, fmt.Sprintf("BC%d", i), "u1", "f1", fmt.Sprintf("%02d:00-%02d:00", 8+i, 9+i))
		require.NoError(t, s.Create(ctx, b))
	}
	require.NoError(t, s.Create(ctx, newBooking(t, "OTHER", "u2", "f1", "20:00-21:00")))
	_, err := s.UpdateStatus(ctx, "BC0", domain.StatusCancelled, nil)
	require.NoError(t, err)

	page, total, err := s.ListByUser(ctx, domain.UserBookingsFilter{UserID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "BC4", page[0].BookingID)
	assert.Equal(t, "BC3", page[1].BookingID)

	page, total, err = s.ListByUser(ctx, domain.UserBookingsFilter{UserID: "u1", Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 1)
	assert.Equal(t, "BC0", page[0].BookingID)

	status := domain.StatusCancelled
	page, total, err = s.ListByUser(ctx, domain.UserBookingsFilter{UserID: "u1", Status: &status, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, page, 1)

	page, total, err = s.ListByUser(ctx, domain.UserBookingsFilter{UserID: "u1", Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, page)
}

func TestBookingStore_List(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Create(ctx, newBooking(t, "A", "u1", "f1", "18:00-19:00")))
	require.NoError(t, s.Create(ctx, newBooking(t, "B", "u1", "f1", "09:00-10:00")))
	require.NoError(t, s.Create(ctx, newBooking(t, "C", "u2", "f2", "09:00-10:00")))
	_, err := s.UpdateStatus(ctx, "A", domain.StatusNoShow, nil)
	require.NoError(t, err)

	all, err := s.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	owned, err := s.List(ctx, domain.BookingsFilter{FacilityIDs: []string{"f1"}})
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	date := testDate.Add(3 * time.Hour)
	busy, err := s.List(ctx, domain.BookingsFilter{
		FacilityIDs: []string{"f1"},
		Date:        &date,
		Statuses:    domain.ActiveStatuses,
	})
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, "B", busy[0].BookingID)
}

func TestBookingStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	require.NoError(t, s.Create(ctx, newBooking(t, "BC1", "u1", "f1", "14:00-15:00")))
	require.NoError(t, s.Delete(ctx, "BC1"))
	assert.ErrorIs(t, s.Delete(ctx, "BC1"), booking.ErrBookingNotFound)

	// Слот освобождается после удаления
	require.NoError(t, s.Create(ctx, newBooking(t, "BC2", "u2", "f1", "14:00-15:00")))
}
