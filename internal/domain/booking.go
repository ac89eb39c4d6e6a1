package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// AllStatuses lists every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses are statuses that occupy a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ParseBookingStatus validates a raw status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsActive returns true if the status blocks the slot for other bookings
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true for statuses ordinary actors cannot leave
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// PlayerDetails holds contact information of the team
type PlayerDetails struct {
	TeamName      string
	PlayerCount   int
	ContactPerson string
	Requirements  *string
}

// PricingBreakdown is the result of pricing a slot.
// TotalAmount = BaseAmount - Discount + ConvenienceFee.
type PricingBreakdown struct {
	BaseAmount     decimal.Decimal
	Discount       decimal.Decimal
	ConvenienceFee decimal.Decimal
	TotalAmount    decimal.Decimal
	Currency       string
}

// Booking represents a ground booking
type Booking struct {
	BookingID   string
	UserID      string
	FacilityID  string
	BookingDate time.Time
	TimeSlot    TimeSlot
	Players     PlayerDetails
	Pricing     PricingBreakdown
	Status      BookingStatus

	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// SameSlot returns true if both bookings target the same facility, date and time range
func (b *Booking) SameSlot(facilityID string, date time.Time, slot TimeSlot) bool {
	return b.FacilityID == facilityID &&
		SameDate(b.BookingDate, date) &&
		b.TimeSlot.StartTime.Equal(slot.StartTime) &&
		b.TimeSlot.EndTime.Equal(slot.EndTime)
}

// UserBookingsFilter фильтр для истории бронирований пользователя
type UserBookingsFilter struct {
	UserID string
	Status *BookingStatus
	Limit  int
	Offset int
}

// BookingsFilter фильтр для выборки бронирований по площадкам
type BookingsFilter struct {
	FacilityIDs []string        // Пустой список - без ограничения по площадкам
	Date        *time.Time      // Конкретная дата (опционально)
	Statuses    []BookingStatus // Пустой список - любые статусы
}
