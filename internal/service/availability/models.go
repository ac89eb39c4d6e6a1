package availability

import "github.com/m04kA/SMC-GroundBookingService/internal/domain"

// BusySlot слот, занятый активным бронированием
type BusySlot struct {
	TimeSlot domain.TimeSlot
	Status   domain.BookingStatus
}
