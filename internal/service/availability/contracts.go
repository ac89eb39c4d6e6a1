package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasActiveInSlot(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
