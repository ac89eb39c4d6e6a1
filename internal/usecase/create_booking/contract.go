package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// FacilityResolver интерфейс резолвера площадок
type FacilityResolver interface {
	Resolve(ctx context.Context, facilityID string) (*domain.Facility, error)
}

// ConflictChecker интерфейс проверки занятости слота
type ConflictChecker interface {
	HasConflict(ctx context.Context, facilityID string, date time.Time, slot domain.TimeSlot) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики (pkg/metrics)
type Metrics interface {
	BookingCreated(source string)
	SlotConflict(stage string)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator interface {
	Generate() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
