package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, int, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, reason *string) (time.Time, error)
	Delete(ctx context.Context, bookingID string) error
}

// FacilityResolver интерфейс каталога площадок
type FacilityResolver interface {
	Resolve(ctx context.Context, facilityID string) (*domain.Facility, error)
	ListOwned(ctx context.Context, ownerID string) ([]*domain.Facility, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий жизненного цикла
type EventPublisher interface {
	StatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, actorID string) error
	Deleted(ctx context.Context, b *domain.Booking, actorID string) error
}

// Metrics бизнес-метрики
type Metrics interface {
	StatusTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
