package catalog

import (
	"context"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// FacilityRepository источник площадок
type FacilityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Facility, error)
}

// OwnedFacilityLister источник площадок оператора (только БД)
type OwnedFacilityLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
